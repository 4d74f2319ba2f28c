package dto

// ContactRequest carries the mutable contact fields for create and update
// calls. Pointers distinguish "absent" from "empty" on partial updates.
type ContactRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Favorite *bool   `json:"favorite"`
}

// FavoriteRequest toggles the favorite flag on a contact.
type FavoriteRequest struct {
	Favorite *bool `json:"favorite"`
}
