// Package avatar derives default profile image URLs from email addresses.
package avatar

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// URL returns the Gravatar URL for an email address. The derivation is pure:
// no network access and the same address always maps to the same URL.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon", md5.Sum([]byte(normalized)))
}
