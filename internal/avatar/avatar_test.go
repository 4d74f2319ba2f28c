package avatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLIsDeterministicAndNormalized(t *testing.T) {
	t.Parallel()

	// Known digest from the Gravatar documentation example address.
	want := "https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=identicon"
	assert.Equal(t, want, URL("MyEmailAddress@example.com "))
	assert.Equal(t, URL("a@x.com"), URL(" A@X.COM"))
	assert.NotEqual(t, URL("a@x.com"), URL("b@x.com"))
}
