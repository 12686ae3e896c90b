package idx

import (
	"errors"
	"strings"
	"time"
)

// CodeSeparator joins the event prefix and the ULID body of a code.
const CodeSeparator = "_"

// ErrInvalidCode reports a string that cannot be a code for the given prefix.
var ErrInvalidCode = errors.New("idx: invalid code")

// NewCode returns a secret invitation code of the form PREFIX_<ULID>. The
// ULID carries a millisecond timestamp followed by 80 bits of monotonic
// randomness, so codes issued in rapid succession still never collide.
func NewCode(prefix string) string {
	return NewCodeAt(prefix, time.Now().UTC())
}

// NewCodeAt is NewCode with an explicit timestamp.
func NewCodeAt(prefix string, t time.Time) string {
	body := NewAt(t).String()
	if prefix == "" {
		return body
	}
	return strings.ToUpper(prefix) + CodeSeparator + body
}

// ParseCode checks that s looks like a code minted with prefix and returns
// the embedded ID. It is a cheap syntactic filter for misread scans; a code
// passing it may still be unknown to the registry.
func ParseCode(prefix, s string) (ID, error) {
	s = strings.TrimSpace(s)
	if prefix != "" {
		want := strings.ToUpper(prefix) + CodeSeparator
		if !strings.HasPrefix(s, want) {
			return Zero, ErrInvalidCode
		}
		s = strings.TrimPrefix(s, want)
	}

	id, err := Parse(s)
	if err != nil {
		return Zero, ErrInvalidCode
	}
	return id, nil
}
