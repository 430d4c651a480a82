package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Profile is the single per-user profile row.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  *string   `json:"full_name,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of p. A nil profile stays nil.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.FullName = cloneString(p.FullName)
	c.AvatarURL = cloneString(p.AvatarURL)
	c.Bio = cloneString(p.Bio)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// ProfilePatch lists the fields a user may change directly. The avatar has
// its own upload path.
type ProfilePatch struct {
	FullName *string `json:"full_name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.FullName == nil && p.Bio == nil
}

// Initials returns up to two upper-case initials of the full name, falling
// back to the first letter of email and then to "U".
func Initials(p *Profile, email string) string {
	if p != nil && p.FullName != nil {
		var b strings.Builder
		for _, word := range strings.Fields(*p.FullName) {
			r, _ := utf8.DecodeRuneInString(word)
			b.WriteRune(unicode.ToUpper(r))
			if utf8.RuneCountInString(b.String()) == 2 {
				break
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	if r, _ := utf8.DecodeRuneInString(email); r != utf8.RuneError {
		return string(unicode.ToUpper(r))
	}
	return "U"
}
