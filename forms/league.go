package forms

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	LeagueNameMin = 3
	LeagueNameMax = 50
	MinTeams      = 2
	MaxTeams      = 16

	InviteCodeLength = 12
)

// inviteAlphabet leaves out 0, O, 1 and I. Its length divides 256, so
// reducing a random byte modulo it is unbiased.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CreateLeagueForm is the input for creating a league. Validate the raw
// input, then Normalize before storing it.
type CreateLeagueForm struct {
	Name        string `form:"name" validate:"notblank,min=3,max=50"`
	Description string `form:"description" validate:"max=500"`
	MaxTeams    int    `form:"maxTeams" validate:"min=2,max=16"`
}

// Normalize strips disallowed characters from the name and markup from the
// description.
func (f *CreateLeagueForm) Normalize() {
	f.Name = SanitizeName(f.Name)
	f.Description = SanitizeDescription(f.Description, DefaultDescriptionMax)
}

func (f CreateLeagueForm) Validate() error { return validateForm(f) }

// GenerateInviteCode returns a random 12 character league invite code.
func GenerateInviteCode() (string, error) {
	buf := make([]byte, InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}

	var b strings.Builder
	b.Grow(InviteCodeLength)
	for _, c := range buf {
		b.WriteByte(inviteAlphabet[int(c)%len(inviteAlphabet)])
	}
	return b.String(), nil
}
