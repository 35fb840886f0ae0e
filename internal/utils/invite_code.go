package utils

import (
	"math/rand"
	"strings"

	"github.com/asahina-dev/teamspace-api/internal/constants"
)

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateInviteCode produces a 10-character alphanumeric invite code.
// Codes are shared secrets scoped to a single workspace; collisions across
// workspaces are harmless and not checked for.
func GenerateInviteCode() string {
	var b strings.Builder
	b.Grow(constants.InviteCodeLength)
	for i := 0; i < constants.InviteCodeLength; i++ {
		b.WriteByte(inviteCodeAlphabet[rand.Intn(len(inviteCodeAlphabet))])
	}
	return b.String()
}
