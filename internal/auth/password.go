// Package auth provides the authentication primitives: bcrypt password
// hashing, HS256 access-token encode/decode, and the request-time middleware
// that turns a bearer token into a trusted principal.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mi-wada/todo-api/internal/model"
)

// defaultCost is the bcrypt work factor.
//
// Cost 12 takes roughly 250ms on current server hardware — negligible per
// login, brutal for an offline brute-force. The cost is a deployment-time
// decision baked in here, not a runtime parameter.
const defaultCost = 12

// bcryptMaxInput is bcrypt's hard input limit. The validator accepts
// passwords up to 255 characters, but bcrypt only reads the first 72 bytes;
// x/crypto rejects longer input outright instead of truncating silently, so
// we truncate explicitly and the digest binds those 72 bytes.
const bcryptMaxInput = 72

// PasswordService hashes and verifies passwords with bcrypt.
//
// bcrypt generates a fresh random salt per call and embeds it (with the
// cost) in the digest, so two hashes of the same plaintext differ but both
// verify.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a reduced cost.
// bcrypt's minimum cost (4) makes tests run in milliseconds instead of
// ~250ms per hash. Not for production use.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash produces a salted one-way digest of the password.
//
// The output is self-contained ($2a$<cost>$<salt><digest>) and is what gets
// persisted; the plaintext never leaves this call.
func (p *PasswordService) Hash(password model.Password) (model.PasswordHash, error) {
	digest, err := bcrypt.GenerateFromPassword(truncateForBcrypt(password.Plaintext()), p.cost)
	if err != nil {
		return model.PasswordHash{}, fmt.Errorf("auth: hashing password: %w", err)
	}
	return model.RestorePasswordHash(string(digest)), nil
}

// Verify reports whether plaintext matches the stored digest.
//
// bcrypt recomputes the hash with the salt embedded in the digest and
// compares in constant time, so response timing does not reveal where the
// first mismatching byte is. A structurally malformed digest returns false —
// corrupted stored data is an expected runtime event, not a crash.
func (p *PasswordService) Verify(hash model.PasswordHash, plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash.String()), truncateForBcrypt(plaintext))
	return err == nil
}

func truncateForBcrypt(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > bcryptMaxInput {
		b = b[:bcryptMaxInput]
	}
	return b
}
