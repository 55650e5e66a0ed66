package twofactor

import (
	"github.com/pquerna/otp/totp"
)

// TOTP validates submitted codes as time-based one-time passwords against
// an account secret.
type TOTP struct {
	secret string
}

// NewTOTP creates a verifier for the given base32 encoded account secret.
func NewTOTP(secret string) *TOTP {
	return &TOTP{secret: secret}
}

// Verify reports whether the code is a currently valid one-time password.
func (t *TOTP) Verify(code string) bool {
	return totp.Validate(code, t.secret)
}

// GenerateSecret creates a fresh TOTP secret for an admin account and
// returns it base32 encoded, ready for an authenticator app.
func GenerateSecret(accountName string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "PropertyChain Admin",
		AccountName: accountName,
	})
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	return key.Secret(), nil
}
