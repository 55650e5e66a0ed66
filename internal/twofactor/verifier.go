// Package twofactor verifies second-factor codes for two-factor-enabled
// admin accounts. The Verifier interface is the collaborator boundary:
// submit a code, get a boolean. Two implementations exist, a static demo
// code and a TOTP validator.
package twofactor

import "crypto/subtle"

// CodeLength is the expected length of submitted codes.
const CodeLength = 6

// Verifier checks a submitted second-factor code.
type Verifier interface {
	Verify(code string) bool
}

// Static accepts exactly one fixed code. It exists for demo and development
// environments; production accounts use the TOTP verifier.
type Static struct {
	code string
}

// NewStatic creates a verifier accepting only the given code.
func NewStatic(code string) *Static {
	return &Static{code: code}
}

// Verify reports whether the submitted code equals the accepted one. The
// comparison is constant time.
func (s *Static) Verify(code string) bool {
	return subtle.ConstantTimeCompare([]byte(code), []byte(s.code)) == 1
}
