package auth

import (
	"regexp"
	"slices"
	"strings"
)

// Form field names used as FieldErrors keys.
const (
	FieldIdentifier = "email"
	FieldSecret     = "apiKey"
	FieldConfirm    = "confirm"
	FieldTerms      = "terms"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a form field to the message shown beside it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// SignInForm is the input of a sign-in attempt.
type SignInForm struct {
	Identifier string
	Secret     string
	Remember   bool
}

// SignUpForm is the input of a registration.
type SignUpForm struct {
	Identifier  string
	Secret      string
	Confirm     string
	AcceptTerms bool
}

// ValidateSignIn checks a sign-in form. It returns nil when the form is valid.
func ValidateSignIn(f SignInForm) FieldErrors {
	errs := FieldErrors{}
	checkIdentifier(errs, f.Identifier)
	checkSecret(errs, f.Secret)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateSignUp checks a registration form. It returns nil when the form is
// valid.
func ValidateSignUp(f SignUpForm) FieldErrors {
	errs := FieldErrors{}
	checkIdentifier(errs, f.Identifier)
	checkSecret(errs, f.Secret)
	if f.Confirm != f.Secret {
		errs[FieldConfirm] = "API keys do not match."
	}
	if !f.AcceptTerms {
		errs[FieldTerms] = "Accept the terms to continue."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkIdentifier(errs FieldErrors, identifier string) {
	if !emailPattern.MatchString(strings.TrimSpace(identifier)) {
		errs[FieldIdentifier] = "Enter a valid e-mail address."
	}
}

func checkSecret(errs FieldErrors, secret string) {
	if strings.TrimSpace(secret) == "" {
		errs[FieldSecret] = "Enter your API key."
	}
}
