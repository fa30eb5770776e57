package auth

import (
	"errors"

	"go.uber.org/zap"
)

// Session receives the secret of a successful sign-in.
type Session interface {
	Login(secret string)
}

// Service runs the sign-in and sign-up flows.
type Service struct {
	creds   *Store
	session Session
	log     *zap.Logger
}

// NewService wires the flows to a credential store and a session.
func NewService(creds *Store, session Session, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{creds: creds, session: session, log: log.Named("auth")}
}

// SignIn validates the form, authenticates it and starts a session. The
// remembered identifier is saved or cleared according to f.Remember.
// Errors are FieldErrors or ErrInvalidCredentials.
func (s *Service) SignIn(f SignInForm) error {
	if errs := ValidateSignIn(f); errs != nil {
		return errs
	}
	secret, err := s.creds.Authenticate(f.Identifier, f.Secret)
	if err != nil {
		s.log.Info("sign-in rejected")
		return err
	}
	s.session.Login(secret)
	if f.Remember {
		s.creds.Remember(f.Identifier)
	} else {
		s.creds.Forget()
	}
	s.log.Info("signed in")
	return nil
}

// SignUp validates the form and registers the account. It does not sign in.
// Errors are FieldErrors or ErrAlreadyExists.
func (s *Service) SignUp(f SignUpForm) error {
	if errs := ValidateSignUp(f); errs != nil {
		return errs
	}
	if err := s.creds.Register(f.Identifier, f.Secret); err != nil {
		return err
	}
	s.log.Info("account registered")
	return nil
}

// Remembered exposes the identifier to prefill the sign-in form.
func (s *Service) Remembered() (string, bool) {
	return s.creds.Remembered()
}

// Message turns a flow error into the text shown to the user. Authentication
// failures never say which field was wrong.
func Message(err error) string {
	var fe FieldErrors
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fe):
		return "Check the highlighted fields."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid e-mail or API key."
	case errors.Is(err, ErrAlreadyExists):
		return "An account with this e-mail already exists."
	default:
		return "Something went wrong. Try again."
	}
}
