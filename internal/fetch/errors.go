package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/five82/reel/internal/tmdb"
)

var (
	// ErrMissingCredential is reported when no API key is available. No
	// request is made.
	ErrMissingCredential = errors.New("missing api key")
	// ErrCredentialRejected is reported when the catalog answers 401.
	ErrCredentialRejected = errors.New("api key rejected")
	// ErrRemoteFailure covers every other failed request.
	ErrRemoteFailure = errors.New("catalog request failed")
)

// Message returns the text shown to the user for a load error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return "Sign in with your API key to browse the catalog."
	case errors.Is(err, ErrCredentialRejected):
		return "Your API key was rejected. Sign in again with a valid key."
	default:
		return "Could not reach the movie catalog. Press r to retry."
	}
}

// classify maps a request error onto the loader's error kinds. It returns
// nil for cancellations, which are not failures.
func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return nil
	}
	if errors.Is(err, tmdb.ErrUnauthorized) {
		return fmt.Errorf("%w: %w", ErrCredentialRejected, err)
	}
	return fmt.Errorf("%w: %w", ErrRemoteFailure, err)
}

// reason is the metrics label of a classified error.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrCredentialRejected):
		return "credential_rejected"
	default:
		return "remote"
	}
}
