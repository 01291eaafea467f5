package influencer

import (
	"errors"
	"fmt"
)

// Sentinel errors for the influencer domain. Handlers map them to HTTP
// status codes with GetHTTPStatusCode.
var (
	ErrInfluencerNotFound = errors.New("influencer not found")
	ErrDuplicateHandle    = errors.New("influencer already tracked for this platform")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPlatform    = errors.New("unsupported platform")
	ErrProfileFetchFailed = errors.New("profile fetch failed")
)

// NewValidationError builds a field-level validation error.
func NewValidationError(field, message string) error {
	return fmt.Errorf("validation error: field '%s' - %s", field, message)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrInfluencerNotFound)
}

func IsDuplicateHandle(err error) bool {
	return errors.Is(err, ErrDuplicateHandle)
}

// GetHTTPStatusCode maps domain errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInfluencerNotFound):
		return 404
	case errors.Is(err, ErrDuplicateHandle):
		return 409
	case errors.Is(err, ErrInvalidUsername),
		errors.Is(err, ErrInvalidPlatform):
		return 400
	case errors.Is(err, ErrProfileFetchFailed):
		return 502
	default:
		return 500
	}
}

// GetErrorMessage returns a user-facing message without internal details.
func GetErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInfluencerNotFound):
		return "Influencer not found"
	case errors.Is(err, ErrDuplicateHandle):
		return "This username is already tracked on that platform"
	case errors.Is(err, ErrInvalidUsername):
		return "Username is invalid"
	case errors.Is(err, ErrInvalidPlatform):
		return "Platform is not supported"
	case errors.Is(err, ErrProfileFetchFailed):
		return "Could not fetch the platform profile. Please try again."
	default:
		return "Internal server error"
	}
}
