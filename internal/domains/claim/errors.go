package claim

import (
	"errors"
)

var (
	ErrClaimNotFound       = errors.New("claim not found")
	ErrInvalidClaimContent = errors.New("invalid claim content")
	ErrInvalidCategory     = errors.New("invalid claim category")
	ErrInvalidTrustScore   = errors.New("trust score out of range")
	ErrInfluencerNotFound  = errors.New("influencer for claim not found")
	ErrInvalidStudy        = errors.New("invalid study")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrClaimNotFound)
}

// GetHTTPStatusCode maps domain errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrClaimNotFound):
		return 404
	case errors.Is(err, ErrInvalidClaimContent),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidTrustScore),
		errors.Is(err, ErrInvalidStudy),
		errors.Is(err, ErrInfluencerNotFound):
		return 400
	default:
		return 500
	}
}

// GetErrorMessage returns a user-facing message without internal details.
func GetErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrClaimNotFound):
		return "Claim not found"
	case errors.Is(err, ErrInvalidClaimContent):
		return "Claim content is invalid"
	case errors.Is(err, ErrInvalidCategory):
		return "Category must be one of: nutrition, medical, fitness, wellness"
	case errors.Is(err, ErrInvalidTrustScore):
		return "Trust score must be between 0 and 100"
	case errors.Is(err, ErrInvalidStudy):
		return "Study is invalid"
	case errors.Is(err, ErrInfluencerNotFound):
		return "Referenced influencer does not exist"
	default:
		return "Internal server error"
	}
}
