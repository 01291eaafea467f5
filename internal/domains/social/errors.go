package social

import "errors"

var (
	ErrTokenNotFound         = errors.New("platform connection not found")
	ErrUnsupportedPlatform   = errors.New("unsupported platform")
	ErrPlatformNotConfigured = errors.New("platform oauth credentials not configured")
	ErrOAuthExchangeFailed   = errors.New("oauth code exchange failed")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrTokenNotFound):
		return 404
	case errors.Is(err, ErrUnsupportedPlatform):
		return 400
	case errors.Is(err, ErrPlatformNotConfigured):
		return 503
	case errors.Is(err, ErrOAuthExchangeFailed):
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
	case errors.Is(err, ErrTokenNotFound):
		return "No connection found for that platform"
	case errors.Is(err, ErrUnsupportedPlatform):
		return "Platform is not supported"
	case errors.Is(err, ErrPlatformNotConfigured):
		return "This platform is not configured for connections"
	case errors.Is(err, ErrOAuthExchangeFailed):
		return "The platform rejected the authorization code"
	default:
		return "Internal server error"
	}
}
