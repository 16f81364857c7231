package usecase

// AccessDecision is the outcome of the access gate for verification-gated
// functionality.
type AccessDecision int

const (
	// AccessLoginRequired means the caller is not authenticated and must log in.
	AccessLoginRequired AccessDecision = iota

	// AccessVerificationRequired means the caller is authenticated but has not
	// verified their email address yet.
	AccessVerificationRequired

	// AccessAllowed means the caller may reach the gated functionality.
	AccessAllowed
)

// DecideAccess is the single access-control decision combining authentication
// and verification status. Every gated entry point goes through this function
// so the decision table lives in exactly one place.
func DecideAccess(authenticated, verified bool) AccessDecision {
	switch {
	case !authenticated:
		return AccessLoginRequired
	case !verified:
		return AccessVerificationRequired
	default:
		return AccessAllowed
	}
}
