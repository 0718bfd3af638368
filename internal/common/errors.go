package common

import "errors"

var (
	// ErrAuth indicates invalid or missing provider credentials. Never
	// retried and never absorbed by a fallback path; surfaced to the
	// caller as a hard failure.
	ErrAuth = errors.New("provider authentication failed")
	// ErrQuota indicates the provider account has insufficient quota.
	// Surfaced like ErrAuth.
	ErrQuota = errors.New("provider quota exhausted")
)

// IsFatalProvider reports whether a provider error must abort the whole
// request rather than degrade to a deterministic fallback.
func IsFatalProvider(err error) bool {
	return errors.Is(err, ErrAuth) || errors.Is(err, ErrQuota)
}
