package llm

import (
	"errors"

	"github.com/D-dracula/merchantlens/internal/common"
)

// Provider errors that abort the whole request live in common so fallback
// plumbing can recognize them without importing this package.
var (
	// ErrAuth indicates invalid or missing provider credentials.
	ErrAuth = common.ErrAuth
	// ErrQuota indicates the provider account has insufficient quota.
	ErrQuota = common.ErrQuota
)

var (
	// ErrMaxIterations indicates the tool-use session exceeded its round
	// cap. Fatal for that session only; callers fall back to deterministic
	// output.
	ErrMaxIterations = errors.New("tool-use session exceeded max iterations")
	// ErrEmptyResponse indicates the provider returned no usable content.
	ErrEmptyResponse = errors.New("provider returned no completion choices")
)
