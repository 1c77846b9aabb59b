package domain

import "errors"

// Storage errors. Access-denied and not-found map to distinct HTTP statuses.
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrAccessDenied   = errors.New("storage access denied")
)

// Generation errors, classified so operators can tell billing/auth problems
// from transient ones. None of these are retried by the core.
var (
	ErrGenerationAuth        = errors.New("model authentication failed, check the API credentials")
	ErrGenerationQuota       = errors.New("model quota exceeded, try again later")
	ErrGenerationRateLimited = errors.New("model rate limit exceeded, try again later")
	ErrGeneration            = errors.New("model generation failed")
	ErrEmptyGeneration       = errors.New("model returned empty content")
)

// ErrInvalidArgument marks caller errors: missing ids, malformed transcripts,
// out-of-turn messages. Handlers map it to a 400.
var ErrInvalidArgument = errors.New("invalid argument")
