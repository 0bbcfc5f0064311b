package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgUnknownRating      = "unknown rating id"
	ErrMsgUnknownCollectible = "unknown collectible id"
	ErrMsgCorruptState       = "corrupt persisted state"
	ErrMsgPersistence        = "state persistence failed"
	ErrMsgAlreadyDoneToday   = "already done today"
	ErrMsgOnCooldown         = "action on cooldown"
	ErrMsgInvalidInput       = "invalid input"
)

// Common domain errors
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	// ErrUnknownRating means the engine produced a rating id that is not
	// registered in the reward tables. Programming error, never user-facing.
	ErrUnknownRating = errors.New(ErrMsgUnknownRating)

	// ErrUnknownCollectible means a collectible id is not in the catalog.
	ErrUnknownCollectible = errors.New(ErrMsgUnknownCollectible)

	// ErrCorruptState means the persisted document failed to load or its
	// schema version is unsupported.
	ErrCorruptState = errors.New(ErrMsgCorruptState)

	// ErrPersistence means the durable write step failed. In-memory state
	// has already advanced; callers surface this as a warning, not a loss.
	ErrPersistence = errors.New(ErrMsgPersistence)

	// ErrAlreadyDoneToday and ErrOnCooldown are soft rejections. The
	// command layer converts them into ordinary response values.
	ErrAlreadyDoneToday = errors.New(ErrMsgAlreadyDoneToday)
	ErrOnCooldown       = errors.New(ErrMsgOnCooldown)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
