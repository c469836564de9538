package services

import "errors"

// Validation failures are returned to the caller as typed results; none of
// them is fatal. Store failures are wrapped and propagated instead.
var (
	ErrUsernameTaken     = errors.New("username taken")
	ErrAuthFailed        = errors.New("invalid username or password")
	ErrEmptyContent      = errors.New("tweet cannot be empty")
	ErrContentTooLong    = errors.New("tweet too long")
	ErrModerationBlocked = errors.New("tweet blocked by moderation")
	ErrDuplicatePost     = errors.New("duplicate tweet")
	ErrUserNotFound      = errors.New("user not found")
	ErrSelfFollow        = errors.New("cannot follow yourself")
)
