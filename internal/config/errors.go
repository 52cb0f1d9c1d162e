package config

import "errors"

// Sentinel errors returned by Store. The root package wraps these into its
// own taxonomy (see WrapError); internal/config never depends upward.
var (
	ErrUnknownKey    = errors.New("config: unknown key")
	ErrNotWritable   = errors.New("config: key is read-only")
	ErrValueTooLong  = errors.New("config: value exceeds key capacity")
	ErrTypeMismatch  = errors.New("config: value does not match key's declared type")
	ErrIndexOutOfRange = errors.New("config: index out of range")
)
