package channel

import "errors"

// Sentinel errors for channel operations.
var (
	// ErrUnauthorized indicates an inbound request failed platform
	// authentication (e.g. a webhook secret mismatch). The gateway maps
	// it to 401 without processing the payload.
	ErrUnauthorized = errors.New("channel: unauthorized")

	// ErrNoChannel indicates no channel is registered under the
	// requested name.
	ErrNoChannel = errors.New("channel: no channel registered")

	// ErrDuplicateChannel indicates a channel name is already taken.
	ErrDuplicateChannel = errors.New("channel: duplicate channel")
)
