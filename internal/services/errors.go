package services

import "errors"

// Friend request engine error kinds. Handlers match these with errors.Is
// and map each kind to a fixed HTTP status; no error is resolved silently
// below the transport boundary.
var (
	// ErrNotFound means the identity did not resolve to any record.
	ErrNotFound = errors.New("friend request not found")

	// ErrSelfRequest means a user tried to friend-request themselves.
	ErrSelfRequest = errors.New("cannot send a friend request to yourself")

	// ErrDuplicatePending means a Pending request already exists between
	// the two users, in either direction.
	ErrDuplicatePending = errors.New("a pending friend request already exists between these users")

	// ErrUserNotFound means a referenced user does not exist.
	ErrUserNotFound = errors.New("referenced user does not exist")

	// ErrInvalidTransition means the request is already resolved, or the
	// target status is not a terminal one.
	ErrInvalidTransition = errors.New("friend request status transition not allowed")

	// ErrStoreUnavailable wraps unexpected store failures; callers may
	// retry with backoff.
	ErrStoreUnavailable = errors.New("store unavailable")
)
