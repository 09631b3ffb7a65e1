package repositories

import "errors"

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("follow relationship not found")
	ErrNotOwner         = errors.New("message does not belong to this user")
	ErrOwnMessage       = errors.New("cannot like your own message")
)
