package service

import "errors"

// Action-terminal errors. Every validation failure happens before any
// mutation: an action either fully applies or has no observable effect.
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrInvalidPin       = errors.New("invalid pin")
	ErrAlreadyConnected = errors.New("player is already connected")
	ErrInvalidState     = errors.New("action not valid in the current state")
)
