package errors

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrChannelNotFound   = errors.New("channel not found")
	ErrMessageNotFound   = errors.New("message not found")
	ErrAlreadySubscribed = errors.New("already subscribed to channel")
	ErrForbidden         = errors.New("forbidden")
)
