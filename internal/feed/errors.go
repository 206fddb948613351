package feed

import "errors"

var (
	ErrServerClosed   = errors.New("feed server is closed")
	ErrInvalidMessage = errors.New("invalid sample message")
	ErrInboxFull      = errors.New("sample inbox is full")
)
