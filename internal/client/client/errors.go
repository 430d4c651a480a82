package client

import (
	"errors"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"google.golang.org/grpc/codes"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrNotFound     = common.ErrorNotFound
	ErrInvalidInput = common.ErrorValidation
	ErrConflict     = common.ErrorAlreadyExists
)

// RemoteError is a failure answered by the server. Error returns the
// server's message so it can be shown to the user as is; errors.Is matches
// the sentinel of the status code.
type RemoteError struct {
	Code    codes.Code
	Message string
	kind    error
}

// NewRemoteError builds the error for a server answer with code and msg.
func NewRemoteError(code codes.Code, msg string) *RemoteError {
	e := &RemoteError{Code: code, Message: msg}
	switch code {
	case codes.Unauthenticated, codes.PermissionDenied:
		e.kind = ErrUnauthorized
	case codes.NotFound:
		e.kind = ErrNotFound
	case codes.InvalidArgument:
		e.kind = ErrInvalidInput
	case codes.AlreadyExists:
		e.kind = ErrConflict
	}
	return e
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.kind
}
