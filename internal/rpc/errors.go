package rpc

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/fitconnect/community/internal/domain"
)

// connectError maps service-layer error kinds to Connect error codes.
// Storage failures surface as CodeInternal.
func connectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &notFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.As(err, &validation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &conflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
