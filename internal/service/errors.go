package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/forecast"
	"github.com/mmynk/cashflow/internal/models"
	"github.com/mmynk/cashflow/internal/storage"
)

// connectError logs err and converts it to a Connect error with the code
// matching its sentinel.
func connectError(op string, err error) error {
	code := errorCode(err)
	if code == connect.CodeInternal || code == connect.CodeUnavailable {
		slog.Error(op+" failed", "error", err)
	} else {
		slog.Warn(op+" rejected", "code", code, "error", err)
	}
	return connect.NewError(code, fmt.Errorf("%s: %w", op, err))
}

func errorCode(err error) connect.Code {
	switch {
	case errors.Is(err, calendar.ErrInvalidDateRange),
		errors.Is(err, models.ErrMalformedEvent):
		return connect.CodeInvalidArgument
	case errors.Is(err, forecast.ErrMissingStartingBalance),
		errors.Is(err, storage.ErrNoBalance):
		return connect.CodeFailedPrecondition
	case errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, storage.ErrUnavailable):
		return connect.CodeUnavailable
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	}
	return connect.CodeInternal
}

func invalidArgument(op string, err error) error {
	slog.Warn(op+" rejected", "error", err)
	return connect.NewError(connect.CodeInvalidArgument, err)
}
