package apierror

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindInsufficientFunds, apperrors.KindInvalidReference:
		return http.StatusUnprocessableEntity
	case apperrors.KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond records err on the request's LogData and converts it to a huma error.
// Internal errors are reported with message only.
func Respond(ctx context.Context, err error, message string) error {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("error", err.Error())
	}

	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		return huma.NewError(status, message)
	}
	return huma.NewError(status, message, err)
}

// Timed runs fn under a LogData timing entry when the request has one.
func Timed(ctx context.Context, name string, fn func() error) error {
	logData := logging.GetLogData(ctx)
	if logData == nil {
		return fn()
	}
	stopTimer := logData.AddTiming(name)
	defer stopTimer()
	return fn()
}

// AddData sets a LogData field when the request has one.
func AddData(ctx context.Context, key string, value interface{}) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData(key, value)
	}
}
