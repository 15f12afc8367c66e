package infra

import (
	"errors"
	"log/slog"

	"product-catalog/internal/pkg/errs"
)

type StoreErrorKind string

type StoreError struct {
	Kind StoreErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e StoreError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e StoreError) Unwrap() error {
	return e.err
}

// WrapStoreErr logs the failure and returns a StoreError of the given kind. The result is
// also marked with the matching errs sentinel so callers can use errs.Is.
func WrapStoreErr(slogger *slog.Logger, kind StoreErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	slogger.Error("Store error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return errs.Mark(StoreError{Kind: kind, msg: msg, err: err}, sentinelFor(kind))
}

func IsKind(err error, kind StoreErrorKind) bool {
	var e StoreError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func sentinelFor(kind StoreErrorKind) error {
	switch kind {
	case KindNotFound:
		return errs.ErrSnapshotNotFound
	case KindParse:
		return errs.ErrMalformedRecord
	default:
		return errs.ErrStorageFailure
	}
}

// Infrastructure-specific error kinds
const (
	KindNotFound  StoreErrorKind = "NOT_FOUND"
	KindParse     StoreErrorKind = "PARSE"
	KindIOFailure StoreErrorKind = "IO_FAILURE"
)
