package infra

import (
	"errors"

	"table-reserve/internal/pkg/errs"
)

type StorageErrorKind string

type StorageError struct {
	Kind StorageErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e StorageError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e StorageError) Unwrap() error {
	return e.err
}

func WrapStorageErr(msg string, err error, kinds ...StorageErrorKind) error {
	kind := KindStorageFailure
	if len(kinds) > 0 {
		kind = kinds[0]
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return StorageError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind StorageErrorKind) bool {
	var e StorageError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindStorageFailure  StorageErrorKind = "STORAGE_FAILURE"
	KindCorruptSnapshot StorageErrorKind = "CORRUPT_SNAPSHOT"
)
