package common

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func NewNotFound(entity string) error {
	return NotFoundError{Entity: entity}
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// InvalidArgumentError is a caller mistake whose message is safe to echo back.
type InvalidArgumentError struct {
	Message string
}

func (e InvalidArgumentError) Error() string {
	return e.Message
}

func NewInvalidArgument(format string, args ...any) error {
	return InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

func IsInvalidArgument(err error) bool {
	var ia InvalidArgumentError
	return errors.As(err, &ia)
}

type StorageErrorKind int

const (
	StorageFailure StorageErrorKind = iota
	StorageUniqueViolation
)

// StorageError is a failed write against the backing store.
type StorageError struct {
	Op   string
	Kind StorageErrorKind
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, kind StorageErrorKind, err error) error {
	return &StorageError{Op: op, Kind: kind, Err: err}
}

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func IsUniqueViolation(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Kind == StorageUniqueViolation
}
