package gendocs

import "errors"

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates access is not allowed.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition indicates a status change the state machine rejects.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDeliveryFailed indicates the mail provider rejected the send. The
	// document status is left unchanged.
	ErrDeliveryFailed = errors.New("delivery failed")
)
