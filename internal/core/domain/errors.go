package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindConflict         ErrorKind = "conflict"
	KindNotFound         ErrorKind = "not_found"
	KindForbidden        ErrorKind = "forbidden"
	KindInactiveArea     ErrorKind = "inactive_area"
	KindAlreadyCancelled ErrorKind = "already_cancelled"
)

// Rejection reasons reported by the reservation validator.
const (
	ReasonMissingFields        = "missing_fields"
	ReasonMalformedInput       = "malformed_input"
	ReasonInvalidInterval      = "invalid_interval"
	ReasonInsufficientLeadTime = "insufficient_lead_time"
	ReasonBeyondBookingWindow  = "beyond_booking_window"
	ReasonOutsideHours         = "outside_operating_hours"
	ReasonDayNotEnabled        = "day_not_enabled"
	ReasonSlotOverlap          = "slot_overlap"
	ReasonPaymentProofRequired = "payment_proof_required"
)

// Error is the error type surfaced by the reservation core. Kind is stable and
// machine readable; Code narrows it (e.g. the validator's rejection reason).
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind. A target with a Code also
// requires the code to match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == "" || t.Code == e.Code)
}

var (
	ErrValidation       = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrConflict         = &Error{Kind: KindConflict, Message: "conflict"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrForbidden        = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrInactiveArea     = &Error{Kind: KindInactiveArea, Message: "area is not active"}
	ErrAlreadyCancelled = &Error{Kind: KindAlreadyCancelled, Message: "reservation is already cancelled"}
)

func NewValidationError(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NewConflictError(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewInactiveAreaError(name string) *Error {
	return &Error{Kind: KindInactiveArea, Message: fmt.Sprintf("area %q is not active", name)}
}

func NewAlreadyCancelledError() *Error {
	return &Error{Kind: KindAlreadyCancelled, Message: "reservation is already cancelled"}
}

// KindOf returns the kind of a core error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// CodeOf returns the rejection code of a core error, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
