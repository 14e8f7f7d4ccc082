package backend

import (
	"errors"
	"strings"
)

// Kind classifies a failed call to the shop API.
type Kind string

const (
	// KindConnection covers timeouts, network failures and bodies that are not JSON.
	KindConnection Kind = "connection"
	// KindBackend is a well-formed response that reports a logical failure.
	KindBackend Kind = "backend"
)

const detailLimit = 100

// Error is the structured failure returned by every Client call.
type Error struct {
	Kind    Kind
	Action  Action
	Message string
	// Detail carries the underlying transport error, truncated for display.
	Detail string
}

func (e *Error) Error() string { return e.Message }

// IsConnection reports whether err is a connection failure.
func IsConnection(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == KindConnection
}

// IsBackend reports whether err is a logical failure reported by the API.
func IsBackend(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == KindBackend
}

// Message returns the user-facing text of err.
func Message(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// Detail returns the truncated transport detail of a connection failure.
func Detail(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Detail
	}
	return ""
}

// MentionsPayment reports whether the API rejected the call because the
// shop's subscription needs paying.
func MentionsPayment(err error) bool {
	msg := strings.ToLower(Message(err))
	return strings.Contains(msg, "payment") || strings.Contains(msg, "subscription")
}

func connectionError(action Action, message string, cause error) *Error {
	detail := cause.Error()
	if r := []rune(detail); len(r) > detailLimit {
		detail = string(r[:detailLimit])
	}
	return &Error{Kind: KindConnection, Action: action, Message: message, Detail: detail}
}
