package reconcile

import "errors"

var (
	// ErrMissingData means the after-snapshot lacks a required field
	// (userId, leaveType, or a usable day cost). The request is left
	// unprocessed so a corrected write can still be reconciled.
	ErrMissingData = errors.New("required request data missing")

	// ErrUserNotFound means the request's userId does not resolve to an
	// employee record. The request is left unprocessed.
	ErrUserNotFound = errors.New("employee not found for request")

	// ErrBalanceWrite wraps a transient failure updating the employee
	// balance. Nothing visible has happened yet; redelivery is safe.
	ErrBalanceWrite = errors.New("employee balance write failed")

	// ErrProcessedFlagWrite wraps a failure marking the request processed
	// after the balance write already landed. Redelivery of this event can
	// double-apply the debit, so it is logged at error severity and counted
	// for manual audit.
	ErrProcessedFlagWrite = errors.New("processed flag write failed")
)
