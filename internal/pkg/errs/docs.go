// Package errs provides the shared error types of the food ordering service.
//
// Every type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) with a
// struct carrying the offending parameter. The struct unwraps to its sentinel, so
// callers classify failures with errors.Is and inspect details with errors.As.
// The HTTP adapter relies on that classification to pick status codes.
package errs
