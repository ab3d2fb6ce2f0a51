// errors.go defines sentinel errors for validation failures.
//
// Separated to centralise error definitions. These errors are used with
// errors.Is() for type-safe error checking. Detailed messages are provided
// by wrapping these with fmt.Errorf in the validation functions.

package validate

import "errors"

// ErrColumnMissing is returned when a required column is absent from the
// header. No per-record checks are attempted in that case.
var ErrColumnMissing = errors.New("required column missing")
