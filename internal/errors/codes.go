package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK Code = "OK"

	// CodeInvalidInput marks malformed or out-of-range arguments: wrong dice
	// count, a face outside the dice kind, an index outside the roll.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeIllegalOperation marks a rule violation on otherwise well-formed
	// input: holding junk dice, reselecting an earthling type, placing into a
	// full column.
	CodeIllegalOperation Code = "ILLEGAL_OPERATION"

	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	CodeInternal      Code = "INTERNAL"
	CodeUnavailable   Code = "UNAVAILABLE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Recoverable reports whether the caller can keep its last good state and
// retry with corrected input.
func (c Code) Recoverable() bool {
	switch c {
	case CodeInvalidInput, CodeIllegalOperation, CodeNotFound, CodeAlreadyExists:
		return true
	default:
		return false
	}
}
