package cryptoadapter

import "fmt"

// ErrorCode classifies adapter failures. Callers do not retry crypto
// failures; the code only decides which handshake error surfaces.
type ErrorCode uint8

const (
	CodeUnsupportedAlgorithm ErrorCode = iota
	CodeRuntimeError
	CodeInvalidArgument
	CodeInvalidIVSize
)

func (c ErrorCode) String() string {
	switch c {
	case CodeUnsupportedAlgorithm:
		return "UnsupportedAlgorithm"
	case CodeRuntimeError:
		return "RuntimeError"
	case CodeInvalidArgument:
		return "InvalidArgument"
	case CodeInvalidIVSize:
		return "InvalidIVSize"
	default:
		return "Unknown"
	}
}

// AdapterError is the structured error every adapter operation returns.
type AdapterError struct {
	Code ErrorCode
	Op   string
	Err  error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crypto adapter %s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("crypto adapter %s: %s", e.Op, e.Code)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

func newAdapterError(code ErrorCode, op string, err error) *AdapterError {
	return &AdapterError{Code: code, Op: op, Err: err}
}
