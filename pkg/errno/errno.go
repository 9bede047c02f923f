package errno

import "errors"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.Code, err.Error()
	}
	var ptr *Errno
	if errors.As(err, &ptr) {
		return ptr.Code, err.Error()
	}
	return InternalError.Code, err.Error()
}

// Common Errors
var (
	OK            = Errno{Code: 0, Message: "Success"}
	InternalError = Errno{Code: 10001, Message: "Internal error"}
	ErrBadArgs    = Errno{Code: 10002, Message: "Invalid arguments"}
	ErrConfig     = Errno{Code: 10003, Message: "Config error"}
)

// Derivation Errors (20000+)
var (
	ErrInvalidSeedLength      = Errno{Code: 20101, Message: "invalid seed length"}
	ErrInvalidSeedID          = Errno{Code: 20102, Message: "invalid seed ID"}
	ErrInvalidAddressType     = Errno{Code: 20201, Message: "invalid address type"}
	ErrInvalidIndex           = Errno{Code: 20202, Message: "index out of range"}
	ErrInvalidKey             = Errno{Code: 20203, Message: "invalid private key"}
	ErrKeyDerivationExhausted = Errno{Code: 20301, Message: "nonce range exceeded"}
	ErrSeedIDMismatch         = Errno{Code: 20302, Message: "seed ID mismatch"}
	ErrPublicKeyMismatch      = Errno{Code: 20401, Message: "public key type mismatch"}
	ErrBackendUnavailable     = Errno{Code: 20501, Message: "keygen backend unavailable"}
	ErrUnsafeBackend          = Errno{Code: 20502, Message: "keygen backend is not safe from timing attacks"}
)
