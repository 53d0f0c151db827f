package header

import "errors"

var (
	ErrUnterminatedArray = errors.New("unterminated array")
	ErrInvalidValue      = errors.New("invalid value")
	ErrUnknownKind       = errors.New("unknown header kind")
)
