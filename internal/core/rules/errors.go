package rules

import "errors"

var ErrUnknownRule = errors.New("unknown rule")
