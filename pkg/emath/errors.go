package emath

import "errors"

// ErrDomain is returned when an input falls outside the domain of a
// function, e.g. the log of a non-positive number or a zero divisor.
var ErrDomain = errors.New("emath: domain error")
