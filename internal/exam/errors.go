package exam

import "errors"

// Lexical errors. Each one aborts the cell, row and table being parsed.
var (
	ErrInvalidWeekdayCode = errors.New("invalid weekday code")
	ErrUnknownWeekdayName = errors.New("unknown weekday name")
	ErrInvalidTime        = errors.New("invalid time")
	ErrInvalidDate        = errors.New("invalid exam date")
	ErrInvalidSlot        = errors.New("invalid exam slot")
)

// ErrDecode is returned when an encoded class cannot be decoded.
var ErrDecode = errors.New("invalid encoded class")
