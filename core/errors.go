package core

import (
	"errors"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrInvalidArgument malformed request
	ErrInvalidArgument ErrorCode = 100001
	// ErrInvalidAddress address can not be decoded
	ErrInvalidAddress ErrorCode = 100002
	// ErrUnauthorized caller may not act on the borrower
	ErrUnauthorized ErrorCode = 100003
	// ErrConfigNotFound protocol config not written yet
	ErrConfigNotFound ErrorCode = 100004

	// ErrUnderflow withdrawal exceeds the locked amount
	ErrUnderflow ErrorCode = 100100
	// ErrUnknownCollateral collateral without whitelist entry
	ErrUnknownCollateral ErrorCode = 100101
	// ErrPriceUnavailable oracle can not price the asset
	ErrPriceUnavailable ErrorCode = 100102
	// ErrInsufficientCollateral unlock would breach the borrow limit
	ErrInsufficientCollateral ErrorCode = 100103
	// ErrExceedsLimit borrow would breach the borrow limit
	ErrExceedsLimit ErrorCode = 100104
	// ErrOverflow arithmetic overflow
	ErrOverflow ErrorCode = 100105
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                "unknown error",
	ErrInvalidArgument:        "invalid argument",
	ErrInvalidAddress:         "invalid address",
	ErrUnauthorized:           "unauthorized",
	ErrConfigNotFound:         "protocol config not found",
	ErrUnderflow:              "collateral underflow",
	ErrUnknownCollateral:      "collateral not whitelisted",
	ErrPriceUnavailable:       "price unavailable",
	ErrInsufficientCollateral: "cannot unlock collateral more than minimum LTV",
	ErrExceedsLimit:           "cannot borrow more than minimum LTV",
	ErrOverflow:               "arithmetic overflow",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}

// Retryable whether the same request may succeed later without changes
func (e ErrorCode) Retryable() bool {
	return e == ErrPriceUnavailable
}

// ErrorCodeOf extract the error code carried by err, ErrUnknown if none
func ErrorCodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}
