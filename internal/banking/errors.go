package banking

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrUnauthenticated = errors.New("unauthenticated")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrInvalidOTP = errors.New("invalid or expired OTP")
var ErrEmailTaken = errors.New("email already registered")
var ErrAccountNotFound = errors.New("account not found")
var ErrCardFrozen = errors.New("card is frozen")
var ErrLimitExceeded = errors.New("spending limit exceeded")
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrInvalidAmount = errors.New("invalid amount")
var ErrGoalNotFound = errors.New("savings goal not found")
var ErrBeneficiaryNotFound = errors.New("beneficiary not found")
var ErrScheduleNotFound = errors.New("scheduled payment not found")
var ErrNotificationNotFound = errors.New("notification not found")

// LimitExceededError carries the configured limit and the attempted amount so
// the caller can render a precise message. It matches ErrLimitExceeded under
// errors.Is.
type LimitExceededError struct {
	Limit  decimal.Decimal
	Amount decimal.Decimal
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("amount %s exceeds spending limit of %s", e.Amount, e.Limit)
}

func (e *LimitExceededError) Is(target error) bool {
	return target == ErrLimitExceeded
}
