package banking

import "github.com/shopspring/decimal"

// EvaluateDebit runs the ordered policy checks for a proposed debit against a
// single settings snapshot and the current balance. The first failing check
// wins: a frozen card or a limit violation is reported even when the balance
// is also short, because each reason is actionable in a different way.
func EvaluateDebit(settings CardSettings, balance, amount decimal.Decimal) error {
	if settings.IsFrozen {
		return ErrCardFrozen
	}

	if settings.SpendingLimit.IsPositive() && amount.GreaterThan(settings.SpendingLimit) {
		return &LimitExceededError{Limit: settings.SpendingLimit, Amount: amount}
	}

	if amount.GreaterThan(balance) {
		return ErrInsufficientFunds
	}

	return nil
}

// EvaluateCredit gates incoming credits. A frozen card is fully inert: it
// rejects deposits it would receive, not just spending.
func EvaluateCredit(settings CardSettings) error {
	if settings.IsFrozen {
		return ErrCardFrozen
	}

	return nil
}
