package banking

import "github.com/shopspring/decimal"

// Store is the injected state backend. The service owns all policy; the
// store's only invariant is that Credit and Debit adjust the balance and
// append the paired record as one atomic unit, so no reader ever observes
// one without the other.
type Store interface {
	UserStore
	AccountStore
	LedgerStore
	SettingsStore
	CollectionStore
}

type UserStore interface {
	CreateUser(user User) error
	UserByEmail(email string) (User, bool)
	UserByID(id string) (User, bool)

	PutSession(session Session)
	SessionUserID(sessionID string) (string, bool)
	PutOTP(key string, otp OTP)
	// ConsumeOTP removes and returns the OTP at key when its code matches,
	// as one step, so a code is redeemed at most once. A mismatch leaves
	// the entry in place for a retry.
	ConsumeOTP(key, code string) (OTP, bool)
}

type AccountStore interface {
	// CreateAccount registers the account under the user. Accounts keep
	// their creation order; the first account is the default source for
	// operations that do not name one.
	CreateAccount(userID string, account Account) error
	AccountsByUser(userID string) []Account
	Account(userID, number string) (Account, bool)
}

type LedgerStore interface {
	// Credit adds amount to the account's balance and prepends the record
	// to its history. Returns the new balance.
	Credit(number string, amount decimal.Decimal, record TransactionRecord) (decimal.Decimal, error)

	// Debit subtracts amount from the account's balance and prepends the
	// record. Fails with ErrInsufficientFunds when amount exceeds the
	// balance, leaving balance and history untouched.
	Debit(number string, amount decimal.Decimal, record TransactionRecord) (decimal.Decimal, error)

	// Transactions returns the account's history newest-first. A positive
	// limit caps the result.
	Transactions(number string, limit int) []TransactionRecord
}

// SettingsUpdate is a partial card settings change: only non-nil fields are
// applied.
type SettingsUpdate struct {
	IsFrozen                  *bool            `json:"isFrozen"`
	OnlinePurchases           *bool            `json:"onlinePurchases"`
	InternationalTransactions *bool            `json:"internationalTransactions"`
	ContactlessPayments       *bool            `json:"contactlessPayments"`
	SpendingLimit             *decimal.Decimal `json:"spendingLimit"`
}

type SettingsStore interface {
	Settings(userID, number string) CardSettings
	UpdateSettings(userID, number string, update SettingsUpdate) CardSettings
}

type CollectionStore interface {
	GoalsByUser(userID string) []SavingsGoal
	CreateGoal(userID string, goal SavingsGoal)
	AddToGoal(userID, goalID string, amount decimal.Decimal) (SavingsGoal, bool)

	BeneficiariesByUser(userID string) []Beneficiary
	CreateBeneficiary(userID string, beneficiary Beneficiary)
	UpdateBeneficiary(userID string, beneficiary Beneficiary) bool
	DeleteBeneficiary(userID, id string)

	ScheduledPaymentsByUser(userID string) []ScheduledPayment
	CreateScheduledPayment(userID string, payment ScheduledPayment)
	UpdateScheduledPayment(userID string, payment ScheduledPayment) bool
	DeleteScheduledPayment(userID, id string)

	NotificationsByUser(userID string) []Notification
	CreateNotification(userID string, notification Notification)
	MarkNotificationRead(userID, id string) bool
	MarkAllNotificationsRead(userID string)
	DeleteNotification(userID, id string)
}
