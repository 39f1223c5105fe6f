package banking

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID       string
	Email    string
	Password string
	Name     string
	Phone    string
}

type Account struct {
	Number   string
	Type     string
	Balance  decimal.Decimal
	Currency string
	Status   string
	CardName string
}

// CardSettings holds the per-account policy configuration. A SpendingLimit
// that is zero or negative means no limit. The three channel toggles are
// recorded but not enforced by any money movement operation.
type CardSettings struct {
	IsFrozen                  bool            `json:"isFrozen"`
	OnlinePurchases           bool            `json:"onlinePurchases"`
	InternationalTransactions bool            `json:"internationalTransactions"`
	ContactlessPayments       bool            `json:"contactlessPayments"`
	SpendingLimit             decimal.Decimal `json:"spendingLimit"`
}

type TxDirection string

const (
	TxCredit TxDirection = "credit"
	TxDebit  TxDirection = "debit"
)

const (
	CategoryDeposit  = "deposit"
	CategoryTransfer = "transfer"
	CategoryBill     = "bill"
	CategorySavings  = "savings"
)

const StatusCompleted = "completed"

// TransactionRecord is one immutable balance-affecting event. Records are
// never modified after they are appended to an account's history.
type TransactionRecord struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Direction   TxDirection     `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
}

type SavingsGoal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Icon          string          `json:"icon"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

type Beneficiary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	Bank          string `json:"bank"`
	Nickname      string `json:"nickname"`
	IsFavorite    bool   `json:"isFavorite"`
}

type ScheduledPayment struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	PaymentType      string          `json:"paymentType"`
	Amount           decimal.Decimal `json:"amount"`
	RecipientAccount string          `json:"recipientAccount"`
	Frequency        string          `json:"frequency"`
	StartDate        string          `json:"startDate"`
	IsPaused         bool            `json:"isPaused"`
}

type Notification struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}

type Session struct {
	ID     string
	UserID string
}

type OTP struct {
	Code    string
	Expires time.Time
	// AccountNumber pins a deposit OTP to the account it was requested for
	AccountNumber string
}
