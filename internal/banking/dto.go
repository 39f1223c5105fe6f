package banking

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	SessionID   string `json:"sessionId"`
	RequiresOTP bool   `json:"requiresOTP"`
	DebugOTP    string `json:"debugOtp,omitempty"`
}

type VerifyOTPRequest struct {
	SessionID string `json:"sessionId"`
	OTP       string `json:"otp"`
}

type VerifyOTPResponse struct {
	SessionToken string `json:"sessionToken"`
	CustomerID   string `json:"customerId"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
}

// AccountView is an account with its card settings attached, the shape the
// account listing is polled in.
type AccountView struct {
	Number       string          `json:"number"`
	Type         string          `json:"type"`
	Balance      decimal.Decimal `json:"balance"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
	CardName     string          `json:"cardName"`
	CardSettings CardSettings    `json:"cardSettings"`
}

type TransactionsResponse struct {
	Transactions []TransactionRecord `json:"transactions"`
	TotalCount   int                 `json:"totalCount"`
}

type DepositInitRequest struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
}

type DepositInitResponse struct {
	DebugOTP string `json:"debugOtp,omitempty"`
}

type DepositConfirmRequest struct {
	OTP           string          `json:"otp"`
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
}

type DepositRequest struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
}

type TransferRequest struct {
	FromAccountNumber      string          `json:"fromAccountNumber"`
	RecipientAccountNumber string          `json:"recipientAccountNumber"`
	Amount                 decimal.Decimal `json:"amount"`
}

type PayBillRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	Provider          string          `json:"provider"`
	BillNumber        string          `json:"billNumber"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}

type GoalDepositRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	Amount            decimal.Decimal `json:"amount"`
}

type CreateGoalRequest struct {
	Name         string          `json:"name"`
	Icon         string          `json:"icon"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
}

// MovementResponse is the success result of every money movement operation.
type MovementResponse struct {
	TransactionID string          `json:"transactionId"`
	NewBalance    decimal.Decimal `json:"newBalance"`
}

type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type DayAmount struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type AnalyticsInsights struct {
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	TotalIncome decimal.Decimal `json:"totalIncome"`
	AvgDaily    decimal.Decimal `json:"avgDaily"`
}

type AnalyticsResponse struct {
	ByCategory []CategoryAmount  `json:"byCategory"`
	Daily      []DayAmount       `json:"daily,omitempty"`
	Insights   AnalyticsInsights `json:"insights"`
}
