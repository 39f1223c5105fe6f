package banking

import (
	"time"

	"github.com/shopspring/decimal"
)

const TopicTransactionCompleted = "transaction_completed"

// EventPublisher receives a notification for every completed money movement.
// Publishing happens after the balance mutation is committed; a publish
// failure never rolls the operation back.
type EventPublisher interface {
	Publish(topic string, event any) error
}

type TransactionCompleted struct {
	TransactionID string          `json:"transaction_id"`
	AccountNumber string          `json:"account_number"`
	Direction     TxDirection     `json:"direction"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event. It is the
// default when no broker is configured.
func NewNoopPublisher() EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(string, any) error {
	return nil
}
