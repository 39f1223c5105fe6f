package banking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
)

// Service methods could be split into smaller interfaces per concern, but a
// single surface keeps the API layer simple.
type Service interface {
	Register(ctx context.Context, request RegisterRequest) error
	Login(ctx context.Context, request LoginRequest) (*LoginResponse, error)
	VerifyOTP(ctx context.Context, request VerifyOTPRequest) (*VerifyOTPResponse, error)
	Authenticate(token string) (string, error)

	ListAccounts(ctx context.Context, userID string) ([]AccountView, error)
	Transactions(ctx context.Context, userID, number string, limit int) (*TransactionsResponse, error)

	CardSettings(ctx context.Context, userID, number string) (*CardSettings, error)
	UpdateCardSettings(ctx context.Context, userID, number string, update SettingsUpdate) (*CardSettings, error)

	RequestDeposit(ctx context.Context, userID string, request DepositInitRequest) (*DepositInitResponse, error)
	ConfirmDeposit(ctx context.Context, userID string, request DepositConfirmRequest) (*MovementResponse, error)
	Deposit(ctx context.Context, userID string, request DepositRequest) (*MovementResponse, error)
	Transfer(ctx context.Context, userID string, request TransferRequest) (*MovementResponse, error)
	PayBill(ctx context.Context, userID string, request PayBillRequest) (*MovementResponse, error)
	DepositToGoal(ctx context.Context, userID, goalID string, request GoalDepositRequest) (*SavingsGoal, error)

	Goals(ctx context.Context, userID string) ([]SavingsGoal, error)
	CreateGoal(ctx context.Context, userID string, request CreateGoalRequest) (*SavingsGoal, error)

	Beneficiaries(ctx context.Context, userID string) ([]Beneficiary, error)
	CreateBeneficiary(ctx context.Context, userID string, beneficiary Beneficiary) (*Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, userID string, beneficiary Beneficiary) error
	DeleteBeneficiary(ctx context.Context, userID, id string) error

	ScheduledPayments(ctx context.Context, userID string) ([]ScheduledPayment, error)
	CreateScheduledPayment(ctx context.Context, userID string, payment ScheduledPayment) (*ScheduledPayment, error)
	UpdateScheduledPayment(ctx context.Context, userID string, payment ScheduledPayment) error
	DeleteScheduledPayment(ctx context.Context, userID, id string) error

	Notifications(ctx context.Context, userID string) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, userID, id string) error

	BillProviders(ctx context.Context, billType string) []string
	Analytics(ctx context.Context, userID, period, number string) (*AnalyticsResponse, error)
}

type service struct {
	logger       *slog.Logger
	store        Store
	idProvider   IDProvider
	timeProvider TimeProvider
	publisher    EventPublisher

	// per-account locks serialize the check-mutate-record step for a single
	// account; operations on different accounts run concurrently
	lockMapMu    sync.Mutex
	accountLocks map[string]*sync.Mutex
}

func New(logger *slog.Logger, store Store, idProvider IDProvider, timeProvider TimeProvider, publisher EventPublisher) (Service, error) {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}

	return &service{
		logger:       logger,
		store:        store,
		idProvider:   idProvider,
		timeProvider: timeProvider,
		publisher:    publisher,
		accountLocks: make(map[string]*sync.Mutex),
	}, nil
}

func (s *service) accountLock(number string) *sync.Mutex {
	s.lockMapMu.Lock()
	defer s.lockMapMu.Unlock()

	lock, ok := s.accountLocks[number]

	if !ok {
		lock = &sync.Mutex{}
		s.accountLocks[number] = lock
	}

	return lock
}

// resolveAccount finds the acting account. An empty number selects the
// user's first account, which keeps callers that never name a source
// working the way they always have.
func (s *service) resolveAccount(userID, number string) (Account, error) {
	if number == "" {
		accounts := s.store.AccountsByUser(userID)

		if len(accounts) == 0 {
			return Account{}, ErrAccountNotFound
		}

		return accounts[0], nil
	}

	account, ok := s.store.Account(userID, number)

	if !ok {
		return Account{}, ErrAccountNotFound
	}

	return account, nil
}

func (s *service) ListAccounts(ctx context.Context, userID string) ([]AccountView, error) {
	accounts := s.store.AccountsByUser(userID)

	views := make([]AccountView, len(accounts))

	for i, account := range accounts {
		views[i] = AccountView{
			Number:       account.Number,
			Type:         account.Type,
			Balance:      account.Balance,
			Currency:     account.Currency,
			Status:       account.Status,
			CardName:     account.CardName,
			CardSettings: s.store.Settings(userID, account.Number),
		}
	}

	return views, nil
}

func (s *service) Transactions(ctx context.Context, userID, number string, limit int) (*TransactionsResponse, error) {
	account, err := s.resolveAccount(userID, number)

	if err != nil {
		return nil, err
	}

	records := s.store.Transactions(account.Number, limit)

	return &TransactionsResponse{
		Transactions: records,
		TotalCount:   len(records),
	}, nil
}

func (s *service) CardSettings(ctx context.Context, userID, number string) (*CardSettings, error) {
	if _, ok := s.store.Account(userID, number); !ok {
		return nil, ErrAccountNotFound
	}

	settings := s.store.Settings(userID, number)

	return &settings, nil
}

func (s *service) UpdateCardSettings(ctx context.Context, userID, number string, update SettingsUpdate) (*CardSettings, error) {
	if _, ok := s.store.Account(userID, number); !ok {
		return nil, ErrAccountNotFound
	}

	settings := s.store.UpdateSettings(userID, number, update)

	return &settings, nil
}

// credit applies a policy-gated credit to the account and records it. The
// per-account lock makes the settings snapshot, the balance mutation and the
// record append one serialized step.
func (s *service) credit(userID, number string, amount decimal.Decimal, category, description string) (*MovementResponse, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	account, err := s.resolveAccount(userID, number)

	if err != nil {
		return nil, err
	}

	lock := s.accountLock(account.Number)
	lock.Lock()
	defer lock.Unlock()

	settings := s.store.Settings(userID, account.Number)

	if err := EvaluateCredit(settings); err != nil {
		return nil, err
	}

	record := TransactionRecord{
		ID:          s.idProvider.NextID(),
		Date:        s.timeProvider.NowUTC(),
		Direction:   TxCredit,
		Category:    category,
		Amount:      amount,
		Description: description,
		Status:      StatusCompleted,
	}

	newBalance, err := s.store.Credit(account.Number, amount, record)

	if err != nil {
		return nil, fmt.Errorf("credit account %s failed: %w", account.Number, err)
	}

	s.publishMovement(record, account.Number, newBalance)

	return &MovementResponse{
		TransactionID: record.ID,
		NewBalance:    newBalance,
	}, nil
}

// debit applies a policy-gated debit to the account and records it. All
// three policy checks run against a single settings snapshot taken under the
// account lock.
func (s *service) debit(userID, number string, amount decimal.Decimal, category, description string) (*MovementResponse, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	account, err := s.resolveAccount(userID, number)

	if err != nil {
		return nil, err
	}

	lock := s.accountLock(account.Number)
	lock.Lock()
	defer lock.Unlock()

	// re-read the balance under the lock, the resolve above raced
	current, ok := s.store.Account(userID, account.Number)

	if !ok {
		return nil, ErrAccountNotFound
	}

	settings := s.store.Settings(userID, account.Number)

	if err := EvaluateDebit(settings, current.Balance, amount); err != nil {
		return nil, err
	}

	record := TransactionRecord{
		ID:          s.idProvider.NextID(),
		Date:        s.timeProvider.NowUTC(),
		Direction:   TxDebit,
		Category:    category,
		Amount:      amount,
		Description: description,
		Status:      StatusCompleted,
	}

	newBalance, err := s.store.Debit(account.Number, amount, record)

	if err != nil {
		return nil, err
	}

	s.publishMovement(record, account.Number, newBalance)

	return &MovementResponse{
		TransactionID: record.ID,
		NewBalance:    newBalance,
	}, nil
}

func (s *service) publishMovement(record TransactionRecord, number string, newBalance decimal.Decimal) {
	event := TransactionCompleted{
		TransactionID: record.ID,
		AccountNumber: number,
		Direction:     record.Direction,
		Category:      record.Category,
		Amount:        record.Amount,
		NewBalance:    newBalance,
		OccurredAt:    record.Date,
	}

	if err := s.publisher.Publish(TopicTransactionCompleted, event); err != nil {
		s.logger.Warn("publish transaction event failed", "transaction_id", record.ID, "error", err)
	}
}

func (s *service) Deposit(ctx context.Context, userID string, request DepositRequest) (*MovementResponse, error) {
	return s.credit(userID, request.AccountNumber, request.Amount, CategoryDeposit, "Card Deposit")
}

func (s *service) Transfer(ctx context.Context, userID string, request TransferRequest) (*MovementResponse, error) {
	description := fmt.Sprintf("Transfer to %s", request.RecipientAccountNumber)

	return s.debit(userID, request.FromAccountNumber, request.Amount, CategoryTransfer, description)
}

func (s *service) PayBill(ctx context.Context, userID string, request PayBillRequest) (*MovementResponse, error) {
	description := request.Description

	if description == "" {
		description = fmt.Sprintf("%s Bill Payment", request.Provider)
	}

	return s.debit(userID, request.FromAccountNumber, request.Amount, CategoryBill, description)
}

func (s *service) DepositToGoal(ctx context.Context, userID, goalID string, request GoalDepositRequest) (*SavingsGoal, error) {
	if !request.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	// resolve the goal before touching the ledger so a bad goal id cannot
	// leave a dangling debit
	goalExists := false

	for _, goal := range s.store.GoalsByUser(userID) {
		if goal.ID == goalID {
			goalExists = true
			break
		}
	}

	if !goalExists {
		return nil, ErrGoalNotFound
	}

	if _, err := s.debit(userID, request.FromAccountNumber, request.Amount, CategorySavings, "Savings Goal Deposit"); err != nil {
		return nil, err
	}

	goal, ok := s.store.AddToGoal(userID, goalID, request.Amount)

	if !ok {
		return nil, ErrGoalNotFound
	}

	return &goal, nil
}
