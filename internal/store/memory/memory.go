// Package memory is the in-memory implementation of banking.Store. All
// state lives in maps behind one RWMutex; every mutation runs in a single
// critical section, which is what makes a balance change and its paired
// transaction record indivisible to readers.
package memory

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/seifalaa111/SOBS-Banking-App-sub000/internal/banking"
)

type accountRef struct {
	userID string
	index  int
}

type Store struct {
	mu sync.RWMutex

	users        map[string]banking.User
	userIDsEmail map[string]string
	sessions     map[string]string
	otps         map[string]banking.OTP

	accounts map[string][]banking.Account
	owners   map[string]accountRef

	settings     map[string]map[string]banking.CardSettings
	transactions map[string][]banking.TransactionRecord

	goals         map[string][]banking.SavingsGoal
	beneficiaries map[string][]banking.Beneficiary
	scheduled     map[string][]banking.ScheduledPayment
	notifications map[string][]banking.Notification
}

func New() *Store {
	return &Store{
		users:         make(map[string]banking.User),
		userIDsEmail:  make(map[string]string),
		sessions:      make(map[string]string),
		otps:          make(map[string]banking.OTP),
		accounts:      make(map[string][]banking.Account),
		owners:        make(map[string]accountRef),
		settings:      make(map[string]map[string]banking.CardSettings),
		transactions:  make(map[string][]banking.TransactionRecord),
		goals:         make(map[string][]banking.SavingsGoal),
		beneficiaries: make(map[string][]banking.Beneficiary),
		scheduled:     make(map[string][]banking.ScheduledPayment),
		notifications: make(map[string][]banking.Notification),
	}
}

var _ banking.Store = (*Store)(nil)
var _ banking.HistorySeeder = (*Store)(nil)

// --- users & sessions ---

func (s *Store) CreateUser(user banking.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return errors.New("user id already exists")
	}

	if _, exists := s.userIDsEmail[user.Email]; exists {
		return banking.ErrEmailTaken
	}

	s.users[user.ID] = user
	s.userIDsEmail[user.Email] = user.ID

	return nil
}

func (s *Store) UserByEmail(email string) (banking.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userIDsEmail[email]

	if !ok {
		return banking.User{}, false
	}

	user, ok := s.users[id]

	return user, ok
}

func (s *Store) UserByID(id string) (banking.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]

	return user, ok
}

func (s *Store) PutSession(session banking.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session.UserID
}

func (s *Store) SessionUserID(sessionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.sessions[sessionID]

	return userID, ok
}

func (s *Store) PutOTP(key string, otp banking.OTP) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.otps[key] = otp
}

func (s *Store) ConsumeOTP(key, code string) (banking.OTP, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	otp, ok := s.otps[key]

	if !ok || otp.Code != code {
		return banking.OTP{}, false
	}

	delete(s.otps, key)

	return otp, true
}

// --- accounts ---

func (s *Store) CreateAccount(userID string, account banking.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.owners[account.Number]; exists {
		return errors.New("account number already exists")
	}

	s.accounts[userID] = append(s.accounts[userID], account)
	s.owners[account.Number] = accountRef{userID: userID, index: len(s.accounts[userID]) - 1}

	return nil
}

func (s *Store) AccountsByUser(userID string) []banking.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]banking.Account, len(s.accounts[userID]))
	copy(accounts, s.accounts[userID])

	return accounts
}

func (s *Store) Account(userID, number string) (banking.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, ok := s.owners[number]

	if !ok || ref.userID != userID {
		return banking.Account{}, false
	}

	return s.accounts[ref.userID][ref.index], true
}

// --- ledger ---

func (s *Store) Credit(number string, amount decimal.Decimal, record banking.TransactionRecord) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.owners[number]

	if !ok {
		return decimal.Zero, banking.ErrAccountNotFound
	}

	account := &s.accounts[ref.userID][ref.index]
	account.Balance = account.Balance.Add(amount)

	s.prependRecord(number, record)

	return account.Balance, nil
}

func (s *Store) Debit(number string, amount decimal.Decimal, record banking.TransactionRecord) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.owners[number]

	if !ok {
		return decimal.Zero, banking.ErrAccountNotFound
	}

	account := &s.accounts[ref.userID][ref.index]

	if amount.GreaterThan(account.Balance) {
		return decimal.Zero, banking.ErrInsufficientFunds
	}

	account.Balance = account.Balance.Sub(amount)

	s.prependRecord(number, record)

	return account.Balance, nil
}

// prependRecord keeps histories newest-first. Callers hold the write lock.
func (s *Store) prependRecord(number string, record banking.TransactionRecord) {
	history := s.transactions[number]

	updated := make([]banking.TransactionRecord, 0, len(history)+1)
	updated = append(updated, record)
	updated = append(updated, history...)

	s.transactions[number] = updated
}

func (s *Store) Transactions(number string, limit int) []banking.TransactionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.transactions[number]

	if limit > 0 && limit < len(history) {
		history = history[:limit]
	}

	records := make([]banking.TransactionRecord, len(history))
	copy(records, history)

	return records
}

func (s *Store) SeedHistory(number string, records []banking.TransactionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]banking.TransactionRecord, len(records))
	copy(history, records)

	s.transactions[number] = history
}

// --- card settings ---

func (s *Store) Settings(userID, number string) banking.CardSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings[userID][number]
}

func (s *Store) UpdateSettings(userID, number string, update banking.SettingsUpdate) banking.CardSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings[userID] == nil {
		s.settings[userID] = make(map[string]banking.CardSettings)
	}

	settings := s.settings[userID][number]

	if update.IsFrozen != nil {
		settings.IsFrozen = *update.IsFrozen
	}
	if update.OnlinePurchases != nil {
		settings.OnlinePurchases = *update.OnlinePurchases
	}
	if update.InternationalTransactions != nil {
		settings.InternationalTransactions = *update.InternationalTransactions
	}
	if update.ContactlessPayments != nil {
		settings.ContactlessPayments = *update.ContactlessPayments
	}
	if update.SpendingLimit != nil {
		settings.SpendingLimit = *update.SpendingLimit
	}

	s.settings[userID][number] = settings

	return settings
}

// --- savings goals ---

func (s *Store) GoalsByUser(userID string) []banking.SavingsGoal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goals := make([]banking.SavingsGoal, len(s.goals[userID]))
	copy(goals, s.goals[userID])

	return goals
}

func (s *Store) CreateGoal(userID string, goal banking.SavingsGoal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals[userID] = append(s.goals[userID], goal)
}

func (s *Store) AddToGoal(userID, goalID string, amount decimal.Decimal) (banking.SavingsGoal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals := s.goals[userID]

	for i := range goals {
		if goals[i].ID == goalID {
			goals[i].CurrentAmount = goals[i].CurrentAmount.Add(amount)
			return goals[i], true
		}
	}

	return banking.SavingsGoal{}, false
}

// --- beneficiaries ---

func (s *Store) BeneficiariesByUser(userID string) []banking.Beneficiary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	beneficiaries := make([]banking.Beneficiary, len(s.beneficiaries[userID]))
	copy(beneficiaries, s.beneficiaries[userID])

	return beneficiaries
}

func (s *Store) CreateBeneficiary(userID string, beneficiary banking.Beneficiary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.beneficiaries[userID] = append(s.beneficiaries[userID], beneficiary)
}

func (s *Store) UpdateBeneficiary(userID string, beneficiary banking.Beneficiary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	beneficiaries := s.beneficiaries[userID]

	for i := range beneficiaries {
		if beneficiaries[i].ID == beneficiary.ID {
			beneficiaries[i] = beneficiary
			return true
		}
	}

	return false
}

func (s *Store) DeleteBeneficiary(userID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	beneficiaries := s.beneficiaries[userID]

	for i := range beneficiaries {
		if beneficiaries[i].ID == id {
			s.beneficiaries[userID] = append(beneficiaries[:i:i], beneficiaries[i+1:]...)
			return
		}
	}
}

// --- scheduled payments ---

func (s *Store) ScheduledPaymentsByUser(userID string) []banking.ScheduledPayment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payments := make([]banking.ScheduledPayment, len(s.scheduled[userID]))
	copy(payments, s.scheduled[userID])

	return payments
}

func (s *Store) CreateScheduledPayment(userID string, payment banking.ScheduledPayment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduled[userID] = append(s.scheduled[userID], payment)
}

func (s *Store) UpdateScheduledPayment(userID string, payment banking.ScheduledPayment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	payments := s.scheduled[userID]

	for i := range payments {
		if payments[i].ID == payment.ID {
			payments[i] = payment
			return true
		}
	}

	return false
}

func (s *Store) DeleteScheduledPayment(userID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payments := s.scheduled[userID]

	for i := range payments {
		if payments[i].ID == id {
			s.scheduled[userID] = append(payments[:i:i], payments[i+1:]...)
			return
		}
	}
}

// --- notifications ---

func (s *Store) NotificationsByUser(userID string) []banking.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]banking.Notification, len(s.notifications[userID]))
	copy(notifications, s.notifications[userID])

	return notifications
}

func (s *Store) CreateNotification(userID string, notification banking.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications[userID] = append(s.notifications[userID], notification)
}

func (s *Store) MarkNotificationRead(userID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := s.notifications[userID]

	for i := range notifications {
		if notifications[i].ID == id {
			notifications[i].IsRead = true
			return true
		}
	}

	return false
}

func (s *Store) MarkAllNotificationsRead(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := s.notifications[userID]

	for i := range notifications {
		notifications[i].IsRead = true
	}
}

func (s *Store) DeleteNotification(userID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := s.notifications[userID]

	for i := range notifications {
		if notifications[i].ID == id {
			s.notifications[userID] = append(notifications[:i:i], notifications[i+1:]...)
			return
		}
	}
}
