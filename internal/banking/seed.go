package banking

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func seedTime(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)

	if err != nil {
		panic(err)
	}

	return ts
}

func boolPtr(v bool) *bool { return &v }

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

// Seed loads the demo dataset: one user with two cards, their histories,
// goals, beneficiaries, scheduled payments and notifications. Balances and
// histories are seeded directly, bypassing the movement operations, so the
// demo opens with a realistic back catalogue.
func Seed(store Store) error {
	user := User{
		ID:       SeedUserID,
		Email:    "seif@example.com",
		Password: "SecurePass123!",
		Name:     "Seif Alaa",
		Phone:    "+201001234567",
	}

	if err := store.CreateUser(user); err != nil {
		return fmt.Errorf("seed user failed: %w", err)
	}

	accounts := []Account{
		{Number: "12345678901234", Type: "Savings", Balance: dec("50000.00"), Currency: "EGP", Status: "Active", CardName: "Primary Card"},
		{Number: "99887766554433", Type: "Checking", Balance: dec("12500.50"), Currency: "EGP", Status: "Active", CardName: "Business Card"},
	}

	for _, account := range accounts {
		if err := store.CreateAccount(user.ID, account); err != nil {
			return fmt.Errorf("seed account %s failed: %w", account.Number, err)
		}
	}

	store.UpdateSettings(user.ID, "12345678901234", SettingsUpdate{
		IsFrozen:                  boolPtr(false),
		OnlinePurchases:           boolPtr(true),
		InternationalTransactions: boolPtr(true),
		ContactlessPayments:       boolPtr(true),
		SpendingLimit:             decPtr("50000"),
	})

	store.UpdateSettings(user.ID, "99887766554433", SettingsUpdate{
		IsFrozen:                  boolPtr(false),
		OnlinePurchases:           boolPtr(true),
		InternationalTransactions: boolPtr(false),
		ContactlessPayments:       boolPtr(true),
		SpendingLimit:             decPtr("25000"),
	})

	primaryHistory := []TransactionRecord{
		{ID: "tx1", Date: seedTime("2025-12-20T10:30:00Z"), Direction: TxCredit, Category: "deposit", Amount: dec("15000"), Description: "Salary December", Status: StatusCompleted},
		{ID: "tx2", Date: seedTime("2025-12-18T14:20:00Z"), Direction: TxDebit, Category: "bill", Amount: dec("450"), Description: "Electricity Bill", Status: StatusCompleted},
		{ID: "tx3", Date: seedTime("2025-12-15T09:00:00Z"), Direction: TxDebit, Category: "transfer", Amount: dec("2500"), Description: "Transfer to Mohamed Ali", Status: StatusCompleted},
		{ID: "tx4", Date: seedTime("2025-12-12T16:45:00Z"), Direction: TxDebit, Category: "shopping", Amount: dec("1800"), Description: "Amazon Purchase", Status: StatusCompleted},
		{ID: "tx5", Date: seedTime("2025-12-10T11:30:00Z"), Direction: TxCredit, Category: "deposit", Amount: dec("5000"), Description: "Card Deposit", Status: StatusCompleted},
		{ID: "tx6", Date: seedTime("2025-12-08T08:15:00Z"), Direction: TxDebit, Category: "food", Amount: dec("320"), Description: "Restaurant - Lucille", Status: StatusCompleted},
		{ID: "tx7", Date: seedTime("2025-12-05T19:00:00Z"), Direction: TxDebit, Category: "entertainment", Amount: dec("150"), Description: "Netflix Subscription", Status: StatusCompleted},
		{ID: "tx8", Date: seedTime("2025-12-01T10:00:00Z"), Direction: TxDebit, Category: "transport", Amount: dec("500"), Description: "Uber Rides", Status: StatusCompleted},
		{ID: "tx9", Date: seedTime("2025-11-28T14:00:00Z"), Direction: TxCredit, Category: "deposit", Amount: dec("15000"), Description: "Salary November", Status: StatusCompleted},
		{ID: "tx10", Date: seedTime("2025-11-25T12:00:00Z"), Direction: TxDebit, Category: "bill", Amount: dec("350"), Description: "Internet Bill", Status: StatusCompleted},
		{ID: "tx11", Date: seedTime("2025-11-20T09:30:00Z"), Direction: TxDebit, Category: "health", Amount: dec("800"), Description: "Pharmacy", Status: StatusCompleted},
		{ID: "tx12", Date: seedTime("2025-11-15T16:00:00Z"), Direction: TxDebit, Category: "shopping", Amount: dec("3500"), Description: "Zara Clothes", Status: StatusCompleted},
	}

	businessHistory := []TransactionRecord{
		{ID: "tx20", Date: seedTime("2025-12-19T11:00:00Z"), Direction: TxCredit, Category: "deposit", Amount: dec("8000"), Description: "Business Payment", Status: StatusCompleted},
		{ID: "tx21", Date: seedTime("2025-12-17T15:30:00Z"), Direction: TxDebit, Category: "transfer", Amount: dec("3000"), Description: "Supplier Payment", Status: StatusCompleted},
		{ID: "tx22", Date: seedTime("2025-12-14T10:00:00Z"), Direction: TxDebit, Category: "bill", Amount: dec("1200"), Description: "Office Rent", Status: StatusCompleted},
		{ID: "tx23", Date: seedTime("2025-12-10T14:00:00Z"), Direction: TxCredit, Category: "deposit", Amount: dec("5500"), Description: "Client Payment", Status: StatusCompleted},
	}

	if seeder, ok := store.(HistorySeeder); ok {
		seeder.SeedHistory("12345678901234", primaryHistory)
		seeder.SeedHistory("99887766554433", businessHistory)
	}

	beneficiaries := []Beneficiary{
		{ID: "b1", Name: "Mohamed Ali", AccountNumber: "9876543210123456", Bank: "CIB", Nickname: "Brother", IsFavorite: true},
		{ID: "b2", Name: "Sara Ahmed", AccountNumber: "5555666677778888", Bank: "QNB", Nickname: "Mom", IsFavorite: true},
		{ID: "b3", Name: "Landlord Office", AccountNumber: "1111222233334444", Bank: "NBE", Nickname: "Rent", IsFavorite: false},
		{ID: "b4", Name: "Fatma Hassan", AccountNumber: "4444333322221111", Bank: "HSBC", Nickname: "Sister", IsFavorite: true},
		{ID: "b5", Name: "Omar Khaled", AccountNumber: "7777888899990000", Bank: "Banque Misr", Nickname: "Best Friend", IsFavorite: false},
		{ID: "b6", Name: "Youssef Mahmoud", AccountNumber: "1234123412341234", Bank: "Alex Bank", Nickname: "Colleague", IsFavorite: false},
		{ID: "b7", Name: "Nour El-Din", AccountNumber: "9999000011112222", Bank: "Arab African Bank", Nickname: "Trainer", IsFavorite: false},
		{ID: "b8", Name: "Laila Mostafa", AccountNumber: "6666777788889999", Bank: "Faisal Islamic Bank", Nickname: "Wife", IsFavorite: true},
	}

	for _, beneficiary := range beneficiaries {
		store.CreateBeneficiary(user.ID, beneficiary)
	}

	goals := []SavingsGoal{
		{ID: "g1", Name: "Dream Vacation", Icon: "vacation", TargetAmount: dec("30000"), CurrentAmount: dec("12500")},
		{ID: "g2", Name: "Emergency Fund", Icon: "emergency", TargetAmount: dec("50000"), CurrentAmount: dec("35000")},
		{ID: "g3", Name: "New Car", Icon: "car", TargetAmount: dec("200000"), CurrentAmount: dec("45000")},
	}

	for _, goal := range goals {
		store.CreateGoal(user.ID, goal)
	}

	scheduled := []ScheduledPayment{
		{ID: "s1", Name: "Monthly Rent", PaymentType: "rent", Amount: dec("8000"), RecipientAccount: "1111222233334444", Frequency: "monthly", StartDate: "2025-01-01"},
		{ID: "s2", Name: "Internet Bill", PaymentType: "bill", Amount: dec("350"), RecipientAccount: "5555666677778888", Frequency: "monthly", StartDate: "2025-01-15"},
	}

	for _, payment := range scheduled {
		store.CreateScheduledPayment(user.ID, payment)
	}

	receivedAmount := dec("2500")

	notifications := []Notification{
		{ID: "n1", Type: "transfer_received", Title: "Money Received", Message: "You received 2,500 EGP from Sara Ahmed", Amount: &receivedAmount, CreatedAt: seedTime("2025-12-20T09:00:00Z")},
		{ID: "n2", Type: "bill_paid", Title: "Bill Paid", Message: "Your electricity bill of 450 EGP was paid successfully", CreatedAt: seedTime("2025-12-18T14:20:00Z")},
		{ID: "n3", Type: "security", Title: "Security Alert", Message: "New login detected from Cairo, Egypt", CreatedAt: seedTime("2025-12-17T08:00:00Z")},
		{ID: "n4", Type: "promo", Title: "Special Offer", Message: "Get 2% cashback on all purchases this weekend!", IsRead: true, CreatedAt: seedTime("2025-12-15T12:00:00Z")},
	}

	for _, notification := range notifications {
		store.CreateNotification(user.ID, notification)
	}

	return nil
}

// HistorySeeder is implemented by stores that can load a pre-existing
// transaction history without going through Credit/Debit.
type HistorySeeder interface {
	SeedHistory(number string, records []TransactionRecord)
}
