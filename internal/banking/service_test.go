package banking_test

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/seifalaa111/SOBS-Banking-App-sub000/internal/banking"
	"github.com/seifalaa111/SOBS-Banking-App-sub000/internal/store/memory"
)

const testUserID = "USR_TEST"

func setupService(t *testing.T) (banking.Service, *memory.Store) {
	t.Helper()

	store := memory.New()

	idProvider, err := banking.NewIDProvider(0)

	if err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service, err := banking.New(logger, store, idProvider, banking.NewTimeProvider(), nil)

	if err != nil {
		t.Fatal(err)
	}

	return service, store
}

func createAccount(t *testing.T, store *memory.Store, number, balance string) {
	t.Helper()

	if _, ok := store.UserByID(testUserID); !ok {
		err := store.CreateUser(banking.User{
			ID:    testUserID,
			Email: testUserID + "@example.com",
			Name:  "Test User",
		})

		if err != nil {
			t.Fatal(err)
		}
	}

	err := store.CreateAccount(testUserID, banking.Account{
		Number:   number,
		Type:     "Savings",
		Balance:  dec(t, balance),
		Currency: "EGP",
		Status:   "Active",
		CardName: "Test Card",
	})

	if err != nil {
		t.Fatal(err)
	}
}

func freezeCard(t *testing.T, store *memory.Store, number string) {
	t.Helper()

	frozen := true

	store.UpdateSettings(testUserID, number, banking.SettingsUpdate{IsFrozen: &frozen})
}

func setSpendingLimit(t *testing.T, store *memory.Store, number, limit string) {
	t.Helper()

	value := dec(t, limit)

	store.UpdateSettings(testUserID, number, banking.SettingsUpdate{SpendingLimit: &value})
}

func assertBalance(t *testing.T, store *memory.Store, number, expected string) {
	t.Helper()

	account, ok := store.Account(testUserID, number)

	if !ok {
		t.Fatalf("account %s not found", number)
	}

	if !account.Balance.Equal(dec(t, expected)) {
		t.Fatalf("expected balance %s, got %s", expected, account.Balance)
	}
}

func assertHistoryLen(t *testing.T, store *memory.Store, number string, expected int) {
	t.Helper()

	records := store.Transactions(number, 0)

	if len(records) != expected {
		t.Fatalf("expected %d transactions, got %d", expected, len(records))
	}
}

func TestDeposit(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "50000")

	response, err := service.Deposit(t.Context(), testUserID, banking.DepositRequest{
		AccountNumber: "1111",
		Amount:        dec(t, "15000"),
	})

	if err != nil {
		t.Fatal(err)
	}

	if !response.NewBalance.Equal(dec(t, "65000")) {
		t.Fatalf("expected new balance 65000, got %s", response.NewBalance)
	}

	assertBalance(t, store, "1111", "65000")
	assertHistoryLen(t, store, "1111", 1)

	record := store.Transactions("1111", 0)[0]

	if record.ID != response.TransactionID {
		t.Fatalf("expected record id %s, got %s", response.TransactionID, record.ID)
	}

	if record.Direction != banking.TxCredit || record.Category != banking.CategoryDeposit {
		t.Fatalf("unexpected record: %+v", record)
	}

	if !record.Amount.Equal(dec(t, "15000")) {
		t.Fatalf("expected record amount 15000, got %s", record.Amount)
	}

	if record.Status != banking.StatusCompleted {
		t.Fatalf("expected status completed, got %s", record.Status)
	}
}

func TestDepositValidation(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "1000")

	testCases := []struct {
		name        string
		amount      string
		expectedErr error
	}{
		{name: "zero amount", amount: "0", expectedErr: banking.ErrInvalidAmount},
		{name: "negative amount", amount: "-5", expectedErr: banking.ErrInvalidAmount},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Deposit(t.Context(), testUserID, banking.DepositRequest{
				AccountNumber: "1111",
				Amount:        dec(t, testCase.amount),
			})

			if !errors.Is(err, testCase.expectedErr) {
				t.Fatalf("expected %v, got %v", testCase.expectedErr, err)
			}

			assertBalance(t, store, "1111", "1000")
			assertHistoryLen(t, store, "1111", 0)
		})
	}
}

func TestFrozenCardBlocksEveryOperation(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "10000")
	freezeCard(t, store, "1111")

	store.CreateGoal(testUserID, banking.SavingsGoal{
		ID:           "g1",
		Name:         "Vacation",
		TargetAmount: dec(t, "30000"),
	})

	operations := []struct {
		name string
		run  func() error
	}{
		{
			name: "deposit",
			run: func() error {
				_, err := service.Deposit(t.Context(), testUserID, banking.DepositRequest{AccountNumber: "1111", Amount: dec(t, "100")})
				return err
			},
		},
		{
			name: "transfer",
			run: func() error {
				_, err := service.Transfer(t.Context(), testUserID, banking.TransferRequest{FromAccountNumber: "1111", RecipientAccountNumber: "9999", Amount: dec(t, "100")})
				return err
			},
		},
		{
			name: "bill payment",
			run: func() error {
				_, err := service.PayBill(t.Context(), testUserID, banking.PayBillRequest{FromAccountNumber: "1111", Provider: "WE Internet", Amount: dec(t, "500")})
				return err
			},
		},
		{
			name: "savings contribution",
			run: func() error {
				_, err := service.DepositToGoal(t.Context(), testUserID, "g1", banking.GoalDepositRequest{FromAccountNumber: "1111", Amount: dec(t, "100")})
				return err
			},
		},
	}

	for _, operation := range operations {
		t.Run(operation.name, func(t *testing.T) {
			err := operation.run()

			if !errors.Is(err, banking.ErrCardFrozen) {
				t.Fatalf("expected %v, got %v", banking.ErrCardFrozen, err)
			}

			assertBalance(t, store, "1111", "10000")
			assertHistoryLen(t, store, "1111", 0)
		})
	}

	goals := store.GoalsByUser(testUserID)

	if !goals[0].CurrentAmount.IsZero() {
		t.Fatalf("expected goal untouched, got %s", goals[0].CurrentAmount)
	}
}

func TestTransfer(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "50000")

	response, err := service.Transfer(t.Context(), testUserID, banking.TransferRequest{
		FromAccountNumber:      "1111",
		RecipientAccountNumber: "9876543210123456",
		Amount:                 dec(t, "2500"),
	})

	if err != nil {
		t.Fatal(err)
	}

	if !response.NewBalance.Equal(dec(t, "47500")) {
		t.Fatalf("expected new balance 47500, got %s", response.NewBalance)
	}

	record := store.Transactions("1111", 0)[0]

	if record.Direction != banking.TxDebit || record.Category != banking.CategoryTransfer {
		t.Fatalf("unexpected record: %+v", record)
	}

	if record.Description != "Transfer to 9876543210123456" {
		t.Fatalf("expected description to embed recipient, got %q", record.Description)
	}
}

func TestTransferBlockedByLimit(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "50000")
	setSpendingLimit(t, store, "1111", "25000")

	_, err := service.Transfer(t.Context(), testUserID, banking.TransferRequest{
		FromAccountNumber:      "1111",
		RecipientAccountNumber: "9999",
		Amount:                 dec(t, "30000"),
	})

	var limitErr *banking.LimitExceededError

	if !errors.As(err, &limitErr) {
		t.Fatalf("expected LimitExceededError, got %v", err)
	}

	if !limitErr.Limit.Equal(dec(t, "25000")) || !limitErr.Amount.Equal(dec(t, "30000")) {
		t.Fatalf("unexpected limit context: %+v", limitErr)
	}

	assertBalance(t, store, "1111", "50000")
	assertHistoryLen(t, store, "1111", 0)
}

func TestTransferDefaultsToFirstAccount(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "1000")
	createAccount(t, store, "2222", "1000")

	_, err := service.Transfer(t.Context(), testUserID, banking.TransferRequest{
		RecipientAccountNumber: "9999",
		Amount:                 dec(t, "300"),
	})

	if err != nil {
		t.Fatal(err)
	}

	assertBalance(t, store, "1111", "700")
	assertBalance(t, store, "2222", "1000")
}

func TestTransferAccountNotFound(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "1000")

	_, err := service.Transfer(t.Context(), testUserID, banking.TransferRequest{
		FromAccountNumber:      "404404",
		RecipientAccountNumber: "9999",
		Amount:                 dec(t, "300"),
	})

	if !errors.Is(err, banking.ErrAccountNotFound) {
		t.Fatalf("expected %v, got %v", banking.ErrAccountNotFound, err)
	}
}

func TestBillPaymentOnFrozenCard(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "10000")
	freezeCard(t, store, "1111")

	_, err := service.PayBill(t.Context(), testUserID, banking.PayBillRequest{
		FromAccountNumber: "1111",
		Provider:          "Egyptian Electricity",
		Amount:            dec(t, "500"),
	})

	if !errors.Is(err, banking.ErrCardFrozen) {
		t.Fatalf("expected %v, got %v", banking.ErrCardFrozen, err)
	}

	assertBalance(t, store, "1111", "10000")
	assertHistoryLen(t, store, "1111", 0)
}

func TestBillPaymentDescription(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "10000")

	_, err := service.PayBill(t.Context(), testUserID, banking.PayBillRequest{
		FromAccountNumber: "1111",
		Provider:          "WE Internet",
		BillNumber:        "INV-42",
		Amount:            dec(t, "350"),
	})

	if err != nil {
		t.Fatal(err)
	}

	record := store.Transactions("1111", 0)[0]

	if record.Category != banking.CategoryBill {
		t.Fatalf("expected bill category, got %s", record.Category)
	}

	if record.Description != "WE Internet Bill Payment" {
		t.Fatalf("unexpected description %q", record.Description)
	}
}

func TestInsufficientFundsBoundary(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "500")

	_, err := service.Transfer(t.Context(), testUserID, banking.TransferRequest{
		FromAccountNumber:      "1111",
		RecipientAccountNumber: "9999",
		Amount:                 dec(t, "500.01"),
	})

	if !errors.Is(err, banking.ErrInsufficientFunds) {
		t.Fatalf("expected %v, got %v", banking.ErrInsufficientFunds, err)
	}

	assertBalance(t, store, "1111", "500")

	response, err := service.Transfer(t.Context(), testUserID, banking.TransferRequest{
		FromAccountNumber:      "1111",
		RecipientAccountNumber: "9999",
		Amount:                 dec(t, "500"),
	})

	if err != nil {
		t.Fatal(err)
	}

	if !response.NewBalance.IsZero() {
		t.Fatalf("expected balance 0, got %s", response.NewBalance)
	}
}

func TestSavingsContribution(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "5000")

	store.CreateGoal(testUserID, banking.SavingsGoal{
		ID:            "g1",
		Name:          "Vacation",
		TargetAmount:  dec(t, "30000"),
		CurrentAmount: dec(t, "1000"),
	})

	goal, err := service.DepositToGoal(t.Context(), testUserID, "g1", banking.GoalDepositRequest{
		FromAccountNumber: "1111",
		Amount:            dec(t, "2000"),
	})

	if err != nil {
		t.Fatal(err)
	}

	if !goal.CurrentAmount.Equal(dec(t, "3000")) {
		t.Fatalf("expected goal at 3000, got %s", goal.CurrentAmount)
	}

	assertBalance(t, store, "1111", "3000")

	record := store.Transactions("1111", 0)[0]

	if record.Category != banking.CategorySavings || record.Direction != banking.TxDebit {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestSavingsContributionAtomicOnFailure(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "100")

	store.CreateGoal(testUserID, banking.SavingsGoal{
		ID:            "g1",
		Name:          "Vacation",
		TargetAmount:  dec(t, "30000"),
		CurrentAmount: dec(t, "1000"),
	})

	_, err := service.DepositToGoal(t.Context(), testUserID, "g1", banking.GoalDepositRequest{
		FromAccountNumber: "1111",
		Amount:            dec(t, "2000"),
	})

	if !errors.Is(err, banking.ErrInsufficientFunds) {
		t.Fatalf("expected %v, got %v", banking.ErrInsufficientFunds, err)
	}

	goals := store.GoalsByUser(testUserID)

	if !goals[0].CurrentAmount.Equal(dec(t, "1000")) {
		t.Fatalf("expected goal untouched at 1000, got %s", goals[0].CurrentAmount)
	}

	assertBalance(t, store, "1111", "100")
	assertHistoryLen(t, store, "1111", 0)
}

func TestSavingsContributionUnknownGoal(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "5000")

	_, err := service.DepositToGoal(t.Context(), testUserID, "missing", banking.GoalDepositRequest{
		FromAccountNumber: "1111",
		Amount:            dec(t, "100"),
	})

	if !errors.Is(err, banking.ErrGoalNotFound) {
		t.Fatalf("expected %v, got %v", banking.ErrGoalNotFound, err)
	}

	// a bad goal id must not leave a dangling debit
	assertBalance(t, store, "1111", "5000")
	assertHistoryLen(t, store, "1111", 0)
}

func TestBalanceMatchesHistoryReplay(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "0")

	deposit := func(amount string) {
		t.Helper()

		_, err := service.Deposit(t.Context(), testUserID, banking.DepositRequest{AccountNumber: "1111", Amount: dec(t, amount)})

		if err != nil {
			t.Fatal(err)
		}
	}

	transfer := func(amount string) error {
		_, err := service.Transfer(t.Context(), testUserID, banking.TransferRequest{FromAccountNumber: "1111", RecipientAccountNumber: "9999", Amount: dec(t, amount)})
		return err
	}

	deposit("1000")
	deposit("250.75")

	if err := transfer("300"); err != nil {
		t.Fatal(err)
	}

	// a failed debit must contribute nothing to either balance or history
	if err := transfer("100000"); !errors.Is(err, banking.ErrInsufficientFunds) {
		t.Fatalf("expected %v, got %v", banking.ErrInsufficientFunds, err)
	}

	deposit("49.25")

	assertBalance(t, store, "1111", "1000")

	replayed := decimal.Zero

	for _, record := range store.Transactions("1111", 0) {
		if record.Direction == banking.TxCredit {
			replayed = replayed.Add(record.Amount)
		} else {
			replayed = replayed.Sub(record.Amount)
		}
	}

	if !replayed.Equal(dec(t, "1000")) {
		t.Fatalf("replaying history gave %s, expected 1000", replayed)
	}
}

func TestTransactionsNewestFirstAndCapped(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "0")

	amounts := []string{"10", "20", "30", "40"}

	for _, amount := range amounts {
		_, err := service.Deposit(t.Context(), testUserID, banking.DepositRequest{AccountNumber: "1111", Amount: dec(t, amount)})

		if err != nil {
			t.Fatal(err)
		}
	}

	response, err := service.Transactions(t.Context(), testUserID, "1111", 0)

	if err != nil {
		t.Fatal(err)
	}

	if response.TotalCount != 4 {
		t.Fatalf("expected 4 transactions, got %d", response.TotalCount)
	}

	if !response.Transactions[0].Amount.Equal(dec(t, "40")) {
		t.Fatalf("expected newest transaction first, got %s", response.Transactions[0].Amount)
	}

	capped, err := service.Transactions(t.Context(), testUserID, "1111", 2)

	if err != nil {
		t.Fatal(err)
	}

	if capped.TotalCount != 2 || !capped.Transactions[0].Amount.Equal(dec(t, "40")) {
		t.Fatalf("unexpected capped result: %+v", capped)
	}
}

func TestUpdateCardSettingsMergesPartially(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "1000")

	enabled := true
	limit := dec(t, "50000")

	store.UpdateSettings(testUserID, "1111", banking.SettingsUpdate{
		OnlinePurchases: &enabled,
		SpendingLimit:   &limit,
	})

	frozen := true

	settings, err := service.UpdateCardSettings(t.Context(), testUserID, "1111", banking.SettingsUpdate{
		IsFrozen: &frozen,
	})

	if err != nil {
		t.Fatal(err)
	}

	if !settings.IsFrozen {
		t.Fatal("expected card to be frozen")
	}

	if !settings.OnlinePurchases {
		t.Fatal("expected online purchases to be retained")
	}

	if !settings.SpendingLimit.Equal(dec(t, "50000")) {
		t.Fatalf("expected spending limit retained at 50000, got %s", settings.SpendingLimit)
	}
}

func TestConcurrentTransfersNeverOverdraw(t *testing.T) {
	service, store := setupService(t)
	createAccount(t, store, "1111", "1000")

	const workers = 50

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := service.Transfer(t.Context(), testUserID, banking.TransferRequest{
				FromAccountNumber:      "1111",
				RecipientAccountNumber: "9999",
				Amount:                 dec(t, "100"),
			})

			results <- err
		}()
	}

	wg.Wait()
	close(results)

	succeeded := 0

	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, banking.ErrInsufficientFunds) {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != 10 {
		t.Fatalf("expected exactly 10 transfers to succeed, got %d", succeeded)
	}

	assertBalance(t, store, "1111", "0")
	assertHistoryLen(t, store, "1111", 10)
}
