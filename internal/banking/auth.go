package banking

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const tokenPrefix = "TOKEN_"
const otpTTL = 5 * time.Minute

// SeedUserID is the identifier of the demo user created by Seed. When the
// demo user exists, unauthenticated requests fall back to it so the client
// works out of the box.
const SeedUserID = "USR001"

func generateOTP() string {
	return fmt.Sprintf("%06d", 100000+rand.IntN(900000))
}

func (s *service) Register(ctx context.Context, request RegisterRequest) error {
	if _, ok := s.store.UserByEmail(request.Email); ok {
		return ErrEmailTaken
	}

	user := User{
		ID:       "USR" + s.idProvider.NextID(),
		Email:    request.Email,
		Password: request.Password,
		Name:     request.FullName,
		Phone:    request.Phone,
	}

	if err := s.store.CreateUser(user); err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}

	number := fmt.Sprintf("%014d", 10000000000000+rand.Int64N(90000000000000))

	account := Account{
		Number:   number,
		Type:     "Savings",
		Balance:  decimal.NewFromInt(1000),
		Currency: "EGP",
		Status:   "Active",
		CardName: "My Card",
	}

	if err := s.store.CreateAccount(user.ID, account); err != nil {
		return fmt.Errorf("create default account failed: %w", err)
	}

	s.store.UpdateSettings(user.ID, number, defaultSettingsUpdate())

	return nil
}

// defaultSettingsUpdate is the card configuration every new account starts
// with: all channels on, a 50000 per-transaction limit, not frozen.
func defaultSettingsUpdate() SettingsUpdate {
	enabled := true
	limit := decimal.NewFromInt(50000)

	return SettingsUpdate{
		OnlinePurchases:           &enabled,
		InternationalTransactions: &enabled,
		ContactlessPayments:       &enabled,
		SpendingLimit:             &limit,
	}
}

func (s *service) Login(ctx context.Context, request LoginRequest) (*LoginResponse, error) {
	user, ok := s.store.UserByEmail(request.Email)

	if !ok || user.Password != request.Password {
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()

	s.store.PutSession(Session{ID: sessionID, UserID: user.ID})

	otp := generateOTP()

	s.store.PutOTP(sessionID, OTP{
		Code:    otp,
		Expires: s.timeProvider.NowUTC().Add(otpTTL),
	})

	s.logger.Info("login OTP issued", "email", request.Email)

	return &LoginResponse{
		SessionID:   sessionID,
		RequiresOTP: true,
		DebugOTP:    otp,
	}, nil
}

func (s *service) VerifyOTP(ctx context.Context, request VerifyOTPRequest) (*VerifyOTPResponse, error) {
	// the code is claimed atomically, so two verifications racing on the
	// same session cannot both pass
	otp, ok := s.store.ConsumeOTP(request.SessionID, request.OTP)

	if !ok || s.timeProvider.NowUTC().After(otp.Expires) {
		return nil, ErrInvalidOTP
	}

	userID, ok := s.store.SessionUserID(request.SessionID)

	if !ok {
		return nil, ErrInvalidOTP
	}

	user, ok := s.store.UserByID(userID)

	if !ok {
		return nil, ErrInvalidOTP
	}

	return &VerifyOTPResponse{
		SessionToken: tokenPrefix + request.SessionID,
		CustomerID:   user.ID,
		FullName:     user.Name,
		Email:        user.Email,
	}, nil
}

// Authenticate resolves a bearer token to a user id. Without a valid token
// it falls back to the seeded demo user when one exists.
func (s *service) Authenticate(token string) (string, error) {
	if strings.HasPrefix(token, tokenPrefix) {
		sessionID := strings.TrimPrefix(token, tokenPrefix)

		if userID, ok := s.store.SessionUserID(sessionID); ok {
			return userID, nil
		}
	}

	if _, ok := s.store.UserByID(SeedUserID); ok {
		return SeedUserID, nil
	}

	return "", ErrUnauthenticated
}

func (s *service) RequestDeposit(ctx context.Context, userID string, request DepositInitRequest) (*DepositInitResponse, error) {
	account, err := s.resolveAccount(userID, request.AccountNumber)

	if err != nil {
		return nil, err
	}

	// reject up front so the user is not sent an OTP for a deposit the
	// confirm step would refuse anyway
	if err := EvaluateCredit(s.store.Settings(userID, account.Number)); err != nil {
		return nil, err
	}

	otp := generateOTP()

	s.store.PutOTP("deposit:"+otp, OTP{
		Code:          otp,
		Expires:       s.timeProvider.NowUTC().Add(otpTTL),
		AccountNumber: account.Number,
	})

	s.logger.Info("deposit OTP issued", "account", account.Number)

	return &DepositInitResponse{DebugOTP: otp}, nil
}

func (s *service) ConfirmDeposit(ctx context.Context, userID string, request DepositConfirmRequest) (*MovementResponse, error) {
	// claim the code before crediting, so concurrent confirms with the
	// same code cannot each deposit
	otp, ok := s.store.ConsumeOTP("deposit:"+request.OTP, request.OTP)

	if !ok || s.timeProvider.NowUTC().After(otp.Expires) {
		return nil, ErrInvalidOTP
	}

	number := request.AccountNumber

	if number == "" {
		number = otp.AccountNumber
	}

	return s.credit(userID, number, request.Amount, CategoryDeposit, "Card Deposit")
}
