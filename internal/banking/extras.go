package banking

import "context"

func (s *service) Goals(ctx context.Context, userID string) ([]SavingsGoal, error) {
	return s.store.GoalsByUser(userID), nil
}

func (s *service) CreateGoal(ctx context.Context, userID string, request CreateGoalRequest) (*SavingsGoal, error) {
	if request.Name == "" || !request.TargetAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	goal := SavingsGoal{
		ID:           s.idProvider.NextID(),
		Name:         request.Name,
		Icon:         request.Icon,
		TargetAmount: request.TargetAmount,
	}

	s.store.CreateGoal(userID, goal)

	return &goal, nil
}

func (s *service) Beneficiaries(ctx context.Context, userID string) ([]Beneficiary, error) {
	return s.store.BeneficiariesByUser(userID), nil
}

func (s *service) CreateBeneficiary(ctx context.Context, userID string, beneficiary Beneficiary) (*Beneficiary, error) {
	beneficiary.ID = s.idProvider.NextID()

	s.store.CreateBeneficiary(userID, beneficiary)

	return &beneficiary, nil
}

func (s *service) UpdateBeneficiary(ctx context.Context, userID string, beneficiary Beneficiary) error {
	if !s.store.UpdateBeneficiary(userID, beneficiary) {
		return ErrBeneficiaryNotFound
	}

	return nil
}

func (s *service) DeleteBeneficiary(ctx context.Context, userID, id string) error {
	s.store.DeleteBeneficiary(userID, id)
	return nil
}

func (s *service) ScheduledPayments(ctx context.Context, userID string) ([]ScheduledPayment, error) {
	return s.store.ScheduledPaymentsByUser(userID), nil
}

func (s *service) CreateScheduledPayment(ctx context.Context, userID string, payment ScheduledPayment) (*ScheduledPayment, error) {
	payment.ID = s.idProvider.NextID()
	payment.IsPaused = false

	s.store.CreateScheduledPayment(userID, payment)

	return &payment, nil
}

func (s *service) UpdateScheduledPayment(ctx context.Context, userID string, payment ScheduledPayment) error {
	if !s.store.UpdateScheduledPayment(userID, payment) {
		return ErrScheduleNotFound
	}

	return nil
}

func (s *service) DeleteScheduledPayment(ctx context.Context, userID, id string) error {
	s.store.DeleteScheduledPayment(userID, id)
	return nil
}

func (s *service) Notifications(ctx context.Context, userID string) ([]Notification, error) {
	return s.store.NotificationsByUser(userID), nil
}

func (s *service) MarkNotificationRead(ctx context.Context, userID, id string) error {
	if !s.store.MarkNotificationRead(userID, id) {
		return ErrNotificationNotFound
	}

	return nil
}

func (s *service) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	s.store.MarkAllNotificationsRead(userID)
	return nil
}

func (s *service) DeleteNotification(ctx context.Context, userID, id string) error {
	s.store.DeleteNotification(userID, id)
	return nil
}
