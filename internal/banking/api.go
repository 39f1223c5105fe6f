package banking

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type API struct {
	logger  *slog.Logger
	service Service
}

func NewAPI(logger *slog.Logger, service Service) *API {
	return &API{
		logger:  logger,
		service: service,
	}
}

type contextKey string

const userIDKey contextKey = "userID"

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (a *API) RegisterRoutes(router chi.Router) {
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", a.register)
		r.Post("/login", a.login)
		r.Post("/verify-otp", a.verifyOTP)
	})

	router.Group(func(r chi.Router) {
		r.Use(a.withUser)

		r.Get("/api/accounts", a.listAccounts)
		r.Get("/api/accounts/{number}/transactions", a.transactions)
		r.Post("/api/accounts/deposit/request", a.requestDeposit)
		r.Post("/api/accounts/deposit/confirm", a.confirmDeposit)

		r.Get("/api/cards/{number}/settings", a.cardSettings)
		r.Put("/api/cards/{number}/settings", a.updateCardSettings)

		r.Post("/api/transfers", a.transfer)

		r.Get("/api/bills/providers", a.billProviders)
		r.Post("/api/bills/pay", a.payBill)

		r.Get("/api/savings/goals", a.goals)
		r.Post("/api/savings/goals", a.createGoal)
		r.Post("/api/savings/goals/{id}/deposit", a.depositToGoal)

		r.Get("/api/beneficiaries", a.beneficiaries)
		r.Post("/api/beneficiaries", a.createBeneficiary)
		r.Put("/api/beneficiaries/{id}", a.updateBeneficiary)
		r.Delete("/api/beneficiaries/{id}", a.deleteBeneficiary)

		r.Get("/api/scheduled-payments", a.scheduledPayments)
		r.Post("/api/scheduled-payments", a.createScheduledPayment)
		r.Put("/api/scheduled-payments/{id}", a.updateScheduledPayment)
		r.Delete("/api/scheduled-payments/{id}", a.deleteScheduledPayment)

		r.Get("/api/notifications", a.notifications)
		r.Put("/api/notifications/read-all", a.markAllNotificationsRead)
		r.Put("/api/notifications/{id}/read", a.markNotificationRead)
		r.Delete("/api/notifications/{id}", a.deleteNotification)

		r.Get("/api/analytics", a.analytics)
	})
}

// withUser resolves the caller's user from the Authorization header and puts
// it on the request context.
func (a *API) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		userID, err := a.service.Authenticate(token)

		if err != nil {
			a.writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func getDefaultContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 30*time.Second)
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var request RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	if err := a.service.Register(ctx, request); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, 200, apiResponse{Success: true, Message: "Registration successful. Please login."})
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var request LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	response, err := a.service.Login(ctx, request)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, response)
}

func (a *API) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var request VerifyOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	response, err := a.service.VerifyOTP(ctx, request)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, response)
}

func (a *API) listAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	accounts, err := a.service.ListAccounts(ctx, userID(r))

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, accounts)
}

func (a *API) transactions(w http.ResponseWriter, r *http.Request) {
	limit := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)

		if err != nil || parsed < 0 {
			a.writeJSON(w, 400, apiResponse{Success: false, Message: "invalid limit"})
			return
		}

		limit = parsed
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	response, err := a.service.Transactions(ctx, userID(r), chi.URLParam(r, "number"), limit)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, response)
}

func (a *API) cardSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	settings, err := a.service.CardSettings(ctx, userID(r), chi.URLParam(r, "number"))

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, settings)
}

func (a *API) updateCardSettings(w http.ResponseWriter, r *http.Request) {
	var update SettingsUpdate

	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	settings, err := a.service.UpdateCardSettings(ctx, userID(r), chi.URLParam(r, "number"), update)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, settings)
}

func (a *API) requestDeposit(w http.ResponseWriter, r *http.Request) {
	var request DepositInitRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	response, err := a.service.RequestDeposit(ctx, userID(r), request)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, response)
}

func (a *API) confirmDeposit(w http.ResponseWriter, r *http.Request) {
	var request DepositConfirmRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	response, err := a.service.ConfirmDeposit(ctx, userID(r), request)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, response)
}

func (a *API) transfer(w http.ResponseWriter, r *http.Request) {
	var request TransferRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	response, err := a.service.Transfer(ctx, userID(r), request)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, response)
}

func (a *API) billProviders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	a.writeData(w, a.service.BillProviders(ctx, r.URL.Query().Get("type")))
}

func (a *API) payBill(w http.ResponseWriter, r *http.Request) {
	var request PayBillRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	response, err := a.service.PayBill(ctx, userID(r), request)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, response)
}

func (a *API) goals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	goals, err := a.service.Goals(ctx, userID(r))

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, goals)
}

func (a *API) createGoal(w http.ResponseWriter, r *http.Request) {
	var request CreateGoalRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	goal, err := a.service.CreateGoal(ctx, userID(r), request)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, goal)
}

func (a *API) depositToGoal(w http.ResponseWriter, r *http.Request) {
	var request GoalDepositRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	goal, err := a.service.DepositToGoal(ctx, userID(r), chi.URLParam(r, "id"), request)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, goal)
}

func (a *API) beneficiaries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	beneficiaries, err := a.service.Beneficiaries(ctx, userID(r))

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, beneficiaries)
}

func (a *API) createBeneficiary(w http.ResponseWriter, r *http.Request) {
	var beneficiary Beneficiary

	if err := json.NewDecoder(r.Body).Decode(&beneficiary); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	created, err := a.service.CreateBeneficiary(ctx, userID(r), beneficiary)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, created)
}

func (a *API) updateBeneficiary(w http.ResponseWriter, r *http.Request) {
	var beneficiary Beneficiary

	if err := json.NewDecoder(r.Body).Decode(&beneficiary); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	beneficiary.ID = chi.URLParam(r, "id")

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	if err := a.service.UpdateBeneficiary(ctx, userID(r), beneficiary); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, 200, apiResponse{Success: true})
}

func (a *API) deleteBeneficiary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	if err := a.service.DeleteBeneficiary(ctx, userID(r), chi.URLParam(r, "id")); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, 200, apiResponse{Success: true})
}

func (a *API) scheduledPayments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	payments, err := a.service.ScheduledPayments(ctx, userID(r))

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, payments)
}

func (a *API) createScheduledPayment(w http.ResponseWriter, r *http.Request) {
	var payment ScheduledPayment

	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	created, err := a.service.CreateScheduledPayment(ctx, userID(r), payment)

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, created)
}

func (a *API) updateScheduledPayment(w http.ResponseWriter, r *http.Request) {
	var payment ScheduledPayment

	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		a.writeBadRequestInvalidJSON(w)
		return
	}

	payment.ID = chi.URLParam(r, "id")

	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	if err := a.service.UpdateScheduledPayment(ctx, userID(r), payment); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, 200, apiResponse{Success: true})
}

func (a *API) deleteScheduledPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	if err := a.service.DeleteScheduledPayment(ctx, userID(r), chi.URLParam(r, "id")); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, 200, apiResponse{Success: true})
}

func (a *API) notifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	notifications, err := a.service.Notifications(ctx, userID(r))

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, notifications)
}

func (a *API) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	if err := a.service.MarkNotificationRead(ctx, userID(r), chi.URLParam(r, "id")); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, 200, apiResponse{Success: true})
}

func (a *API) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	if err := a.service.MarkAllNotificationsRead(ctx, userID(r)); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, 200, apiResponse{Success: true})
}

func (a *API) deleteNotification(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	if err := a.service.DeleteNotification(ctx, userID(r), chi.URLParam(r, "id")); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, 200, apiResponse{Success: true})
}

func (a *API) analytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := getDefaultContext(r.Context())
	defer cancel()

	query := r.URL.Query()

	response, err := a.service.Analytics(ctx, userID(r), query.Get("period"), query.Get("account"))

	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, response)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status := 0

	switch {
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredentials):
		status = 401
	case errors.Is(err, ErrGoalNotFound),
		errors.Is(err, ErrBeneficiaryNotFound),
		errors.Is(err, ErrScheduleNotFound),
		errors.Is(err, ErrNotificationNotFound):
		status = 404
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrCardFrozen),
		errors.Is(err, ErrLimitExceeded),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidOTP),
		errors.Is(err, ErrEmailTaken):
		status = 400
	default:
		a.logger.Error("request failed", "error", err)
		a.writeJSON(w, 500, apiResponse{Success: false, Message: "internal error"})
		return
	}

	a.writeJSON(w, status, apiResponse{Success: false, Message: err.Error()})
}

func (a *API) writeBadRequestInvalidJSON(w http.ResponseWriter) {
	a.writeJSON(w, 400, apiResponse{Success: false, Message: "invalid JSON"})
}

func (a *API) writeData(w http.ResponseWriter, data any) {
	a.writeJSON(w, 200, apiResponse{Success: true, Data: data})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}
