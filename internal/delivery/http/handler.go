package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tbhalla11/CrossPaymentService/internal/domain/entity"
	"github.com/tbhalla11/CrossPaymentService/internal/domain/repository"
	"github.com/tbhalla11/CrossPaymentService/internal/usecase/payments"
)

type Handler struct {
	paymentsUC *payments.UseCase
	validate   *validator.Validate
}

func NewHandler(paymentsUC *payments.UseCase) *Handler {
	return &Handler{
		paymentsUC: paymentsUC,
		validate:   validator.New(),
	}
}

type CreatePaymentRequest struct {
	Sender              string          `json:"sender" validate:"required"`
	Receiver            string          `json:"receiver" validate:"required"`
	Amount              decimal.Decimal `json:"amount"`
	SourceCurrency      string          `json:"sourceCurrency" validate:"required,iso4217"`
	DestinationCurrency string          `json:"destinationCurrency" validate:"required,iso4217"`
}

type PaymentResponse struct {
	ID                  uuid.UUID        `json:"id"`
	Sender              string           `json:"sender"`
	Receiver            string           `json:"receiver"`
	Amount              decimal.Decimal  `json:"amount"`
	SourceCurrency      string           `json:"sourceCurrency"`
	DestinationCurrency string           `json:"destinationCurrency"`
	ExchangeRate        *decimal.Decimal `json:"exchangeRate"`
	PayoutAmount        *decimal.Decimal `json:"payoutAmount"`
	Status              string           `json:"status"`
	Message             string           `json:"message,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	ProcessedAt         time.Time        `json:"processedAt"`
}

type ErrorResponse struct {
	Timestamp        time.Time         `json:"timestamp"`
	Status           int               `json:"status"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func (h *Handler) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if fieldErrors := h.validateRequest(req); len(fieldErrors) > 0 {
		writeError(w, http.StatusBadRequest, "validation failed", fieldErrors)
		return
	}

	resp, err := h.paymentsUC.Process(r.Context(), payments.Request{
		Sender:              req.Sender,
		Receiver:            req.Receiver,
		Amount:              req.Amount,
		SourceCurrency:      req.SourceCurrency,
		DestinationCurrency: req.DestinationCurrency,
	})
	switch {
	case errors.Is(err, payments.ErrUnsupportedCurrency):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, err.Error(), nil)
		return
	}

	// Only a SUCCESS payment answers 200; a persisted FAILED record is
	// still a created resource.
	status := http.StatusCreated
	if resp.Status == entity.StatusSuccess {
		status = http.StatusOK
	}
	writeJSON(w, status, mapPayment(resp))
}

func (h *Handler) HandleGetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id", nil)
		return
	}

	resp, err := h.paymentsUC.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "payment not found with id: "+id.String(), nil)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to load payment", nil)
		return
	}

	writeJSON(w, http.StatusOK, mapPayment(resp))
}

func (h *Handler) HandleListPayments(w http.ResponseWriter, r *http.Request) {
	filter := payments.Filter{
		Status:   entity.PaymentStatus(r.URL.Query().Get("status")),
		Sender:   r.URL.Query().Get("sender"),
		Receiver: r.URL.Query().Get("receiver"),
	}

	responses, err := h.paymentsUC.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	out := make([]PaymentResponse, 0, len(responses))
	for _, resp := range responses {
		out = append(out, mapPayment(resp))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) validateRequest(req CreatePaymentRequest) map[string]string {
	fieldErrors := map[string]string{}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrors[fe.Field()] = "failed validation on " + fe.Tag()
			}
		}
	}
	// The validator cannot compare decimals, so the amount bound is
	// checked by hand.
	if !req.Amount.IsPositive() {
		fieldErrors["Amount"] = "must be greater than zero"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func mapPayment(resp *payments.Response) PaymentResponse {
	return PaymentResponse{
		ID:                  resp.ID,
		Sender:              resp.Sender,
		Receiver:            resp.Receiver,
		Amount:              resp.Amount,
		SourceCurrency:      resp.SourceCurrency,
		DestinationCurrency: resp.DestinationCurrency,
		ExchangeRate:        resp.ExchangeRate,
		PayoutAmount:        resp.PayoutAmount,
		Status:              string(resp.Status),
		Message:             resp.Message,
		CreatedAt:           resp.CreatedAt,
		ProcessedAt:         resp.ProcessedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string, fieldErrors map[string]string) {
	writeJSON(w, status, ErrorResponse{
		Timestamp:        time.Now().UTC(),
		Status:           status,
		Message:          message,
		ValidationErrors: fieldErrors,
	})
}
