package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/VedantKadlaKK/bookverse/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// responder writes JSON responses and logs what cannot be written.
type responder struct {
	logger *zap.Logger
}

func newResponder(logger *zap.Logger) responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return responder{logger: logger}
}

func (rs responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (rs responder) respondError(w http.ResponseWriter, status int, code, message string) {
	rs.respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleShopError maps shop errors to HTTP statuses.
func (rs responder) handleShopError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		rs.respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   verr.Error(),
			Code:    "validation_failed",
			Details: strings.Join(verr.Fields, ","),
		})
	case errors.Is(err, service.ErrBookNotFound):
		rs.respondError(w, http.StatusNotFound, "book_not_found", err.Error())
	case errors.Is(err, service.ErrItemNotInCart):
		rs.respondError(w, http.StatusNotFound, "item_not_in_cart", err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		rs.respondError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		rs.respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, service.ErrNoCheckout):
		rs.respondError(w, http.StatusBadRequest, "no_checkout", err.Error())
	case errors.Is(err, service.ErrQuantityLimit):
		rs.respondError(w, http.StatusBadRequest, "quantity_limit", err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		rs.respondError(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, service.ErrIllegalTransition):
		rs.respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		rs.respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		rs.logger.Error("unhandled shop error", zap.Error(err))
		rs.respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// bookIDParam reads a positive {book_id} path parameter.
func bookIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "book_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
