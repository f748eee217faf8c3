package httperr

import (
	"log/slog"
	"net/http"

	"homeclean/internal/domain/order"
	"homeclean/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// TransitionDetail tells the caller which state blocked the request.
type TransitionDetail struct {
	CurrentStatus   string `json:"currentStatus"`
	RequestedStatus string `json:"requestedStatus"`
}

type SlotConflictDetail struct {
	ConflictingOrderID string `json:"conflictingOrderId"`
	Slot               string `json:"slot"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps the error taxonomy onto HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errs.Is(err, errs.ErrInvalidInput), errs.Is(err, errs.ErrInvalidSchedule):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithUseCaseError answers with the status the error's taxonomy calls for.
// Server-side failures never leak their message.
func AbortWithUseCaseError(c *gin.Context, err error, fallback string) {
	status := StatusOf(err)
	msg := fallback
	var detail any

	switch {
	case status == http.StatusInternalServerError:
		if errs.Is(err, errs.ErrConfiguration) {
			slog.ErrorContext(c.Request.Context(), "configuration error", "error", err.Error())
			msg = "Server configuration error: " + err.Error()
		} else {
			slog.ErrorContext(c.Request.Context(), fallback, "error", err.Error())
		}
	case status == http.StatusConflict:
		msg = err.Error()
		var invalid *order.InvalidTransitionError
		var slot *order.SlotConflictError
		if errs.As(err, &invalid) {
			detail = TransitionDetail{CurrentStatus: invalid.From.String(), RequestedStatus: invalid.To.String()}
		} else if errs.As(err, &slot) {
			msg = "The requested time slot is no longer available, please pick another time"
			detail = SlotConflictDetail{ConflictingOrderID: slot.OrderID.String(), Slot: slot.Slot.String()}
		} else if errs.Is(err, order.ErrSlotConflict) {
			msg = "The requested time slot is no longer available, please pick another time"
		}
	default:
		msg = err.Error()
	}

	AbortWithError(c, status, err, msg, detail)
}
