//go:build e2e

package order_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"homeclean/internal/domain/order"
	"homeclean/internal/domain/user"
	"homeclean/internal/handler/dto/request"
	"homeclean/internal/handler/dto/response"
	"homeclean/internal/handler/middleware"
	"homeclean/internal/pkg/cookie"
	"homeclean/tests/common/authtest"
	"homeclean/tests/common/builder"
	"homeclean/tests/common/dbtest"
	"homeclean/tests/common/httptest"
	"homeclean/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	ordersURL       = "/api/orders"
	orderURL        = "/api/orders/%s"
	claimURL        = "/api/orders/%s/claim"
	cancelURL       = "/api/orders/%s/cancel"
	webhookURL      = "/api/webhooks/payment"
	adminStatusURL  = "/api/admin/orders/%s/status"
	availabilityURL = "/api/availability?date=%s"

	bookingDate = "2030-06-03"
)

type OrderSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *OrderSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.Auth)
}

func (s *OrderSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestOrderSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OrderSuite))
}

func createRequest(start string, hours float64) request.CreateOrderRequest {
	return request.CreateOrderRequest{
		ScheduledDate:  bookingDate,
		ScheduledTime:  start,
		EstimatedHours: hours,
		ServiceType:    "standard",
		CustomerName:   "Hanako Yamada",
		CustomerEmail:  "hanako@example.com",
		CustomerPhone:  "090-1234-5678",
		Address:        "1-2-3 Shibuya, Tokyo",
		PriceCents:     1500000,
	}
}

func (s *OrderSuite) createOrder(t *testing.T, start string, hours float64, token string) response.CreateOrderResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, createRequest(start, hours), token)
	var created response.CreateOrderResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	return created
}

func (s *OrderSuite) sendWebhook(t *testing.T, body request.PaymentWebhookRequest) (int, response.TransitionResponse) {
	t.Helper()
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, webhookURL, body,
		map[string]string{middleware.WebhookSecretHeader: s.Config.Webhook.Secret})
	var resp response.TransitionResponse
	if w.Code == http.StatusOK {
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	}
	return w.Code, resp
}

func (s *OrderSuite) getWithPendingToken(t *testing.T, id uuid.UUID, pendingToken string) response.OrderResponse {
	t.Helper()
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodGet, fmt.Sprintf(orderURL, id), nil,
		map[string]string{cookie.PendingTokenHeader: pendingToken})
	var got response.OrderResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
	return got
}

// =============================================================================
// TestBooking - slot admission
// =============================================================================

func (s *OrderSuite) TestBooking() {
	s.Run("Normal case: anonymous customer books and reads the order with the pending token", func() {
		t := s.T()

		created := s.createOrder(t, "10:00", 3, "")
		require.Equal(t, "awaiting_payment", created.Status)
		require.NotEmpty(t, created.PendingToken)

		got := s.getWithPendingToken(t, created.OrderID, created.PendingToken)
		require.Equal(t, "awaiting_payment", got.Status)
		require.Equal(t, "13:00", got.EndTime)
		require.Len(t, got.History, 1)
		require.Equal(t, "customer", got.History[0].Source)

		require.Equal(t, []string{"awaiting_payment"}, dbtest.StatusEventTargets(t, s.DB, created.OrderID))
	})

	s.Run("Error case: overlapping request is rejected, touching request is admitted", func() {
		t := s.T()

		s.createOrder(t, "10:00", 3, "")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, createRequest("12:00", 2), "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "no longer available")

		s.createOrder(t, "13:00", 2, "")
	})

	s.Run("Normal case: a lapsed hold no longer blocks its slot", func() {
		t := s.T()

		stale := builder.NewOrderBuilder().
			WithSlot(bookingDate, "10:00", 3).
			WithCreatedAt(time.Now().Add(-2 * time.Hour))
		dbtest.InsertOrder(t, s.DB, stale)

		s.createOrder(t, "10:00", 3, "")
	})

	s.Run("Error case: request outside working hours", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, createRequest("16:00", 3), "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})

	s.Run("Normal case: availability lists blocking slots", func() {
		t := s.T()

		s.createOrder(t, "09:00", 2, "")
		stale := builder.NewOrderBuilder().
			WithSlot(bookingDate, "14:00", 1).
			WithCreatedAt(time.Now().Add(-2 * time.Hour))
		dbtest.InsertOrder(t, s.DB, stale)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(availabilityURL, bookingDate), nil, "")
		var got response.AvailabilityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)

		want := response.AvailabilityResponse{
			Date:         bookingDate,
			WorkdayStart: "08:00",
			WorkdayEnd:   "18:00",
			Busy:         []response.SlotResponse{{Start: "09:00", End: "11:00"}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("availability mismatch (-want +got):\n%s", diff)
		}
	})
}

// =============================================================================
// TestPaymentWebhook - payment provider callbacks
// =============================================================================

func (s *OrderSuite) TestPaymentWebhook() {
	s.Run("Normal case: payment confirms the order and replays are idempotent", func() {
		t := s.T()
		created := s.createOrder(t, "10:00", 3, "")

		code, resp := s.sendWebhook(t, request.PaymentWebhookRequest{OrderID: created.OrderID.String(), Event: "payment_intent.succeeded"})
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "awaiting_payment", resp.From)
		require.Equal(t, "paid", resp.To)
		require.False(t, resp.Idempotent)

		code, resp = s.sendWebhook(t, request.PaymentWebhookRequest{OrderID: created.OrderID.String(), NextStatus: "paid"})
		require.Equal(t, http.StatusOK, code)
		require.True(t, resp.Idempotent)

		got := s.getWithPendingToken(t, created.OrderID, created.PendingToken)
		require.Equal(t, "paid", got.Status)
		require.NotNil(t, got.PaidAt)
		require.Equal(t, []string{"awaiting_payment", "paid"}, dbtest.StatusEventTargets(t, s.DB, created.OrderID))
	})

	s.Run("Error case: paying a lapsed hold reports the current status", func() {
		t := s.T()
		stale := builder.NewOrderBuilder().
			WithSlot(bookingDate, "10:00", 3).
			WithCreatedAt(time.Now().Add(-2 * time.Hour))
		id := dbtest.InsertOrder(t, s.DB, stale)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, webhookURL,
			request.PaymentWebhookRequest{OrderID: id.String(), NextStatus: "paid"},
			map[string]string{middleware.WebhookSecretHeader: s.Config.Webhook.Secret})
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		var body struct {
			Detail map[string]string `json:"detail"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Equal(t, "expired", body.Detail["currentStatus"])
		require.Equal(t, "paid", body.Detail["requestedStatus"])
	})

	s.Run("Error case: firm overlap is refused by the database", func() {
		t := s.T()
		firm := builder.NewOrderBuilder().WithSlot(bookingDate, "10:00", 3).AsReserved()
		dbtest.InsertOrder(t, s.DB, firm)
		// a hold admitted before the firm booking existed
		hold := builder.NewOrderBuilder().WithSlot(bookingDate, "11:00", 2).WithCreatedAt(time.Now())
		id := dbtest.InsertOrder(t, s.DB, hold)

		code, _ := s.sendWebhook(t, request.PaymentWebhookRequest{OrderID: id.String(), NextStatus: "paid"})
		require.Equal(t, http.StatusConflict, code)
		require.Equal(t, "awaiting_payment", dbtest.StoredStatus(t, s.DB, id))
	})

	s.Run("Error case: wrong secret", func() {
		t := s.T()
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, webhookURL,
			request.PaymentWebhookRequest{OrderID: uuid.NewString(), NextStatus: "paid"},
			map[string]string{middleware.WebhookSecretHeader: "not-the-secret"})
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid webhook secret")
	})

	s.Run("Error case: unknown order", func() {
		t := s.T()
		code, _ := s.sendWebhook(t, request.PaymentWebhookRequest{OrderID: uuid.NewString(), NextStatus: "paid"})
		require.Equal(t, http.StatusNotFound, code)
	})

	s.Run("Error case: unknown event", func() {
		t := s.T()
		created := s.createOrder(t, "10:00", 3, "")
		code, _ := s.sendWebhook(t, request.PaymentWebhookRequest{OrderID: created.OrderID.String(), Event: "invoice.created"})
		require.Equal(t, http.StatusBadRequest, code)
	})
}

// =============================================================================
// TestOwnership - claim, list, access control
// =============================================================================

func (s *OrderSuite) TestOwnership() {
	s.Run("Normal case: customer claims an anonymous order and lists it", func() {
		t := s.T()
		userID := uuid.New()
		token := s.jwt.GenerateToken(t, userID, user.RoleCustomer)
		created := s.createOrder(t, "10:00", 3, "")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(claimURL, created.OrderID),
			request.ClaimOrderRequest{PendingToken: created.PendingToken}, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL, nil, token)
		var list response.OrderListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Orders, 1)
		require.Equal(t, created.OrderID, list.Orders[0].ID)
		require.NotNil(t, list.Orders[0].UserID)
		require.Equal(t, userID, *list.Orders[0].UserID)
	})

	s.Run("Error case: another customer cannot claim with a wrong token", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		created := s.createOrder(t, "10:00", 3, "")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(claimURL, created.OrderID),
			request.ClaimOrderRequest{PendingToken: "guess"}, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Error case: strangers see not found", func() {
		t := s.T()
		owner := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		stranger := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		created := s.createOrder(t, "10:00", 3, owner)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(orderURL, created.OrderID), nil, owner)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(orderURL, created.OrderID), nil, stranger)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(orderURL, created.OrderID), nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})

	s.Run("Error case: expired access token", func() {
		t := s.T()
		token := s.jwt.CreateExpiredToken(t, uuid.New(), user.RoleCustomer)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})
}

// =============================================================================
// TestCancelAndStaff - cancellation and staff status changes
// =============================================================================

func (s *OrderSuite) TestCancelAndStaff() {
	s.Run("Normal case: pending token cancels and the slot frees up", func() {
		t := s.T()
		created := s.createOrder(t, "10:00", 3, "")

		cancel := func() response.TransitionResponse {
			w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.OrderID), nil,
				map[string]string{cookie.PendingTokenHeader: created.PendingToken})
			var resp response.TransitionResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
			return resp
		}

		first := cancel()
		require.Equal(t, "cancelled", first.To)
		require.False(t, first.Idempotent)
		require.True(t, cancel().Idempotent)

		s.createOrder(t, "10:00", 3, "")
	})

	s.Run("Normal case: staff moves a paid order along", func() {
		t := s.T()
		staff := s.jwt.GenerateToken(t, uuid.New(), user.RoleStaff)
		created := s.createOrder(t, "10:00", 3, "")
		code, _ := s.sendWebhook(t, request.PaymentWebhookRequest{OrderID: created.OrderID.String(), NextStatus: "paid"})
		require.Equal(t, http.StatusOK, code)

		for _, next := range []string{"in_progress", "completed"} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(adminStatusURL, created.OrderID),
				request.ChangeStatusRequest{Status: next}, staff)
			var resp response.TransitionResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
			require.Equal(t, next, resp.To)
		}

		require.Equal(t, []string{"awaiting_payment", "paid", "in_progress", "completed"},
			dbtest.StatusEventTargets(t, s.DB, created.OrderID))
	})

	s.Run("Normal case: legacy stored spelling reads canonically", func() {
		t := s.T()
		staff := s.jwt.GenerateToken(t, uuid.New(), user.RoleStaff)
		id := dbtest.InsertOrder(t, s.DB, builder.NewOrderBuilder().WithSlot(bookingDate, "10:00", 3).AsReserved())
		dbtest.SetStoredStatus(t, s.DB, id, "confirmed")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(orderURL, id), nil, staff)
		var got response.OrderResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, order.StatusReserved.String(), got.Status)
	})

	s.Run("Error case: customers cannot use the staff endpoint", func() {
		t := s.T()
		customer := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(adminStatusURL, uuid.New()),
			request.ChangeStatusRequest{Status: "in_progress"}, customer)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("Error case: staff cannot skip the lifecycle", func() {
		t := s.T()
		staff := s.jwt.GenerateToken(t, uuid.New(), user.RoleStaff)
		created := s.createOrder(t, "10:00", 3, "")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(adminStatusURL, created.OrderID),
			request.ChangeStatusRequest{Status: "completed"}, staff)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})
}
