//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"homeclean/internal/domain/order"
	"homeclean/internal/handler/api"
	resdto "homeclean/internal/handler/dto/response"
	"homeclean/internal/pkg/errs"
	"homeclean/internal/usecase/commands"
	"homeclean/tests/common/httptest"
	commandsmock "homeclean/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.router.POST("/webhooks/payment", api.NewWebhookHandler(s.mockCommands).Payment)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) TestPayment() {
	url := "/webhooks/payment"
	id := uuid.New()

	s.Run("success: applied transition", func() {
		s.mockCommands.EXPECT().ApplyPaymentEvent(gomock.Any(), commands.PaymentEvent{
			OrderID:    id,
			Event:      "payment.succeeded",
			OccurredAt: "2026-03-01T09:03:00Z",
		}).Return(&commands.TransitionResult{OrderID: id, From: order.StatusAwaitingPayment, To: order.StatusPaid}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{
			"orderId":    id.String(),
			"event":      "payment.succeeded",
			"occurredAt": "2026-03-01T09:03:00Z",
		}, "")

		var body resdto.TransitionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.OK)
		s.Equal("awaiting_payment", body.From)
		s.Equal("paid", body.To)
		s.False(body.Idempotent)
	})

	s.Run("success: replay reports idempotent", func() {
		s.mockCommands.EXPECT().ApplyPaymentEvent(gomock.Any(), gomock.Any()).
			Return(&commands.TransitionResult{OrderID: id, From: order.StatusPaid, To: order.StatusPaid, Idempotent: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"orderId": id.String(), "nextStatus": "paid"}, "")

		var body resdto.TransitionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Idempotent)
	})

	s.Run("error: 400 on malformed body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"event": "payment.succeeded"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 on malformed order id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"orderId": "42", "event": "payment.succeeded"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid orderId")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown event",
				commandsError:  errs.Mark(commands.ErrUnknownPaymentEvent, errs.ErrInvalidInput),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "unknown payment event",
			},
			{
				name:           "unknown order",
				commandsError:  errs.Mark(commands.ErrOrderNotFound, errs.ErrNotFound),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "order not found",
			},
			{
				name:           "invalid transition",
				commandsError:  errs.Mark(&order.InvalidTransitionError{From: order.StatusExpired, To: order.StatusPaid}, errs.ErrConflict),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "expired -> paid",
			},
			{
				name:           "status rejected by storage",
				commandsError:  errs.Mark(errs.Mark(errs.New("check violation"), commands.ErrStatusRejected), errs.ErrConfiguration),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Server configuration error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ApplyPaymentEvent(gomock.Any(), gomock.Any()).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"orderId": id.String(), "event": "payment.succeeded"}, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
