//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"homeclean/internal/domain/order"
	"homeclean/internal/domain/user"
	"homeclean/internal/handler/api"
	"homeclean/internal/pkg/errs"
	"homeclean/internal/usecase/commands"
	"homeclean/tests/common/httptest"
	commandsmock "homeclean/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.router.PATCH("/admin/orders/:id/status", fakeAuth(true), api.NewAdminHandler(s.mockCommands).ChangeStatus)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestChangeStatus() {
	id := uuid.New()
	url := "/admin/orders/" + id.String() + "/status"

	s.Run("success: staff moves the order", func() {
		uid := testUserID
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), id, "in_progress", commands.Actor{UserID: &uid, Role: user.RoleStaff}).
			Return(&commands.TransitionResult{OrderID: id, From: order.StatusReserved, To: order.StatusInProgress}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "in_progress"}, "staff-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 403 for customers", func() {
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), id, "completed", gomock.Any()).
			Return(nil, errs.Mark(commands.ErrNotStaff, errs.ErrForbidden)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "completed"}, "customer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "staff")
	})

	s.Run("error: 400 without status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "staff-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "completed"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
