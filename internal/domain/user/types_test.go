//go:build unit

package user_test

import (
	"testing"

	"homeclean/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  user.Role
		errIs error
	}{
		{name: "empty claim is customer", input: "", want: user.RoleCustomer},
		{name: "provider default role is customer", input: "authenticated", want: user.RoleCustomer},
		{name: "staff", input: "staff", want: user.RoleStaff},
		{name: "admin", input: "admin", want: user.RoleAdmin},
		{name: "unknown", input: "root", errIs: user.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := user.NewRole(tt.input)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanManageOrders(t *testing.T) {
	assert.False(t, user.RoleCustomer.CanManageOrders())
	assert.True(t, user.RoleStaff.CanManageOrders())
	assert.True(t, user.RoleAdmin.CanManageOrders())
}
