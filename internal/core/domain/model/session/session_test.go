package session_test

import (
	"testing"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	t.Run("parses_known_roles", func(t *testing.T) {
		for name, want := range map[string]session.Role{
			"customer": session.RoleCustomer,
			"kitchen":  session.RoleKitchen,
			"manager":  session.RoleManager,
		} {
			got, err := session.RoleFromString(name)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("rejects_unknown", func(t *testing.T) {
		for _, name := range []string{"", "admin", "Customer", "unknown"} {
			_, err := session.RoleFromString(name)
			require.Error(t, err, "role %q", name)
		}
	})
}

func TestRole_Hierarchy(t *testing.T) {
	t.Run("manager_is_superset_of_kitchen", func(t *testing.T) {
		assert.True(t, session.RoleManager.ActsAsKitchen())
		assert.True(t, session.RoleManager.ActsAsManager())
	})

	t.Run("kitchen_is_not_manager", func(t *testing.T) {
		assert.True(t, session.RoleKitchen.ActsAsKitchen())
		assert.False(t, session.RoleKitchen.ActsAsManager())
	})

	t.Run("customer_has_no_staff_privilege", func(t *testing.T) {
		assert.False(t, session.RoleCustomer.ActsAsKitchen())
		assert.False(t, session.RoleCustomer.ActsAsManager())
		assert.False(t, session.RoleCustomer.IsStaff())
	})
}

func TestNewCustomerSession(t *testing.T) {
	now := time.Now()

	t.Run("binds_table_and_pin_version", func(t *testing.T) {
		tableID := kernel.NewUUID()
		s, err := session.NewCustomerSession(tableID, 3, now, 8*time.Hour)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, session.RoleCustomer, s.Role())
		assert.Equal(t, session.CategoryCustomer, s.Category())
		assert.Equal(t, int64(3), s.PinVersion())
		require.NotNil(t, s.TableID())
		assert.True(t, s.TableID().IsEqual(tableID))
		assert.Equal(t, now.Add(8*time.Hour), s.ExpiresAt())
	})

	t.Run("rejects_invalid_inputs", func(t *testing.T) {
		_, err := session.NewCustomerSession(kernel.UUID{}, 1, now, time.Hour)
		require.Error(t, err)

		_, err = session.NewCustomerSession(kernel.NewUUID(), 0, now, time.Hour)
		require.Error(t, err)

		_, err = session.NewCustomerSession(kernel.NewUUID(), 1, now, 0)
		require.Error(t, err)
	})
}

func TestNewStaffSession(t *testing.T) {
	now := time.Now()

	t.Run("kitchen_and_manager_are_staff", func(t *testing.T) {
		for _, role := range []session.Role{session.RoleKitchen, session.RoleManager} {
			s, err := session.NewStaffSession(role, now, 8*time.Hour)
			require.NoError(t, err)
			assert.Equal(t, session.CategoryStaff, s.Category())
			assert.Nil(t, s.TableID())
		}
	})

	t.Run("customer_role_is_rejected", func(t *testing.T) {
		_, err := session.NewStaffSession(session.RoleCustomer, now, time.Hour)
		require.Error(t, err)
	})
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()
	s, err := session.NewStaffSession(session.RoleKitchen, now, time.Hour)
	require.NoError(t, err)

	assert.False(t, s.IsExpired(now))
	assert.False(t, s.IsExpired(now.Add(time.Hour-time.Second)))
	assert.True(t, s.IsExpired(now.Add(time.Hour)))
	assert.True(t, s.IsExpired(now.Add(2*time.Hour)))
}

func TestSession_OwnsTable(t *testing.T) {
	now := time.Now()
	tableID := kernel.NewUUID()

	customer, err := session.NewCustomerSession(tableID, 1, now, time.Hour)
	require.NoError(t, err)
	staff, err := session.NewStaffSession(session.RoleManager, now, time.Hour)
	require.NoError(t, err)

	assert.True(t, customer.OwnsTable(tableID))
	assert.False(t, customer.OwnsTable(kernel.NewUUID()))
	assert.False(t, staff.OwnsTable(tableID))
}

func TestSession_ZeroValueIsInvalid(t *testing.T) {
	var s session.Session
	require.ErrorIs(t, s.Validate(), session.ErrSessionIsNotConstructed)
}
