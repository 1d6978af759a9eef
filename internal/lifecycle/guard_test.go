package lifecycle

import (
	"testing"

	"github.com/bridge-yp/erp-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeSuperAdminUnconditional(t *testing.T) {
	actor := ActorContext{Role: enums.ActorRoleSuperAdmin}
	for _, action := range enums.AllOrderActions() {
		_, ok := Authorize(action, actor)
		assert.True(t, ok, "SUPER_ADMIN must be admitted for %s", action)
	}
}

// If any role is admitted for an action, SUPER_ADMIN must be too.
func TestAuthorizeRoleMonotonicity(t *testing.T) {
	super := ActorContext{Role: enums.ActorRoleSuperAdmin}
	owner := ActorContext{IsCreator: true, IsAssignedAdmin: true}

	for _, role := range []enums.ActorRole{enums.ActorRoleUser, enums.ActorRoleAdmin} {
		owner.Role = role
		for _, action := range enums.AllOrderActions() {
			if _, ok := Authorize(action, owner); !ok {
				continue
			}
			_, ok := Authorize(action, super)
			assert.True(t, ok, "SUPER_ADMIN must cover %s admitted for %s", action, role)
		}
	}
}

func TestAuthorizeUserRestrictedToOwnExits(t *testing.T) {
	creator := ActorContext{Role: enums.ActorRoleUser, IsCreator: true}

	_, ok := Authorize(enums.OrderActionCancel, creator)
	assert.True(t, ok)
	_, ok = Authorize(enums.OrderActionArchive, creator)
	assert.True(t, ok)

	reason, ok := Authorize(enums.OrderActionShip, creator)
	require.False(t, ok)
	assert.Equal(t, DenyInsufficientRole, reason)

	reason, ok = Authorize(enums.OrderActionDelete, creator)
	require.False(t, ok)
	assert.Equal(t, DenyInsufficientRole, reason)
}

func TestAuthorizeOwnershipRequired(t *testing.T) {
	unrelated := ActorContext{Role: enums.ActorRoleAdmin}

	reason, ok := Authorize(enums.OrderActionShip, unrelated)
	require.False(t, ok)
	assert.Equal(t, DenyNotOwner, reason)

	assigned := ActorContext{Role: enums.ActorRoleAdmin, IsAssignedAdmin: true}
	_, ok = Authorize(enums.OrderActionShip, assigned)
	assert.True(t, ok)
}

func TestAuthorizeCancelExtendsToCreator(t *testing.T) {
	creatorAdmin := ActorContext{Role: enums.ActorRoleAdmin, IsCreator: true}
	_, ok := Authorize(enums.OrderActionCancel, creatorAdmin)
	assert.True(t, ok)
}

func TestAuthorizeUnknownAction(t *testing.T) {
	actor := ActorContext{Role: enums.ActorRoleSuperAdmin}
	reason, ok := Authorize(enums.OrderAction("EXPLODE"), actor)
	require.False(t, ok)
	assert.Equal(t, DenyActionUnknown, reason)
}

func TestAuthorizeUnknownRole(t *testing.T) {
	actor := ActorContext{Role: enums.ActorRole("INTERN"), IsCreator: true}
	reason, ok := Authorize(enums.OrderActionCancel, actor)
	require.False(t, ok)
	assert.Equal(t, DenyInsufficientRole, reason)
}
