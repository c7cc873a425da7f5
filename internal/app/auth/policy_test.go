package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
)

func TestAuthorize_MissingActor(t *testing.T) {
	err := Authorize(nil, ActionRoomRead, 0)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	err = Authorize(&Actor{ID: 0, Role: models.RoleAdmin}, ActionRoomRead, 0)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthorize_AdminOnlyActions(t *testing.T) {
	admin := &Actor{ID: 1, Role: models.RoleAdmin}
	student := &Actor{ID: 2, Role: models.RoleStudent}

	adminOnly := []Action{
		ActionRoomCreate,
		ActionRoomUpdate,
		ActionRoomDelete,
		ActionRoomAssign,
		ActionLeaveReview,
		ActionPaymentCreate,
		ActionPaymentUpdate,
		ActionPaymentDelete,
		ActionUserManage,
		ActionDashboardAdmin,
	}

	for _, action := range adminOnly {
		t.Run(string(action), func(t *testing.T) {
			assert.NoError(t, Authorize(admin, action, 0))
			assert.ErrorIs(t, Authorize(student, action, 0), apperrors.ErrPermissionDenied)
		})
	}
}

func TestAuthorize_StudentOnlyActions(t *testing.T) {
	admin := &Actor{ID: 1, Role: models.RoleAdmin}
	student := &Actor{ID: 2, Role: models.RoleStudent}

	assert.NoError(t, Authorize(student, ActionLeaveCreate, 0))
	assert.ErrorIs(t, Authorize(admin, ActionLeaveCreate, 0), apperrors.ErrPermissionDenied)

	assert.NoError(t, Authorize(student, ActionDashboardStudent, 0))
	assert.ErrorIs(t, Authorize(admin, ActionDashboardStudent, 0), apperrors.ErrPermissionDenied)

	// Self-service profile is a student surface; admins manage accounts
	// through the user administration endpoints instead.
	assert.NoError(t, Authorize(student, ActionProfileSelf, student.ID))
	assert.ErrorIs(t, Authorize(admin, ActionProfileSelf, admin.ID), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, Authorize(student, ActionProfileSelf, student.ID+1), apperrors.ErrPermissionDenied)
}

func TestAuthorize_OwnerScopedReads(t *testing.T) {
	admin := &Actor{ID: 1, Role: models.RoleAdmin}
	owner := &Actor{ID: 7, Role: models.RoleStudent}
	other := &Actor{ID: 8, Role: models.RoleStudent}

	for _, action := range []Action{ActionLeaveRead, ActionPaymentRead, ActionLeaveDelete} {
		t.Run(string(action), func(t *testing.T) {
			// Admin may access regardless of owner
			assert.NoError(t, Authorize(admin, action, 7))

			// Owner may access their own resource
			assert.NoError(t, Authorize(owner, action, 7))

			// Another student is denied the same way whether or not the
			// resource exists
			assert.ErrorIs(t, Authorize(other, action, 7), apperrors.ErrPermissionDenied)
			assert.ErrorIs(t, Authorize(other, action, 0), apperrors.ErrPermissionDenied)
		})
	}
}

func TestAuthorize_UnknownRoleAndAction(t *testing.T) {
	weird := &Actor{ID: 3, Role: models.RoleType("guest")}
	assert.ErrorIs(t, Authorize(weird, ActionRoomRead, 0), apperrors.ErrPermissionDenied)

	admin := &Actor{ID: 1, Role: models.RoleAdmin}
	assert.ErrorIs(t, Authorize(admin, Action("nonexistent"), 0), apperrors.ErrPermissionDenied)
}

func TestListScope(t *testing.T) {
	_, err := ListScope(nil)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	scope, err := ListScope(&Actor{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, scope.All)

	scope, err = ListScope(&Actor{ID: 42, Role: models.RoleStudent})
	require.NoError(t, err)
	assert.False(t, scope.All)
	assert.Equal(t, int64(42), scope.StudentID)
}
