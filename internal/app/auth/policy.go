package auth

import (
	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
)

// Actor is the authenticated principal evaluated by the policy
type Actor struct {
	ID   int64
	Role models.RoleType
}

// Action identifies an operation gated by the policy
type Action string

const (
	ActionRoomCreate       Action = "room.create"
	ActionRoomRead         Action = "room.read"
	ActionRoomUpdate       Action = "room.update"
	ActionRoomDelete       Action = "room.delete"
	ActionRoomAssign       Action = "room.assign"
	ActionLeaveCreate      Action = "leave.create"
	ActionLeaveRead        Action = "leave.read"
	ActionLeaveList        Action = "leave.list"
	ActionLeaveReview      Action = "leave.review"
	ActionLeaveDelete      Action = "leave.delete"
	ActionPaymentCreate    Action = "payment.create"
	ActionPaymentRead      Action = "payment.read"
	ActionPaymentList      Action = "payment.list"
	ActionPaymentUpdate    Action = "payment.update"
	ActionPaymentDelete    Action = "payment.delete"
	ActionUserManage       Action = "user.manage"
	ActionProfileSelf      Action = "profile.self"
	ActionDashboardAdmin   Action = "dashboard.admin"
	ActionDashboardStudent Action = "dashboard.student"
)

// rule describes who may perform an action. ownerOnly means a student actor
// must own the target resource; admin grants unconditional access.
type rule struct {
	admin     bool
	student   bool
	ownerOnly bool
}

// policy is the single authority for role access. Deny is the default:
// an action missing from the table is allowed to nobody.
var policy = map[Action]rule{
	ActionRoomCreate: {admin: true},
	ActionRoomRead:   {admin: true, student: true},
	ActionRoomUpdate: {admin: true},
	ActionRoomDelete: {admin: true},
	ActionRoomAssign: {admin: true},

	ActionLeaveCreate: {student: true},
	ActionLeaveRead:   {admin: true, student: true, ownerOnly: true},
	ActionLeaveList:   {admin: true, student: true},
	ActionLeaveReview: {admin: true},
	ActionLeaveDelete: {admin: true, student: true, ownerOnly: true},

	ActionPaymentCreate: {admin: true},
	ActionPaymentRead:   {admin: true, student: true, ownerOnly: true},
	ActionPaymentList:   {admin: true, student: true},
	ActionPaymentUpdate: {admin: true},
	ActionPaymentDelete: {admin: true},

	ActionUserManage: {admin: true},

	ActionProfileSelf: {student: true, ownerOnly: true},

	ActionDashboardAdmin:   {admin: true},
	ActionDashboardStudent: {student: true},
}

// Authorize evaluates whether actor may perform action against a resource
// owned by ownerID. Pass 0 for ownerID when the action has no owner scope.
//
// Rules are applied in precedence order: missing actor first, then role
// gate, then owner scope. Denials for missing resources and denials for
// foreign resources are indistinguishable to the caller.
func Authorize(actor *Actor, action Action, ownerID int64) error {
	if actor == nil || actor.ID <= 0 {
		return apperrors.ErrUnauthenticated
	}

	r, ok := policy[action]
	if !ok {
		return apperrors.ErrPermissionDenied
	}

	switch actor.Role {
	case models.RoleAdmin:
		if !r.admin {
			return apperrors.ErrPermissionDenied
		}
		return nil
	case models.RoleStudent:
		if !r.student {
			return apperrors.ErrPermissionDenied
		}
		if r.ownerOnly && actor.ID != ownerID {
			return apperrors.ErrPermissionDenied
		}
		return nil
	default:
		return apperrors.ErrPermissionDenied
	}
}

// Scope is a query-time filter for list operations
type Scope struct {
	// All is true when the actor may see every row
	All bool
	// StudentID restricts rows to a single student when All is false
	StudentID int64
}

// ListScope returns the row filter an actor is entitled to on list
// operations. Admins see everything; students see only their own rows.
func ListScope(actor *Actor) (Scope, error) {
	if actor == nil || actor.ID <= 0 {
		return Scope{}, apperrors.ErrUnauthenticated
	}

	if actor.Role == models.RoleAdmin {
		return Scope{All: true}, nil
	}
	return Scope{StudentID: actor.ID}, nil
}
