// Package access decides whether a principal may act on data owned by a user.
// Ownership is always expressed as the owning user's id.
package access

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/apperror"
)

var (
	ErrNotOwner      = apperror.New(apperror.ErrForbidden, "not enough permissions")
	ErrAdminRequired = apperror.New(apperror.ErrForbidden, "admin access required")
	ErrSelfApproval  = apperror.New(apperror.ErrForbidden, "cannot approve your own time entry")
	ErrSelfDeletion  = apperror.New(apperror.ErrForbidden, "cannot delete your own account")
)

// CanAccessOwned allows admins and the owner.
func CanAccessOwned(p auth.Principal, ownerUserID string) error {
	if p.Admin() {
		return nil
	}
	if ownerUserID == "" || p.UserID != ownerUserID {
		return ErrNotOwner
	}
	return nil
}

func RequireAdmin(p auth.Principal) error {
	if !p.Admin() {
		return ErrAdminRequired
	}
	return nil
}

// CanApproveTimeEntry allows admins other than the entry's owner.
func CanApproveTimeEntry(p auth.Principal, ownerUserID string) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	if p.UserID == ownerUserID {
		return ErrSelfApproval
	}
	return nil
}

func CanDeleteUser(p auth.Principal, targetUserID string) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	if p.UserID == targetUserID {
		return ErrSelfDeletion
	}
	return nil
}
