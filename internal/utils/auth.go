package utils

import (
	"context"
	"errors"
)

const RoleAdmin = "ADMIN"

var ErrForbidden = errors.New("forbidden")

// RequireAdmin is the single authorization guard for the admin back-office.
// Every service entry point that mutates orders or stock calls it before
// doing any work.
func RequireAdmin(ctx context.Context) error {
	if GetUserRoleFromContext(ctx) != RoleAdmin {
		return ErrForbidden
	}
	return nil
}
