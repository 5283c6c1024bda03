package user

import (
	"context"

	"suplementi-be/internal/logger"

	"go.uber.org/zap"
)

// LogMailer stands in for the external email provider in environments
// without one configured.
type LogMailer struct{}

func (LogMailer) SendVerification(ctx context.Context, email string) error {
	logger.FromCtx(ctx).Info("verification email dispatched",
		zap.String("email", email),
	)
	return nil
}
