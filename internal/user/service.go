package user

import (
	"context"
	"time"

	"suplementi-be/internal/logger"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// Mailer is the external transactional email collaborator. Delivery itself
// is out of process; the service only triggers it.
type Mailer interface {
	SendVerification(ctx context.Context, email string) error
}

type Service interface {
	Login(ctx context.Context, email, password string) (string, User, error)
	ResendVerification(ctx context.Context, email string) error
}

const (
	resendCooldown     = 2 * time.Minute
	resendCooldownSize = 1024
)

type service struct {
	repo   Repository
	mailer Mailer

	// cooldown is a keyed expiring store replacing the in-process
	// cooldown map of the old backend; entries fall out on their own
	// after the resend window.
	cooldown *expirable.LRU[string, time.Time]
}

func NewService(repo Repository, mailer Mailer) Service {
	return &service{
		repo:     repo,
		mailer:   mailer,
		cooldown: expirable.NewLRU[string, time.Time](resendCooldownSize, nil, resendCooldown),
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "Login"))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("login failed, email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("login failed, password mismatch", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		return "", User{}, err
	}

	return token, u, nil
}

func (s *service) ResendVerification(ctx context.Context, email string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "ResendVerification"),
		zap.String("email", email),
	)

	if _, active := s.cooldown.Get(email); active {
		log.Warn("resend throttled")
		return ErrCooldownActive
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if u.Verified {
		return ErrAlreadyVerified
	}

	if err := s.mailer.SendVerification(ctx, email); err != nil {
		log.Error("failed to send verification email", zap.Error(err))
		return err
	}

	s.cooldown.Add(email, time.Now())
	log.Info("verification email sent")
	return nil
}
