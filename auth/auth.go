// Package auth runs the sign-in, sign-up and password reset flows: form
// validation first, then the hosted auth backend call under the attempt
// guard.
package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/codetesla51/attemptguard/forms"
	"github.com/codetesla51/attemptguard/guard"
)

// Backend is the hosted authentication service.
type Backend interface {
	SignInWithEmail(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password, username string) error
	ResetPassword(ctx context.Context, email string) error
}

type Service struct {
	backend Backend
	guard   *guard.Guard
	logger  *zap.Logger
}

func NewService(backend Backend, g *guard.Guard, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, guard: g, logger: logger}
}

// SignIn validates the form and signs in. Invalid forms never reach the
// backend and do not count as attempts. A locked-out key returns a
// *guard.LimitedError.
func (s *Service) SignIn(ctx context.Context, form forms.LoginForm) error {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return err
	}

	err := s.guard.Do(ctx, guard.ActionLogin, func(ctx context.Context) error {
		return s.backend.SignInWithEmail(ctx, form.Email, form.Password)
	})
	s.logOutcome(guard.ActionLogin, err)
	return err
}

func (s *Service) SignUp(ctx context.Context, form forms.SignupForm) error {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return err
	}

	err := s.guard.Do(ctx, guard.ActionSignup, func(ctx context.Context) error {
		return s.backend.SignUp(ctx, form.Email, form.Password, form.Username)
	})
	s.logOutcome(guard.ActionSignup, err)
	return err
}

func (s *Service) RequestPasswordReset(ctx context.Context, form forms.ResetForm) error {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return err
	}

	err := s.guard.Do(ctx, guard.ActionPasswordReset, func(ctx context.Context) error {
		return s.backend.ResetPassword(ctx, form.Email)
	})
	s.logOutcome(guard.ActionPasswordReset, err)
	return err
}

func (s *Service) logOutcome(action string, err error) {
	switch {
	case err == nil:
		s.logger.Info("auth action succeeded", zap.String("action", action))
	case guard.IsLimited(err):
		s.logger.Warn("auth action throttled", zap.String("action", action), zap.Error(err))
	default:
		s.logger.Info("auth action failed", zap.String("action", action), zap.Error(err))
	}
}
