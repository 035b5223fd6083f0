package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nitt-hospital/backend/internal/domain"
	"github.com/nitt-hospital/backend/internal/repository"
	"github.com/nitt-hospital/backend/pkg/auth"
	"github.com/nitt-hospital/backend/pkg/email"
	"github.com/nitt-hospital/backend/pkg/hash"

	"github.com/google/uuid"
)

type StaffLogin struct {
	AccessToken string
	ExpiresIn   time.Duration
	Staff       *domain.Staff
}

type staffAuthService struct {
	staff        repository.Staff
	hasher       hash.PasswordHasher
	tokenManager auth.TokenManager
}

func newStaffAuthService(staff repository.Staff, hasher hash.PasswordHasher, tokenManager auth.TokenManager) *staffAuthService {
	return &staffAuthService{
		staff:        staff,
		hasher:       hasher,
		tokenManager: tokenManager,
	}
}

func (s *staffAuthService) Login(ctx context.Context, address string, password string) (*StaffLogin, error) {
	staff, err := s.staff.GetByEmail(ctx, email.Normalize(address))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get staff failed: %w", err)
	}

	if !staff.IsActive || !s.hasher.Verify(password, staff.Password) {
		return nil, ErrInvalidCredentials
	}

	token, ttl, err := s.tokenManager.NewJWT(auth.Principal{
		ID:    staff.ID.String(),
		Email: staff.Email,
		Role:  string(staff.Role),
		Type:  auth.SubjectStaff,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token failed: %w", err)
	}

	return &StaffLogin{AccessToken: token, ExpiresIn: ttl, Staff: staff}, nil
}

func (s *staffAuthService) GetMe(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	staff, err := s.staff.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("get staff failed: %w", err)
	}

	if !staff.IsActive {
		return nil, ErrUnauthorized
	}

	return staff, nil
}
