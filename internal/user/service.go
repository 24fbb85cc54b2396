package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TempIDPrefix starts every generated temp ID.
const TempIDPrefix = "temp_"

// GenerateTempID returns TempIDPrefix followed by 16 random hex characters.
func GenerateTempID() string {
	return TempIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// Service resolves temp IDs to users, creating users on demand.
type Service struct {
	repo      Repository
	newTempID func() string
	now       func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithTempIDGenerator replaces GenerateTempID.
func WithTempIDGenerator(fn func() string) ServiceOption {
	return func(s *Service) {
		s.newTempID = fn
	}
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = fn
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:      repo,
		newTempID: GenerateTempID,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTempUser creates a user with a fresh temp ID that no other user has.
func (s *Service) CreateTempUser(ctx context.Context) (*User, error) {
	var tempID string
	for {
		tempID = s.newTempID()
		exists, err := s.repo.ExistsByTempID(ctx, tempID)
		if err != nil {
			return nil, fmt.Errorf("repo.ExistsByTempID() > %w", err)
		}
		if !exists {
			break
		}
		log.Debug().Str("temp_id", tempID).Msg("generated temp id is taken, retrying")
	}

	now := s.now()
	u := &User{
		TempID:         tempID,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("repo.Create() > %w", err)
	}
	log.Info().Str("temp_id", tempID).Int64("user_id", u.ID).Msg("created temp user")
	return u, nil
}

// FindByTempID returns the user or nil if the temp ID is unknown.
func (s *Service) FindByTempID(ctx context.Context, tempID string) (*User, error) {
	u, err := s.repo.FindByTempID(ctx, tempID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByTempID() > %w", err)
	}
	return u, nil
}

// ValidateTempID reports whether the temp ID belongs to a user. A valid ID
// counts as an access.
func (s *Service) ValidateTempID(ctx context.Context, tempID string) (bool, error) {
	if strings.TrimSpace(tempID) == "" {
		return false, nil
	}
	exists, err := s.repo.ExistsByTempID(ctx, tempID)
	if err != nil {
		return false, fmt.Errorf("repo.ExistsByTempID() > %w", err)
	}
	if !exists {
		return false, nil
	}
	if err := s.Touch(ctx, tempID); err != nil {
		return false, err
	}
	return true, nil
}

// Touch sets the last access time of the user to now.
func (s *Service) Touch(ctx context.Context, tempID string) error {
	if err := s.repo.UpdateLastAccessedAt(ctx, tempID, s.now()); err != nil {
		return fmt.Errorf("repo.UpdateLastAccessedAt() > %w", err)
	}
	return nil
}

// GetOrCreate returns the user owning tempID. A blank or unknown temp ID
// yields a new user with a new temp ID.
func (s *Service) GetOrCreate(ctx context.Context, tempID string) (*User, error) {
	if strings.TrimSpace(tempID) == "" {
		return s.CreateTempUser(ctx)
	}

	u, err := s.FindByTempID(ctx, tempID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		log.Debug().Str("temp_id", tempID).Msg("unknown temp id, creating a new user")
		return s.CreateTempUser(ctx)
	}

	now := s.now()
	if err := s.repo.UpdateLastAccessedAt(ctx, tempID, now); err != nil {
		return nil, fmt.Errorf("repo.UpdateLastAccessedAt() > %w", err)
	}
	u.LastAccessedAt = now
	return u, nil
}
