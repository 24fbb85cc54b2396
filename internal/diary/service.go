package diary

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ImageRemover deletes stored image files.
type ImageRemover interface {
	Delete(filename string) bool
}

// Service implements diary use cases on top of a Repository.
type Service struct {
	repo      Repository
	images    ImageRemover
	validator *inputValidator
	now       func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithImageRemover makes Delete and Update remove image files that no diary
// references anymore.
func WithImageRemover(images ImageRemover) ServiceOption {
	return func(s *Service) {
		s.images = images
	}
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = fn
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) (*Service, error) {
	v, err := newInputValidator()
	if err != nil {
		return nil, err
	}
	s := &Service{
		repo:      repo,
		validator: v,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// List returns a page of the user's diaries, newest diary date first.
func (s *Service) List(ctx context.Context, userID int64, req PageRequest) (Page, error) {
	return s.findPage(ctx, userID, Filter{}, req)
}

// Search returns a page of the user's diaries matching criteria. See
// Criteria.Filter for which criterion wins.
func (s *Service) Search(ctx context.Context, userID int64, criteria Criteria, req PageRequest) (Page, error) {
	return s.findPage(ctx, userID, criteria.Filter(), req)
}

func (s *Service) findPage(ctx context.Context, userID int64, filter Filter, req PageRequest) (Page, error) {
	req = req.Normalize()

	total, err := s.repo.Count(ctx, userID, filter)
	if err != nil {
		return Page{}, fmt.Errorf("repo.Count() > %w", err)
	}
	diaries, err := s.repo.FindPage(ctx, userID, filter, req.Size, req.Offset())
	if err != nil {
		return Page{}, fmt.Errorf("repo.FindPage() > %w", err)
	}
	if diaries == nil {
		diaries = []Diary{}
	}
	return Page{
		Diaries:       diaries,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
	}, nil
}

// Get returns the user's diary or ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, id int64) (*Diary, error) {
	d, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByIDAndUser() > %w", err)
	}
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}

// Create validates in and stores a new diary. The diary date defaults to today.
func (s *Service) Create(ctx context.Context, userID int64, in Input) (*Diary, error) {
	if err := s.validator.check(in); err != nil {
		return nil, err
	}

	now := s.now()
	d := &Diary{
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		DiaryDate: DateOnly(now),
		ImagePath: in.ImagePath,
		CreatedAt: timestamp(now),
		UpdatedAt: timestamp(now),
	}
	if in.DiaryDate != nil {
		d.DiaryDate = DateOnly(*in.DiaryDate)
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("repo.Create() > %w", err)
	}
	log.Debug().Int64("user_id", userID).Int64("diary_id", d.ID).Msg("created diary")
	return d, nil
}

// Update replaces the title and content of the user's diary. The date and
// image path change only when set in in.
func (s *Service) Update(ctx context.Context, userID, id int64, in Input) (*Diary, error) {
	if err := s.validator.check(in); err != nil {
		return nil, err
	}

	d, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	d.Title = in.Title
	d.Content = in.Content
	if in.DiaryDate != nil {
		d.DiaryDate = DateOnly(*in.DiaryDate)
	}
	var previousImage string
	if in.ImagePath != nil {
		if d.ImagePath != nil && *d.ImagePath != *in.ImagePath {
			previousImage = *d.ImagePath
		}
		d.ImagePath = in.ImagePath
	}
	d.UpdatedAt = timestamp(s.now())

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("repo.Update() > %w", err)
	}
	s.releaseImage(ctx, previousImage, id)
	log.Debug().Int64("user_id", userID).Int64("diary_id", id).Msg("updated diary")
	return d, nil
}

// Delete removes the user's diary, or returns ErrNotFound. The image file goes
// too unless another diary still references it.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	d, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("repo.Delete() > %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	if d.ImagePath != nil {
		s.releaseImage(ctx, *d.ImagePath, id)
	}
	log.Debug().Int64("user_id", userID).Int64("diary_id", id).Msg("deleted diary")
	return nil
}

// releaseImage deletes the image file once no diary of any user references
// it. Failures are logged and the file is kept.
func (s *Service) releaseImage(ctx context.Context, imagePath string, diaryID int64) {
	if s.images == nil || imagePath == "" {
		return
	}
	refs, err := s.repo.CountByImagePath(ctx, imagePath)
	if err != nil {
		log.Warn().Err(err).Str("image", imagePath).Int64("diary_id", diaryID).Msg("failed to count image references, keeping the file")
		return
	}
	if refs > 0 {
		log.Debug().Str("image", imagePath).Int64("references", refs).Msg("image still referenced")
		return
	}
	if !s.images.Delete(imagePath) {
		log.Warn().Str("image", imagePath).Int64("diary_id", diaryID).Msg("failed to delete diary image")
	}
}

// Count returns the number of the user's diaries.
func (s *Service) Count(ctx context.Context, userID int64) (int64, error) {
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("repo.CountByUser() > %w", err)
	}
	return count, nil
}

// ListAll returns every diary of the user, oldest diary date first.
func (s *Service) ListAll(ctx context.Context, userID int64) ([]Diary, error) {
	diaries, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindAllByUser() > %w", err)
	}
	return diaries, nil
}
