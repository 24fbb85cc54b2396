package diary_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/diary/internal/diary"
	mock_diary "github.com/at-ishikawa/diary/internal/mocks/diary"
)

var fixedNow = time.Date(2024, 1, 15, 21, 30, 0, 0, time.UTC)

func newService(t *testing.T, repo diary.Repository, opts ...diary.ServiceOption) *diary.Service {
	t.Helper()
	opts = append([]diary.ServiceOption{diary.WithClock(func() time.Time { return fixedNow })}, opts...)
	svc, err := diary.NewService(repo, opts...)
	require.NoError(t, err)
	return svc
}

func ptr[T any](v T) *T {
	return &v
}

func TestService_List(t *testing.T) {
	tests := []struct {
		name       string
		req        diary.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", req: diary.PageRequest{}, wantLimit: 10, wantOffset: 0},
		{name: "second page", req: diary.PageRequest{Page: 1, Size: 5}, wantLimit: 5, wantOffset: 5},
		{name: "oversized page is clamped", req: diary.PageRequest{Page: 0, Size: 500}, wantLimit: 100, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_diary.NewMockRepository(ctrl)
			repo.EXPECT().Count(gomock.Any(), int64(1), diary.Filter{}).Return(int64(12), nil)
			repo.EXPECT().FindPage(gomock.Any(), int64(1), diary.Filter{}, tt.wantLimit, tt.wantOffset).Return(nil, nil)

			got, err := newService(t, repo).List(context.Background(), 1, tt.req)
			require.NoError(t, err)
			assert.NotNil(t, got.Diaries)
			assert.Equal(t, int64(12), got.TotalElements)
			assert.Equal(t, tt.wantLimit, got.Size)
		})
	}
}

func TestService_Search(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		criteria   diary.Criteria
		wantFilter diary.Filter
	}{
		{name: "title", criteria: diary.Criteria{Title: "trip", Content: "beach"}, wantFilter: diary.Filter{Title: "trip"}},
		{name: "content", criteria: diary.Criteria{Content: "beach"}, wantFilter: diary.Filter{Content: "beach"}},
		{name: "date range", criteria: diary.Criteria{StartDate: &start, EndDate: &end}, wantFilter: diary.Filter{From: &start, To: &end}},
		{name: "nothing falls back to list", criteria: diary.Criteria{EndDate: &end}, wantFilter: diary.Filter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_diary.NewMockRepository(ctrl)
			repo.EXPECT().Count(gomock.Any(), int64(1), tt.wantFilter).Return(int64(1), nil)
			repo.EXPECT().FindPage(gomock.Any(), int64(1), tt.wantFilter, 10, 0).
				Return([]diary.Diary{{ID: 1, UserID: 1}}, nil)

			got, err := newService(t, repo).Search(context.Background(), 1, tt.criteria, diary.PageRequest{})
			require.NoError(t, err)
			assert.Len(t, got.Diaries, 1)
			assert.Equal(t, 1, got.TotalPages())
		})
	}
}

func TestService_Get(t *testing.T) {
	t.Run("not owned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_diary.NewMockRepository(ctrl)
		repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(5), int64(2)).Return(nil, nil)

		_, err := newService(t, repo).Get(context.Background(), 2, 5)
		assert.ErrorIs(t, err, diary.ErrNotFound)
	})

	t.Run("repository error is not a not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_diary.NewMockRepository(ctrl)
		repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(5), int64(2)).Return(nil, errors.New("timeout"))

		_, err := newService(t, repo).Get(context.Background(), 2, 5)
		require.Error(t, err)
		assert.NotErrorIs(t, err, diary.ErrNotFound)
	})
}

func TestService_Create(t *testing.T) {
	t.Run("date defaults to today", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_diary.NewMockRepository(ctrl)
		repo.EXPECT().Create(gomock.Any(), &diary.Diary{
			UserID:    1,
			Title:     "A day",
			Content:   "Walked the dog",
			DiaryDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			CreatedAt: fixedNow,
			UpdatedAt: fixedNow,
		}).DoAndReturn(func(_ context.Context, d *diary.Diary) error {
			d.ID = 7
			return nil
		})

		got, err := newService(t, repo).Create(context.Background(), 1, diary.Input{Title: "A day", Content: "Walked the dog"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
	})

	t.Run("explicit date and image", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_diary.NewMockRepository(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		got, err := newService(t, repo).Create(context.Background(), 1, diary.Input{
			Title:     "Trip",
			Content:   "Beach",
			DiaryDate: ptr(time.Date(2023, 8, 1, 15, 0, 0, 0, time.UTC)),
			ImagePath: ptr("beach.jpg"),
		})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC), got.DiaryDate)
		assert.Equal(t, "beach.jpg", *got.ImagePath)
	})

	t.Run("invalid input never reaches the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_diary.NewMockRepository(ctrl)

		_, err := newService(t, repo).Create(context.Background(), 1, diary.Input{Title: "", Content: "x"})
		var validationErr *diary.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"title is required"}, validationErr.Messages)
	})
}

func TestService_Update(t *testing.T) {
	existing := func() *diary.Diary {
		return &diary.Diary{
			ID:        3,
			UserID:    1,
			Title:     "Old",
			Content:   "Old body",
			DiaryDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			ImagePath: ptr("old.png"),
			CreatedAt: fixedNow.Add(-24 * time.Hour),
			UpdatedAt: fixedNow.Add(-24 * time.Hour),
		}
	}

	t.Run("keeps date and image when not given", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_diary.NewMockRepository(ctrl)
		repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(3), int64(1)).Return(existing(), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		got, err := newService(t, repo).Update(context.Background(), 1, 3, diary.Input{Title: "New", Content: "New body"})
		require.NoError(t, err)
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, "New body", got.Content)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got.DiaryDate)
		assert.Equal(t, "old.png", *got.ImagePath)
		assert.Equal(t, fixedNow, got.UpdatedAt)
		assert.Equal(t, fixedNow.Add(-24*time.Hour), got.CreatedAt)
	})

	t.Run("replaces date and image when given", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_diary.NewMockRepository(ctrl)
		repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(3), int64(1)).Return(existing(), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		got, err := newService(t, repo).Update(context.Background(), 1, 3, diary.Input{
			Title:     "New",
			Content:   "New body",
			DiaryDate: ptr(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
			ImagePath: ptr("new.png"),
		})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got.DiaryDate)
		assert.Equal(t, "new.png", *got.ImagePath)
	})

	t.Run("previous image", func(t *testing.T) {
		tests := []struct {
			name      string
			imagePath string
			setup     func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover)
		}{
			{
				name:      "unreferenced previous image is removed",
				imagePath: "new.png",
				setup: func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover) {
					repo.EXPECT().CountByImagePath(gomock.Any(), "old.png").Return(int64(0), nil)
					images.EXPECT().Delete("old.png").Return(true)
				},
			},
			{
				name:      "previous image still used elsewhere is kept",
				imagePath: "new.png",
				setup: func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover) {
					repo.EXPECT().CountByImagePath(gomock.Any(), "old.png").Return(int64(2), nil)
				},
			},
			{
				name:      "same image is untouched",
				imagePath: "old.png",
				setup:     func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover) {},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				repo := mock_diary.NewMockRepository(ctrl)
				images := mock_diary.NewMockImageRemover(ctrl)
				repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(3), int64(1)).Return(existing(), nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
				tt.setup(repo, images)

				got, err := newService(t, repo, diary.WithImageRemover(images)).Update(context.Background(), 1, 3, diary.Input{
					Title:     "New",
					Content:   "New body",
					ImagePath: ptr(tt.imagePath),
				})
				require.NoError(t, err)
				assert.Equal(t, tt.imagePath, *got.ImagePath)
			})
		}
	})

	t.Run("not owned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_diary.NewMockRepository(ctrl)
		repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(3), int64(2)).Return(nil, nil)

		_, err := newService(t, repo).Update(context.Background(), 2, 3, diary.Input{Title: "New", Content: "New body"})
		assert.ErrorIs(t, err, diary.ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover)
		wantErr error
	}{
		{
			name: "removes the image",
			setup: func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover) {
				repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(3), int64(1)).
					Return(&diary.Diary{ID: 3, UserID: 1, ImagePath: ptr("photo.png")}, nil)
				repo.EXPECT().Delete(gomock.Any(), int64(3), int64(1)).Return(true, nil)
				repo.EXPECT().CountByImagePath(gomock.Any(), "photo.png").Return(int64(0), nil)
				images.EXPECT().Delete("photo.png").Return(true)
			},
		},
		{
			name: "image removal failure is not an error",
			setup: func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover) {
				repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(3), int64(1)).
					Return(&diary.Diary{ID: 3, UserID: 1, ImagePath: ptr("photo.png")}, nil)
				repo.EXPECT().Delete(gomock.Any(), int64(3), int64(1)).Return(true, nil)
				repo.EXPECT().CountByImagePath(gomock.Any(), "photo.png").Return(int64(0), nil)
				images.EXPECT().Delete("photo.png").Return(false)
			},
		},
		{
			name: "image shared with another diary is kept",
			setup: func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover) {
				repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(3), int64(1)).
					Return(&diary.Diary{ID: 3, UserID: 1, ImagePath: ptr("photo.png")}, nil)
				repo.EXPECT().Delete(gomock.Any(), int64(3), int64(1)).Return(true, nil)
				repo.EXPECT().CountByImagePath(gomock.Any(), "photo.png").Return(int64(1), nil)
			},
		},
		{
			name: "image is kept when references cannot be counted",
			setup: func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover) {
				repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(3), int64(1)).
					Return(&diary.Diary{ID: 3, UserID: 1, ImagePath: ptr("photo.png")}, nil)
				repo.EXPECT().Delete(gomock.Any(), int64(3), int64(1)).Return(true, nil)
				repo.EXPECT().CountByImagePath(gomock.Any(), "photo.png").Return(int64(0), errors.New("connection reset"))
			},
		},
		{
			name: "diary without image",
			setup: func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover) {
				repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(3), int64(1)).
					Return(&diary.Diary{ID: 3, UserID: 1}, nil)
				repo.EXPECT().Delete(gomock.Any(), int64(3), int64(1)).Return(true, nil)
			},
		},
		{
			name: "not owned",
			setup: func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover) {
				repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(3), int64(1)).Return(nil, nil)
			},
			wantErr: diary.ErrNotFound,
		},
		{
			name: "deleted concurrently",
			setup: func(repo *mock_diary.MockRepository, images *mock_diary.MockImageRemover) {
				repo.EXPECT().FindByIDAndUser(gomock.Any(), int64(3), int64(1)).
					Return(&diary.Diary{ID: 3, UserID: 1, ImagePath: ptr("photo.png")}, nil)
				repo.EXPECT().Delete(gomock.Any(), int64(3), int64(1)).Return(false, nil)
			},
			wantErr: diary.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_diary.NewMockRepository(ctrl)
			images := mock_diary.NewMockImageRemover(ctrl)
			tt.setup(repo, images)

			err := newService(t, repo, diary.WithImageRemover(images)).Delete(context.Background(), 1, 3)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_CountAndListAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_diary.NewMockRepository(ctrl)
	repo.EXPECT().CountByUser(gomock.Any(), int64(1)).Return(int64(2), nil)
	repo.EXPECT().FindAllByUser(gomock.Any(), int64(1)).Return([]diary.Diary{{ID: 1}, {ID: 2}}, nil)

	svc := newService(t, repo)
	count, err := svc.Count(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	all, err := svc.ListAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
