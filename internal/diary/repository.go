package diary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/diary/internal/config"
	"github.com/at-ishikawa/diary/internal/database"
	"github.com/at-ishikawa/diary/internal/statistics"
)

const diaryColumns = "id, user_id, title, content, diary_date, image_path, created_at, updated_at"

// Repository defines operations for managing diaries. Every method is scoped
// to a single user.
type Repository interface {
	statistics.Source

	FindPage(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]Diary, error)
	Count(ctx context.Context, userID int64, filter Filter) (int64, error)
	FindByIDAndUser(ctx context.Context, id, userID int64) (*Diary, error)
	FindAllByUser(ctx context.Context, userID int64) ([]Diary, error)
	Create(ctx context.Context, diary *Diary) error
	Update(ctx context.Context, diary *Diary) error
	Delete(ctx context.Context, id, userID int64) (bool, error)
	// CountByImagePath counts the diaries of every user that reference imagePath.
	CountByImagePath(ctx context.Context, imagePath string) (int64, error)
}

// queryer is the part of *sqlx.DB and *sqlx.Tx the repository runs on.
type queryer interface {
	DriverName() string
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// DBRepository implements Repository using sqlx. It works with both the
// MySQL and the SQLite driver.
type DBRepository struct {
	conn *sqlx.DB
	db   queryer
}

var (
	_ Repository                = (*DBRepository)(nil)
	_ statistics.SnapshotSource = (*DBRepository)(nil)
)

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{conn: db, db: db}
}

// Snapshot runs fn with a Source whose reads share one transaction, so the
// queries of a statistics report see the same rows.
func (r *DBRepository) Snapshot(ctx context.Context, fn func(ctx context.Context, src statistics.Source) error) error {
	if r.conn == nil {
		return fn(ctx, r)
	}
	return database.RunInTx(ctx, r.conn, func(ctx context.Context, tx *sqlx.Tx) error {
		return fn(ctx, &DBRepository{db: tx})
	})
}

// FindPage returns the diaries matching filter, newest diary date first.
func (r *DBRepository) FindPage(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]Diary, error) {
	where, args := whereClause(userID, filter)
	args = append(args, limit, offset)

	diaries := []Diary{}
	if err := r.db.SelectContext(ctx, &diaries,
		"SELECT "+diaryColumns+" FROM diaries WHERE "+where+" ORDER BY diary_date DESC, id DESC LIMIT ? OFFSET ?",
		args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(diaries page) > %w", err)
	}
	return diaries, nil
}

// Count returns the number of diaries matching filter.
func (r *DBRepository) Count(ctx context.Context, userID int64, filter Filter) (int64, error) {
	where, args := whereClause(userID, filter)

	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM diaries WHERE "+where, args...); err != nil {
		return 0, fmt.Errorf("db.GetContext(count diaries) > %w", err)
	}
	return count, nil
}

// FindByIDAndUser returns the diary, or nil if it does not exist or is owned by someone else.
func (r *DBRepository) FindByIDAndUser(ctx context.Context, id, userID int64) (*Diary, error) {
	var d Diary
	err := r.db.GetContext(ctx, &d,
		"SELECT "+diaryColumns+" FROM diaries WHERE id = ? AND user_id = ?", id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(diary) > %w", err)
	}
	return &d, nil
}

// FindAllByUser returns every diary of the user, oldest diary date first.
func (r *DBRepository) FindAllByUser(ctx context.Context, userID int64) ([]Diary, error) {
	diaries := []Diary{}
	if err := r.db.SelectContext(ctx, &diaries,
		"SELECT "+diaryColumns+" FROM diaries WHERE user_id = ? ORDER BY diary_date, id", userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(diaries by user) > %w", err)
	}
	return diaries, nil
}

// Create inserts a new diary and sets its ID.
func (r *DBRepository) Create(ctx context.Context, diary *Diary) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO diaries (user_id, title, content, diary_date, image_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		diary.UserID, diary.Title, diary.Content, diary.DiaryDate.Format(DateLayout),
		diary.ImagePath, diary.CreatedAt, diary.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert diary) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	diary.ID = id
	return nil
}

// Update overwrites the editable fields of an existing diary.
func (r *DBRepository) Update(ctx context.Context, diary *Diary) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE diaries SET title = ?, content = ?, diary_date = ?, image_path = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		diary.Title, diary.Content, diary.DiaryDate.Format(DateLayout), diary.ImagePath, diary.UpdatedAt,
		diary.ID, diary.UserID); err != nil {
		return fmt.Errorf("db.ExecContext(update diary) > %w", err)
	}
	return nil
}

// Delete removes the diary and reports whether it existed.
func (r *DBRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM diaries WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext(delete diary) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected > 0, nil
}

// CountByImagePath counts the diaries of every user that reference imagePath.
func (r *DBRepository) CountByImagePath(ctx context.Context, imagePath string) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM diaries WHERE image_path = ?", imagePath); err != nil {
		return 0, fmt.Errorf("db.GetContext(count diaries by image) > %w", err)
	}
	return count, nil
}

// FindAllContents returns the content of every diary of the user. A NULL
// content is returned as an empty string.
func (r *DBRepository) FindAllContents(ctx context.Context, userID int64) ([]string, error) {
	var rows []sql.NullString
	if err := r.db.SelectContext(ctx, &rows, "SELECT content FROM diaries WHERE user_id = ?", userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(diary contents) > %w", err)
	}
	contents := make([]string, 0, len(rows))
	for _, row := range rows {
		contents = append(contents, row.String)
	}
	return contents, nil
}

// CountByUser returns the number of diaries of the user.
func (r *DBRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return r.Count(ctx, userID, Filter{})
}

// MonthlyCounts returns the number of diaries per month of the diary date,
// most recent month first.
func (r *DBRepository) MonthlyCounts(ctx context.Context, userID int64) ([]statistics.MonthlyCount, error) {
	counts := []statistics.MonthlyCount{}
	if err := r.db.SelectContext(ctx, &counts, monthlyCountsQuery(r.db.DriverName()), userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(monthly counts) > %w", err)
	}
	return counts, nil
}

func monthlyCountsQuery(driver string) string {
	year, month := "YEAR(diary_date)", "MONTH(diary_date)"
	if driver == config.DriverSQLite {
		year, month = "CAST(strftime('%Y', diary_date) AS INTEGER)", "CAST(strftime('%m', diary_date) AS INTEGER)"
	}
	return "SELECT " + year + " AS year, " + month + " AS month, COUNT(*) AS count FROM diaries WHERE user_id = ? " +
		"GROUP BY " + year + ", " + month + " ORDER BY year DESC, month DESC"
}

func whereClause(userID int64, filter Filter) (string, []any) {
	conditions := []string{"user_id = ?"}
	args := []any{userID}

	switch {
	case filter.Title != "":
		conditions = append(conditions, "LOWER(title) LIKE ? ESCAPE '!'")
		args = append(args, containsPattern(filter.Title))
	case filter.Content != "":
		conditions = append(conditions, "LOWER(content) LIKE ? ESCAPE '!'")
		args = append(args, containsPattern(filter.Content))
	case filter.From != nil && filter.To != nil:
		conditions = append(conditions, "diary_date BETWEEN ? AND ?")
		args = append(args, filter.From.Format(DateLayout), filter.To.Format(DateLayout))
	}
	return strings.Join(conditions, " AND "), args
}

// containsPattern builds a case-insensitive substring LIKE pattern with '!' as
// the escape character.
func containsPattern(keyword string) string {
	escaped := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(strings.ToLower(keyword))
	return "%" + escaped + "%"
}

// timestamp is the precision stored for created_at and updated_at.
func timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
