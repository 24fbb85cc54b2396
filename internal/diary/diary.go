// Package diary stores and searches the diary entries of a user.
package diary

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a diary date.
const DateLayout = "2006-01-02"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ErrNotFound is returned when a diary does not exist or belongs to another user.
var ErrNotFound = errors.New("diary not found")

// Diary is a single dated entry owned by a user.
type Diary struct {
	ID        int64     `db:"id" yaml:"id"`
	UserID    int64     `db:"user_id" yaml:"-"`
	Title     string    `db:"title" yaml:"title"`
	Content   string    `db:"content" yaml:"content"`
	DiaryDate time.Time `db:"diary_date" yaml:"-"`
	ImagePath *string   `db:"image_path" yaml:"image_path,omitempty"`
	CreatedAt time.Time `db:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `db:"updated_at" yaml:"updated_at"`
}

// Input holds the user-editable fields of a diary.
type Input struct {
	Title   string `json:"title" validate:"notblank,max=255"`
	Content string `json:"content" validate:"notblank"`
	// DiaryDate defaults to today on create and is left unchanged on update when nil.
	DiaryDate *time.Time `json:"diaryDate"`
	// ImagePath is the stored file name of an uploaded image.
	ImagePath *string `json:"imagePath"`
}

// ValidationError lists every problem found in an Input.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid diary: " + strings.Join(e.Messages, "; ")
}

// PageRequest selects a page of results. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
}

// Normalize applies defaults and clamps Size to 1..MaxPageSize.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	switch {
	case p.Size <= 0:
		p.Size = DefaultPageSize
	case p.Size > MaxPageSize:
		p.Size = MaxPageSize
	}
	return p
}

// Offset is the number of rows skipped before the page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one page of diaries plus the size of the whole result.
type Page struct {
	Diaries       []Diary
	Number        int
	Size          int
	TotalElements int64
}

// TotalPages returns the number of pages of the whole result.
func (p Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// Criteria are the optional search parameters. Only the first usable one is
// applied, in the order title, content, date range.
type Criteria struct {
	Title     string
	Content   string
	StartDate *time.Time
	EndDate   *time.Time
}

// Filter narrows the diaries of a user. The zero value matches all of them.
type Filter struct {
	Title   string
	Content string
	From    *time.Time
	To      *time.Time
}

// Filter resolves the criteria into the single filter that applies.
func (c Criteria) Filter() Filter {
	switch {
	case strings.TrimSpace(c.Title) != "":
		return Filter{Title: c.Title}
	case strings.TrimSpace(c.Content) != "":
		return Filter{Content: c.Content}
	case c.StartDate != nil && c.EndDate != nil:
		return Filter{From: c.StartDate, To: c.EndDate}
	default:
		return Filter{}
	}
}

// DateOnly drops the clock part of t, keeping its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
