// Package statistics computes per-user diary statistics: a monthly entry
// histogram, the most frequent words, and the total entry count.
package statistics

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

// DefaultTopWords is the number of words kept in a report.
const DefaultTopWords = 20

// MonthlyCount is the number of diaries written in one calendar month.
type MonthlyCount struct {
	Year  int   `json:"year" db:"year" yaml:"year"`
	Month int   `json:"month" db:"month" yaml:"month"`
	Count int64 `json:"count" db:"count" yaml:"count"`
}

// WordFrequency is how often a word appears across a user's diaries.
type WordFrequency struct {
	Word      string `json:"word" yaml:"word"`
	Frequency int64  `json:"frequency" yaml:"frequency"`
}

// Report is computed on every request and never stored.
type Report struct {
	MonthlyStatistics []MonthlyCount  `json:"monthlyStatistics" yaml:"monthly_statistics"`
	WordFrequencies   []WordFrequency `json:"wordFrequencies" yaml:"word_frequencies"`
	TotalDiaries      int64           `json:"totalDiaries" yaml:"total_diaries"`
}

// Source provides the already fetched diary data of a single user.
type Source interface {
	// FindAllContents returns the content of every diary of the user, in no particular order.
	FindAllContents(ctx context.Context, userID int64) ([]string, error)
	// CountByUser returns the number of diaries of the user.
	CountByUser(ctx context.Context, userID int64) (int64, error)
	// MonthlyCounts returns diary counts grouped by year and month of the diary date.
	MonthlyCounts(ctx context.Context, userID int64) ([]MonthlyCount, error)
}

// SnapshotSource is a Source that can serve the reads of one report from a
// single consistent view of the data.
type SnapshotSource interface {
	Source
	Snapshot(ctx context.Context, fn func(ctx context.Context, src Source) error) error
}

// Engine computes a Report from a Source. It holds no per-user state and is
// safe for concurrent use.
type Engine struct {
	source   Source
	filter   WordFilter
	topWords int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWordFilter replaces the default tokenizer policy.
func WithWordFilter(filter WordFilter) Option {
	return func(e *Engine) {
		e.filter = filter
	}
}

// WithTopWords changes how many words a report keeps.
func WithTopWords(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topWords = n
		}
	}
}

// NewEngine creates an Engine reading from source.
func NewEngine(source Source, opts ...Option) *Engine {
	e := &Engine{
		source:   source,
		filter:   DefaultWordFilter(),
		topWords: DefaultTopWords,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeStatistics builds the report for userID. A failure of any source
// call fails the whole computation. When the source is a SnapshotSource, all
// reads happen inside one snapshot.
func (e *Engine) ComputeStatistics(ctx context.Context, userID int64) (Report, error) {
	snapshot, ok := e.source.(SnapshotSource)
	if !ok {
		return e.compute(ctx, e.source, userID)
	}

	var report Report
	var computeErr error
	if err := snapshot.Snapshot(ctx, func(ctx context.Context, src Source) error {
		report, computeErr = e.compute(ctx, src, userID)
		return computeErr
	}); err != nil {
		if computeErr != nil {
			return Report{}, computeErr
		}
		return Report{}, fmt.Errorf("source.Snapshot(%d) > %w", userID, err)
	}
	return report, nil
}

func (e *Engine) compute(ctx context.Context, source Source, userID int64) (Report, error) {
	groups, err := source.MonthlyCounts(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("source.MonthlyCounts(%d) > %w", userID, err)
	}

	contents, err := source.FindAllContents(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("source.FindAllContents(%d) > %w", userID, err)
	}

	total, err := source.CountByUser(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("source.CountByUser(%d) > %w", userID, err)
	}

	report := Report{
		MonthlyStatistics: SortMonthly(groups),
		WordFrequencies:   TopWords(CountWords(contents, e.filter), e.topWords),
		TotalDiaries:      total,
	}
	log.Debug().
		Int64("user_id", userID).
		Int("months", len(report.MonthlyStatistics)).
		Int("words", len(report.WordFrequencies)).
		Int64("total", total).
		Msg("computed statistics")
	return report, nil
}

// SortMonthly returns the non-empty months ordered from the most recent.
func SortMonthly(groups []MonthlyCount) []MonthlyCount {
	monthly := make([]MonthlyCount, 0, len(groups))
	for _, g := range groups {
		if g.Count <= 0 {
			continue
		}
		monthly = append(monthly, g)
	}

	sort.Slice(monthly, func(i, j int) bool {
		if monthly[i].Year != monthly[j].Year {
			return monthly[i].Year > monthly[j].Year
		}
		return monthly[i].Month > monthly[j].Month
	})
	return monthly
}

// TopWords returns at most n words by descending frequency. Words with the
// same frequency are ordered lexicographically.
func TopWords(counts map[string]int64, n int) []WordFrequency {
	words := make([]WordFrequency, 0, len(counts))
	for word, freq := range counts {
		if freq <= 0 {
			continue
		}
		words = append(words, WordFrequency{Word: word, Frequency: freq})
	}

	sort.Slice(words, func(i, j int) bool {
		if words[i].Frequency != words[j].Frequency {
			return words[i].Frequency > words[j].Frequency
		}
		return words[i].Word < words[j].Word
	})

	if n >= 0 && len(words) > n {
		words = words[:n]
	}
	return words
}
