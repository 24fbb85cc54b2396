package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/diary/internal/diary"
	"github.com/at-ishikawa/diary/internal/statistics"
	"github.com/at-ishikawa/diary/internal/user"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <tempId>",
		Short: "Show diary statistics of a temporary user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			u, err := findUser(ctx, db, args[0])
			if err != nil {
				return err
			}
			report, err := statistics.NewEngine(diary.NewDBRepository(db)).ComputeStatistics(ctx, u.ID)
			if err != nil {
				return fmt.Errorf("ComputeStatistics() > %w", err)
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}
}

// findUser returns the user owning tempID. Unlike the HTTP API it never
// creates a user.
func findUser(ctx context.Context, db *sqlx.DB, tempID string) (*user.User, error) {
	u, err := user.NewService(user.NewDBRepository(db)).FindByTempID(ctx, tempID)
	if err != nil {
		return nil, fmt.Errorf("FindByTempID(%s) > %w", tempID, err)
	}
	if u == nil {
		return nil, fmt.Errorf("no user with temp ID %q", tempID)
	}
	return u, nil
}

func printReport(w io.Writer, report statistics.Report) error {
	bold := color.New(color.Bold)
	number := color.New(color.FgCyan)

	if _, err := bold.Fprintf(w, "Total diaries: "); err != nil {
		return err
	}
	if _, err := number.Fprintf(w, "%d\n", report.TotalDiaries); err != nil {
		return err
	}

	if _, err := bold.Fprintln(w, "\nMonthly"); err != nil {
		return err
	}
	if len(report.MonthlyStatistics) == 0 {
		if _, err := fmt.Fprintln(w, "  (none)"); err != nil {
			return err
		}
	}
	for _, m := range report.MonthlyStatistics {
		if _, err := fmt.Fprintf(w, "  %04d-%02d  %s\n", m.Year, m.Month, number.Sprint(m.Count)); err != nil {
			return err
		}
	}

	if _, err := bold.Fprintln(w, "\nTop words"); err != nil {
		return err
	}
	if len(report.WordFrequencies) == 0 {
		if _, err := fmt.Fprintln(w, "  (none)"); err != nil {
			return err
		}
	}
	for i, wf := range report.WordFrequencies {
		if _, err := fmt.Fprintf(w, "  %2d. %s  %s\n", i+1, wf.Word, number.Sprint(wf.Frequency)); err != nil {
			return err
		}
	}
	return nil
}
