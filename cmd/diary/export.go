package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/diary/internal/diary"
	"github.com/at-ishikawa/diary/internal/export"
	"github.com/at-ishikawa/diary/internal/statistics"
)

func newExportCommand() *cobra.Command {
	var (
		format       string
		output       string
		templatePath string
	)

	cmd := &cobra.Command{
		Use:   "export <tempId>",
		Short: "Export all diaries and statistics of a temporary user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			tempID := args[0]
			if output == "" {
				output = defaultOutputPath(tempID, f)
			}

			ctx := cmd.Context()
			_, db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			u, err := findUser(ctx, db, tempID)
			if err != nil {
				return err
			}

			repo := diary.NewDBRepository(db)
			diaries, err := diary.NewService(repo)
			if err != nil {
				return fmt.Errorf("diary.NewService() > %w", err)
			}
			all, err := diaries.ListAll(ctx, u.ID)
			if err != nil {
				return fmt.Errorf("ListAll() > %w", err)
			}
			report, err := statistics.NewEngine(repo).ComputeStatistics(ctx, u.ID)
			if err != nil {
				return fmt.Errorf("ComputeStatistics() > %w", err)
			}

			doc := export.NewDocument(tempID, time.Now().UTC(), report, all)
			path, err := export.WriteFile(output, f, doc, templatePath)
			if err != nil {
				return fmt.Errorf("export.WriteFile(%s) > %w", output, err)
			}
			log.Debug().Int("diaries", len(all)).Str("format", string(f)).Msg("exported")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatYAML), "output format: yaml, markdown or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default diary-<tempId>.<ext>)")
	cmd.Flags().StringVar(&templatePath, "template", "", "Markdown template for markdown and pdf output")
	return cmd
}

func defaultOutputPath(tempID string, format export.Format) string {
	ext := "yaml"
	switch format {
	case export.FormatMarkdown:
		ext = "md"
	case export.FormatPDF:
		ext = "pdf"
	}
	return fmt.Sprintf("diary-%s.%s", tempID, ext)
}
