// Package export writes all diaries of a user to YAML, Markdown or PDF.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/diary/internal/assets"
	"github.com/at-ishikawa/diary/internal/diary"
	"github.com/at-ishikawa/diary/internal/pdf"
	"github.com/at-ishikawa/diary/internal/statistics"
)

// Format is an output format.
type Format string

const (
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatMarkdown, FormatPDF:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// MarshalYAML implements the yaml.Marshaler interface
func (d Date) MarshalYAML() (interface{}, error) {
	return d.Format(diary.DateLayout), nil
}

// Entry is one exported diary.
type Entry struct {
	diary.Diary `yaml:",inline"`
	Date        Date `yaml:"date"`
}

// Document is everything exported for one user.
type Document struct {
	TempID     string            `yaml:"temp_id"`
	ExportedAt time.Time         `yaml:"exported_at"`
	Statistics statistics.Report `yaml:"statistics"`
	Diaries    []Entry           `yaml:"diaries"`
}

// NewDocument builds a Document from diaries in the given order.
func NewDocument(tempID string, exportedAt time.Time, report statistics.Report, diaries []diary.Diary) Document {
	entries := make([]Entry, 0, len(diaries))
	for _, d := range diaries {
		entries = append(entries, Entry{Diary: d, Date: Date{d.DiaryDate}})
	}
	return Document{
		TempID:     tempID,
		ExportedAt: exportedAt.UTC(),
		Statistics: report,
		Diaries:    entries,
	}
}

// WriteYAML encodes doc to w.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("enc.Encode() > %w", err)
	}
	return enc.Close()
}

// RenderMarkdown renders doc with the Markdown template at templatePath, or
// the embedded template when templatePath is empty.
func RenderMarkdown(doc Document, templatePath string) ([]byte, error) {
	var b bytes.Buffer
	if err := assets.WriteExportMarkdown(&b, templatePath, doc); err != nil {
		return nil, fmt.Errorf("assets.WriteExportMarkdown() > %w", err)
	}
	return b.Bytes(), nil
}

// WritePDF renders doc through Markdown into a PDF file at pdfPath.
func WritePDF(pdfPath string, doc Document, templatePath string) error {
	markdown, err := RenderMarkdown(doc, templatePath)
	if err != nil {
		return err
	}
	if err := pdf.ConvertMarkdown(markdown, pdfPath); err != nil {
		return fmt.Errorf("pdf.ConvertMarkdown(%s) > %w", pdfPath, err)
	}
	return nil
}

// WriteFile writes doc to path in the given format, creating parent
// directories. templatePath only applies to Markdown and PDF. It returns the
// absolute path of the written file.
func WriteFile(path string, format Format, doc Document, templatePath string) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}

	switch format {
	case FormatPDF:
		if err := WritePDF(path, doc, templatePath); err != nil {
			return "", err
		}
	case FormatMarkdown:
		markdown, err := RenderMarkdown(doc, templatePath)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(path, markdown, 0o644); err != nil {
			return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
		}
	case FormatYAML:
		f, err := os.Create(path)
		if err != nil {
			return "", fmt.Errorf("os.Create(%s) > %w", path, err)
		}
		if err := WriteYAML(f, doc); err != nil {
			_ = f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("f.Close(%s) > %w", path, err)
		}
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return absPath, nil
}
