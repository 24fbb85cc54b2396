package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	Date      time.Time
	Title     string
	Content   string
	ImagePath *string
}

type testStatistics struct {
	TotalDiaries      int64
	MonthlyStatistics []struct {
		Year, Month int
		Count       int64
	}
	WordFrequencies []struct {
		Word      string
		Frequency int64
	}
}

type testDocument struct {
	TempID     string
	ExportedAt time.Time
	Statistics testStatistics
	Diaries    []testEntry
}

func TestParseExportTemplate(t *testing.T) {
	tests := []struct {
		name         string
		templatePath string

		wantTemplateName string
	}{
		{
			name: "uses filesystem template when available",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`Custom: {{ .TempID }}`), 0644))
				return templatePath
			}(t),
			wantTemplateName: "custom.md.go.tmpl",
		},
		{
			name:             "uses embedded template when file doesn't exist",
			templatePath:     "/non/existent/invalid.md.go.tmpl",
			wantTemplateName: exportTemplateName,
		},
		{
			name:             "uses embedded template when path is empty",
			wantTemplateName: exportTemplateName,
		},
		{
			name: "falls back when the filesystem template is broken",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "broken.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`{{ .TempID `), 0644))
				return templatePath
			}(t),
			wantTemplateName: exportTemplateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseExportTemplate(tt.templatePath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplateName, tmpl.Name())
		})
	}
}

func TestWriteExportMarkdown(t *testing.T) {
	image := "photo.png"
	empty := ""
	doc := testDocument{
		TempID:     "temp_0123456789abcdef",
		ExportedAt: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		Diaries: []testEntry{
			{Date: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), Title: "Walk", Content: "I walked", ImagePath: &empty},
			{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Title: "Bark", Content: "it barked", ImagePath: &image},
		},
	}
	doc.Statistics.TotalDiaries = 2

	var buf bytes.Buffer
	require.NoError(t, WriteExportMarkdown(&buf, "", doc))

	want := "# Diary of temp_0123456789abcdef\n\n" +
		"Exported at 2024-02-01T09:00:00Z. 2 diaries in total.\n\n" +
		"## 2024-01-14: Walk\n\nI walked\n\n" +
		"## 2024-01-15: Bark\n\nit barked\n\nImage: `photo.png`\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteExportMarkdown_CustomTemplate(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
	require.NoError(t, os.WriteFile(templatePath,
		[]byte(`{{ range .Diaries }}- {{ .Title }}{{ with value .ImagePath }} ({{ . }}){{ end }}
{{ end }}`), 0644))

	image := "a.png"
	var buf bytes.Buffer
	require.NoError(t, WriteExportMarkdown(&buf, templatePath, testDocument{
		Diaries: []testEntry{{Title: "one"}, {Title: "two", ImagePath: &image}},
	}))
	assert.Equal(t, "- one\n- two (a.png)\n", buf.String())
}

func TestFuncMap(t *testing.T) {
	funcs := funcMap()
	assert.Len(t, funcs, 1)
	assert.Contains(t, funcs, "value")
}
