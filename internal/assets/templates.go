// Package assets holds the templates used to render exported diaries.
package assets

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/rs/zerolog/log"
)

const exportTemplateName = "diary-export.md.go.tmpl"

//go:embed templates/diary-export.md.go.tmpl
var fallbackExportTemplate string

// ParseExportTemplate parses the Markdown export template at templatePath.
// The embedded template is used when templatePath is empty, missing or
// cannot be parsed.
func ParseExportTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, exportTemplateName, fallbackExportTemplate)
}

// WriteExportMarkdown renders data with the export template into output.
func WriteExportMarkdown(output io.Writer, templatePath string, data any) error {
	tmpl, err := ParseExportTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseExportTemplate(%s) > %w", templatePath, err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		// value dereferences optional strings so that nil and "" both render as empty.
		"value": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap()).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			log.Warn().Err(err).Str("templatePath", templatePath).Msg("failed to parse a template, using the embedded one")
		} else {
			log.Debug().Str("templatePath", templatePath).Msg("template not found, using the embedded one")
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap()).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
