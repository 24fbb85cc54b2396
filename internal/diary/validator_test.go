package diary

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputValidator_Check(t *testing.T) {
	v, err := newInputValidator()
	require.NoError(t, err)

	tests := []struct {
		name         string
		in           Input
		wantMessages []string
	}{
		{
			name: "valid input",
			in:   Input{Title: "A day", Content: "Walked the dog"},
		},
		{
			name: "title of 255 multibyte characters",
			in:   Input{Title: strings.Repeat("가", 255), Content: "ok"},
		},
		{
			name:         "missing title and content",
			in:           Input{},
			wantMessages: []string{"title is required", "content is required"},
		},
		{
			name:         "whitespace only content",
			in:           Input{Title: "A day", Content: " \n\t"},
			wantMessages: []string{"content is required"},
		},
		{
			name:         "title too long",
			in:           Input{Title: strings.Repeat("a", 256), Content: "ok"},
			wantMessages: []string{"title must be a maximum of 255 characters in length"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.check(tt.in)
			if tt.wantMessages == nil {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantMessages, validationErr.Messages)
		})
	}
}
