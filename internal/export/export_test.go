package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"High Point Panthers", "High_Point_Panthers"},
		{"St. John's Red Storm", "St_Johns_Red_Storm"},
		{"Texas A&M Aggies", "Texas_AM_Aggies"},
		{"  padded  ", "padded"},
		{"!!!", "Team"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFileName(tt.in))
		})
	}
}

func TestWriteNotes(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, time.February, 10, 18, 30, 0, 0, time.UTC)

	path, err := WriteNotes(dir, "High Point Panthers", "The Panthers push the pace.", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "GameNotes_High_Point_Panthers_20260210_183000.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# Game Notes: High Point Panthers")
	assert.Contains(t, content, "The Panthers push the pace.")
}
