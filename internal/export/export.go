// Package export writes finished game notes to disk as markdown documents.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^\w\s-]`)

// SafeFileName strips filesystem-hostile characters from a team name and
// collapses whitespace to underscores.
func SafeFileName(teamName string) string {
	clean := unsafeChars.ReplaceAllString(teamName, "")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		clean = "Team"
	}
	return strings.Join(strings.Fields(clean), "_")
}

// WriteNotes renders the notes document and writes it to dir, returning
// the created file path.
func WriteNotes(dir, teamName, notes string, now time.Time) (string, error) {
	name := fmt.Sprintf("GameNotes_%s_%s.md", SafeFileName(teamName), now.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	var b strings.Builder
	fmt.Fprintf(&b, "# Game Notes: %s\n\n", teamName)
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format("January 2, 2006 at 3:04 PM"))
	b.WriteString(notes)
	if !strings.HasSuffix(notes, "\n") {
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write notes file: %w", err)
	}
	return path, nil
}
