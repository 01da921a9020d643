package fix

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of context lines shown around changes.
const contextLines = 3

// Diff is a unified diff between the original and rewritten text of a file.
type Diff struct {
	// Path is the file path used in the diff header.
	Path string

	// Text is the unified diff body, headers included.
	Text string

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// GenerateDiff creates a unified diff between original and modified.
// It returns nil when the texts are identical.
func GenerateDiff(path, original, modified string) (*Diff, error) {
	if original == modified {
		return nil, nil
	}

	name := strings.TrimPrefix(path, "/")
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(modified),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}
	if text == "" {
		return nil, nil
	}

	diff := &Diff{Path: path, Text: text}
	lines := strings.Split(text, "\n")
	for _, line := range lines[min(2, len(lines)):] {
		switch {
		case strings.HasPrefix(line, "+"):
			diff.Additions++
		case strings.HasPrefix(line, "-"):
			diff.Deletions++
		}
	}

	return diff, nil
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	name := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", name, name)
}

// String returns the unified diff without the git header.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Text
}

// FullString returns the diff including the git header.
func (d *Diff) FullString() string {
	if d == nil {
		return ""
	}
	return d.GitHeader() + "\n" + d.Text
}

// HasChanges reports whether the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && d.Text != ""
}
