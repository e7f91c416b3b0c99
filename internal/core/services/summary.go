package services

import (
	"fmt"
	"strings"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

// summaryDateFormat renders the modified date inside summaries (M/D/YYYY).
// The summary text is the canonical input to embedding generation, so this
// format is versioned: changing it changes every future embedding and forces
// a full re-index.
const summaryDateFormat = "1/2/2006"

// Summarize builds the canonical text summary for a file record.
//
// The result drives embedding generation and must stay deterministic for a
// given record state. Shape:
//
//	"{name} - {category|unknown} file[ located at {path}][ from {source}]
//	 [. Contents: {content}][ Last modified: {date}.]"
//
// Pure function, total.
func Summarize(record domain.FileRecord) string {
	category := string(record.Category)
	if category == "" {
		category = "unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s file", record.Name, category)

	if record.Path != "" {
		fmt.Fprintf(&b, " located at %s", record.Path)
	}
	if record.Source != "" {
		fmt.Fprintf(&b, " from %s", record.Source)
	}
	if record.Content != "" {
		fmt.Fprintf(&b, ". Contents: %s", record.Content)
	}
	if !record.LastModified.IsZero() {
		fmt.Fprintf(&b, " Last modified: %s.", record.LastModified.Format(summaryDateFormat))
	}

	return b.String()
}
