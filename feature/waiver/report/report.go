package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver/match"
)

// Generate renders the plain-text waiver status report. Sections appear only
// when non-empty; when there is nothing to report the body is a single
// affirmative line. The timestamp is passed in so callers and tests control
// the clock.
func Generate(missing []string, duplicates []match.Conflict, orphans []string, now time.Time) string {
	var b strings.Builder

	b.WriteString("FERPA Waiver Status Report\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	if len(missing) > 0 {
		fmt.Fprintf(&b, "MISSING WAIVERS (%d students)\n", len(missing))
		b.WriteString(strings.Repeat("-", 30) + "\n")
		for _, id := range missing {
			fmt.Fprintf(&b, "  - EYF ID: %s\n", id)
		}
		b.WriteString("\n")
	}

	if len(duplicates) > 0 {
		fmt.Fprintf(&b, "DUPLICATE FILES (%d students)\n", len(duplicates))
		b.WriteString(strings.Repeat("-", 30) + "\n")
		for _, dup := range duplicates {
			fmt.Fprintf(&b, "  - EYF ID %s:\n", dup.ID)
			for _, name := range dup.Names {
				fmt.Fprintf(&b, "      %s\n", name)
			}
		}
		b.WriteString("\n")
	}

	if len(orphans) > 0 {
		fmt.Fprintf(&b, "UNMATCHED FILES (%d files)\n", len(orphans))
		b.WriteString(strings.Repeat("-", 30) + "\n")
		for _, name := range orphans {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
		b.WriteString("\n")
	}

	if len(missing) == 0 && len(duplicates) == 0 {
		b.WriteString("All students have exactly one waiver on file.\n")
	}

	return b.String()
}
