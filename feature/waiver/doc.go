// Package waiver implements the FERPA waiver reconciliation pipeline:
// extract student IDs from a roster, classify uploaded waiver PDFs against
// them, merge the unambiguous matches into one document, and report what is
// missing or conflicting.
//
// # Pipeline
//
// The pipeline is two-phase and holds no ambient state:
//
//	plan, err := svc.PlanMerge(rosterName, rosterReader, pool)
//	// inspect plan, ask for confirmation if desired
//	result := svc.ExecuteMerge(plan)
//	report := svc.Report(plan)
//
// Classification is ternary and exhaustive: every roster identifier is
// matched (exactly one file has the "{id}_" name prefix), missing (none),
// or duplicate (several, excluded from the merge). Pool files claiming no
// identifier are surfaced as orphans.
//
// Roster extraction failures (missing column, duplicate IDs, unparseable
// cells) are fatal to a run. Merge failures are per-file: a corrupted PDF
// is skipped and reported, never aborting the batch.
//
// # Subpackages
//
//   - roster: identifier extraction from xlsx/csv/plain-text rosters
//   - match: prefix classification and the strict filename validation
//   - merge: pdfcpu-backed page concatenation
//   - report: the plain-text status report
//   - models: the GORM student record
package waiver
