package waiver

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver/match"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver/merge"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver/report"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver/roster"
)

// Service runs the waiver pipeline. All state is request-scoped: PlanMerge
// returns a Plan, ExecuteMerge consumes it, and the caller decides what to
// keep and whether to gate execution on a confirmation.
type Service struct {
	logger *zap.Logger
	cfg    Config
}

// NewService creates a new waiver service.
func NewService(logger *zap.Logger, cfg Config) *Service {
	return &Service{logger: logger, cfg: cfg}
}

// PlanFile is the byte-free view of a matched file for summaries.
type PlanFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlanSummary carries aggregate counts for one plan.
type PlanSummary struct {
	Identifiers int `json:"identifiers"`
	Matched     int `json:"matched"`
	Missing     int `json:"missing"`
	Duplicates  int `json:"duplicates"`
	Orphans     int `json:"orphans"`
}

// Plan is the result of classifying a roster against a candidate pool.
// Matched holds the document bytes for ExecuteMerge; Files mirrors it
// without the bytes for JSON output.
type Plan struct {
	Matched     []match.File     `json:"-"`
	Files       []PlanFile       `json:"files"`
	Missing     []string         `json:"missing"`
	Duplicates  []match.Conflict `json:"duplicates"`
	Orphans     []string         `json:"orphans"`
	Summary     PlanSummary      `json:"summary"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// InvalidFilenamesError reports pool files violating the strict filename
// convention. It aborts planning before any matching happens.
type InvalidFilenamesError struct {
	Names []string
}

func (e *InvalidFilenamesError) Error() string {
	return fmt.Sprintf("%d files do not match the expected waiver filename format: %s",
		len(e.Names), strings.Join(e.Names, ", "))
}

// PlanMerge extracts identifiers from the roster, classifies the candidate
// pool against them, and returns the resulting plan. Extraction errors are
// fatal: no partial identifier list is usable.
//
// rosterName selects the parser by extension (.xlsx/.xls, .csv, or a plain
// text ID list).
func (s *Service) PlanMerge(rosterName string, rosterSrc io.Reader, candidates map[string][]byte) (*Plan, error) {
	if s.cfg.RequireFilenamePattern {
		names := make([]string, 0, len(candidates))
		for name := range candidates {
			names = append(names, name)
		}
		if _, invalid := match.ValidateFilenames(names, nil); len(invalid) > 0 {
			return nil, &InvalidFilenamesError{Names: invalid}
		}
	}

	ids, err := s.extract(rosterName, rosterSrc)
	if err != nil {
		return nil, err
	}

	res := match.Match(candidates, ids)

	plan := &Plan{
		Matched:     res.Matched,
		Missing:     res.Missing,
		Duplicates:  res.Duplicates,
		Orphans:     res.Orphans,
		GeneratedAt: time.Now(),
		Summary: PlanSummary{
			Identifiers: len(ids),
			Matched:     len(res.Matched),
			Missing:     len(res.Missing),
			Duplicates:  len(res.Duplicates),
			Orphans:     len(res.Orphans),
		},
	}
	for _, f := range res.Matched {
		plan.Files = append(plan.Files, PlanFile{ID: f.ID, Name: f.Name})
	}

	s.logger.Info("Merge plan built",
		zap.Int("identifiers", plan.Summary.Identifiers),
		zap.Int("matched", plan.Summary.Matched),
		zap.Int("missing", plan.Summary.Missing),
		zap.Int("duplicates", plan.Summary.Duplicates),
		zap.Int("orphans", plan.Summary.Orphans),
	)

	return plan, nil
}

// ExecuteMerge concatenates the plan's matched documents. Per-file failures
// are collected in the result, never raised; an absent output means nothing
// decoded.
func (s *Service) ExecuteMerge(plan *Plan) merge.Result {
	res := merge.Merge(plan.Matched)

	if len(res.Errors) > 0 {
		s.logger.Warn("Merge completed with skipped files",
			zap.Int("merged", res.Merged),
			zap.Int("skipped", len(res.Errors)),
		)
	} else if res.Output != nil {
		s.logger.Info("Merge completed",
			zap.Int("merged", res.Merged),
			zap.Int("pages", res.Pages),
		)
	}

	return res
}

// Report renders the plan's status report.
func (s *Service) Report(plan *Plan) string {
	return report.Generate(plan.Missing, plan.Duplicates, plan.Orphans, time.Now())
}

func (s *Service) extract(name string, r io.Reader) ([]string, error) {
	opts := roster.Options{
		ColumnName:         s.cfg.ColumnName,
		HeaderFallbackRows: s.cfg.HeaderFallbackRows,
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return roster.Extract(r, opts)
	case ".csv":
		return roster.ExtractCSV(r, opts)
	default:
		return roster.ExtractList(r)
	}
}
