package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/core/config"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/core/logger"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/core/storage"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver"
)

var (
	combineYes            bool
	combineFromStorage    bool
	combineUpload         bool
	combineReport         bool
	combineRequirePattern bool
)

// combineCmd matches waiver PDFs to roster identifiers and assembles the
// matched files into one document.
var combineCmd = &cobra.Command{
	Use:   "combine <pdf_folder> <roster> <output>",
	Short: "Combine matched waiver PDFs into a single document",
	Long: `Combine matches every roster identifier against the waiver PDFs in a
folder (by the "{id}_" filename prefix), reports missing and duplicate
records, and merges the uniquely matched files into one PDF.

The roster may be an Excel workbook (.xlsx), a CSV, or a plain-text file
with one identifier per line.

Examples:
  # Match a local folder against a roster and write the merged PDF
  combine ./waivers roster.xlsx merged.pdf

  # Non-interactive (for scripting)
  combine ./waivers ids.txt merged.pdf --yes

  # Pull the waiver pool from object storage instead of a local folder
  combine uploads roster.xlsx merged.pdf --from-storage`,
	Args: cobra.ExactArgs(3),
	RunE: runCombine,
}

func init() {
	combineCmd.Flags().BoolVar(&combineYes, "yes", false, "Skip the confirmation prompt (non-interactive)")
	combineCmd.Flags().BoolVar(&combineFromStorage, "from-storage", false, "Treat <pdf_folder> as an object-storage prefix instead of a local folder")
	combineCmd.Flags().BoolVar(&combineUpload, "upload", false, "Also upload the merged document to object storage")
	combineCmd.Flags().BoolVar(&combineReport, "report", false, "Print the waiver status report after merging")
	combineCmd.Flags().BoolVar(&combineRequirePattern, "require-pattern", true, "Abort when any file in the folder violates the waiver filename convention")

	RootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, args []string) error {
	folder, rosterPath, outputPath := args[0], args[1], args[2]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	// The batch surface enforces the filename convention by default; the
	// interactive HTTP surface stays tolerant unless configured otherwise.
	cfg.Waiver.RequireFilenamePattern = combineRequirePattern

	// Refuse to clobber output unless the policy allows it.
	if !cfg.Waiver.OverwriteExisting {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("output file %s already exists (set waiver.overwrite_existing to replace it)", outputPath)
		}
	}

	// Load the candidate pool.
	var (
		pool   map[string][]byte
		client storage.Client
	)
	if combineFromStorage || combineUpload {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}
	if combineFromStorage {
		pool, err = waiver.LoadPool(cmd.Context(), client, cfg.Storage.Bucket, folder)
	} else {
		// Validate every file in the folder, not just the PDFs that make
		// it into the pool; a stray non-PDF also aborts the batch.
		if combineRequirePattern {
			if err := waiver.ValidateFolder(folder); err != nil {
				return err
			}
		}
		pool, err = waiver.LoadFolder(folder)
	}
	if err != nil {
		return err
	}

	rosterFile, err := os.Open(rosterPath)
	if err != nil {
		return fmt.Errorf("failed to open roster %s: %w", rosterPath, err)
	}
	defer rosterFile.Close()

	svc := waiver.NewService(l, cfg.Waiver)
	plan, err := svc.PlanMerge(filepath.Base(rosterPath), rosterFile, pool)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	// Per-identifier problems, in roster order within each class.
	for _, id := range plan.Missing {
		fmt.Fprintf(out, "ERROR: No waiver found for EYF ID %s\n", id)
	}
	for _, dup := range plan.Duplicates {
		fmt.Fprintf(out, "ERROR: Multiple waivers found for EYF ID %s:\n", dup.ID)
		for _, name := range dup.Names {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}

	fmt.Fprintf(out, "Successfully matched waivers for %d out of %d EYF IDs. Proceed with PDF generation?\n",
		plan.Summary.Matched, plan.Summary.Identifiers)

	if !confirmCombine(cmd) {
		fmt.Fprintln(out, "Operation cancelled.")
		return nil
	}

	res := svc.ExecuteMerge(plan)
	for _, msg := range res.Errors {
		fmt.Fprintf(out, "WARNING: Skipped %s\n", msg)
	}
	if res.Output == nil {
		return fmt.Errorf("no valid waiver PDFs could be merged")
	}

	if err := os.WriteFile(outputPath, res.Output, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	l.Info("Merged waivers written",
		zap.String("output", outputPath),
		zap.Int("merged", res.Merged),
		zap.Int("pages", res.Pages),
		zap.Int("skipped", len(res.Errors)),
	)

	if combineUpload {
		objectName := "merged/" + filepath.Base(outputPath)
		if err := waiver.UploadMerged(context.Background(), client, cfg.Storage.Bucket, objectName, res.Output); err != nil {
			return err
		}
		l.Info("Merged waivers uploaded", zap.String("object", objectName))
	}

	if combineReport {
		fmt.Fprintln(out)
		fmt.Fprint(out, svc.Report(plan))
	}

	return nil
}

// confirmCombine prompts for a y/n answer, or short-circuits on --yes.
func confirmCombine(cmd *cobra.Command) bool {
	if combineYes {
		return true
	}

	fmt.Fprint(cmd.OutOrStdout(), "Enter 'y' to continue or 'n' to cancel: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(strings.ToLower(response)) == "y"
}
