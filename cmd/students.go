package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/core/config"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/core/database"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/core/logger"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver/match"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver/merge"
)

var importWaiverDir string

// studentsCmd is the parent command for student database operations.
var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Manage the student database",
	Long: `Manage the student records backing the waiver service.

The import subcommand replaces the students table with a roster CSV and
matches each FERPA-flagged student to a waiver file. The export subcommand
merges the waivers on record into a single PDF, ordered by student name.`,
}

var studentsImportCmd = &cobra.Command{
	Use:   "import <roster.csv>",
	Short: "Import a student roster CSV into the database",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudentsImport,
}

var studentsExportCmd = &cobra.Command{
	Use:   "export <output.pdf>",
	Short: "Merge the waivers on record into a single PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudentsExport,
}

func init() {
	studentsImportCmd.Flags().StringVar(&importWaiverDir, "waiver-dir", "", "Folder of waiver PDFs to match against student IDs")

	studentsCmd.AddCommand(studentsImportCmd)
	studentsCmd.AddCommand(studentsExportCmd)
	RootCmd.AddCommand(studentsCmd)
}

func openStudentStore(cfg *config.Config) (*waiver.StudentStore, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := waiver.NewStudentStore(db)
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate students table: %w", err)
	}
	return store, nil
}

func runStudentsImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	store, err := openStudentStore(cfg)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open roster %s: %w", args[0], err)
	}
	defer f.Close()

	summary, err := store.ImportCSV(f, importWaiverDir)
	if err != nil {
		return err
	}

	l.Info("Student roster imported",
		zap.String("roster", args[0]),
		zap.Int("imported", summary.Imported),
		zap.Int("waivers_matched", summary.Matched),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d students (%d with waiver files on record).\n",
		summary.Imported, summary.Matched)
	return nil
}

func runStudentsExport(cmd *cobra.Command, args []string) error {
	outputPath := args[0]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	if !cfg.Waiver.OverwriteExisting {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("output file %s already exists (set waiver.overwrite_existing to replace it)", outputPath)
		}
	}

	store, err := openStudentStore(cfg)
	if err != nil {
		return err
	}

	students, err := store.WithWaivers()
	if err != nil {
		return err
	}
	if len(students) == 0 {
		return fmt.Errorf("no students with waivers on record; run the import first")
	}

	// Read the files in the store's alphabetical order so the merged
	// document pages follow it.
	files := make([]match.File, 0, len(students))
	for _, s := range students {
		data, err := os.ReadFile(*s.PDFPath)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "WARNING: Cannot read waiver for %s: %v\n", s.DisplayName(), err)
			continue
		}
		files = append(files, match.File{ID: s.StudentID, Name: *s.PDFPath, Data: data})
	}

	res := merge.Merge(files)
	for _, msg := range res.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "WARNING: Skipped %s\n", msg)
	}
	if res.Output == nil {
		return fmt.Errorf("no valid waiver PDFs could be merged")
	}

	if err := os.WriteFile(outputPath, res.Output, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	l.Info("Waiver export written",
		zap.String("output", outputPath),
		zap.Int("students", len(students)),
		zap.Int("merged", res.Merged),
		zap.Int("pages", res.Pages),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Merged %d of %d waivers into %s.\n",
		res.Merged, len(students), outputPath)
	return nil
}
