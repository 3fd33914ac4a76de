package waiver

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/core/utils"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver/models"
)

// StudentStore persists roster records and their waiver file matches.
type StudentStore struct {
	db *gorm.DB
}

// NewStudentStore creates a store on the given connection.
func NewStudentStore(db *gorm.DB) *StudentStore {
	return &StudentStore{db: db}
}

// Migrate creates the students table if needed.
func (s *StudentStore) Migrate() error {
	return s.db.AutoMigrate(&models.Student{})
}

// ImportSummary reports the outcome of one roster import.
type ImportSummary struct {
	Imported int
	Matched  int
}

// ImportCSV replaces the students table with the rows of a roster CSV and
// matches each flagged student to a waiver file in waiverDir by the
// "{id}_" filename prefix. The import wipes existing rows first, so
// re-running it is safe.
//
// Expected columns: student_id, firstname, lastname, email, major, gpa,
// enrollment_date, has_ferpa.
func (s *StudentStore) ImportCSV(r io.Reader, waiverDir string) (ImportSummary, error) {
	var summary ImportSummary

	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return summary, fmt.Errorf("failed to read roster CSV: %w", err)
	}
	if len(rows) < 1 {
		return summary, fmt.Errorf("roster CSV is empty")
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"student_id", "firstname", "lastname", "has_ferpa"} {
		if _, ok := col[required]; !ok {
			return summary, fmt.Errorf("roster CSV is missing the %q column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	students := make([]models.Student, 0, len(rows)-1)
	for _, row := range rows[1:] {
		student := models.Student{
			StudentID:      field(row, "student_id"),
			FirstName:      field(row, "firstname"),
			LastName:       field(row, "lastname"),
			Email:          field(row, "email"),
			Major:          field(row, "major"),
			GPA:            utils.ToFloat(field(row, "gpa")),
			EnrollmentDate: field(row, "enrollment_date"),
			HasFerpa:       utils.ToBool(field(row, "has_ferpa")),
		}
		if student.StudentID == "" {
			continue
		}

		if student.HasFerpa && waiverDir != "" {
			if path := findWaiverFile(waiverDir, student.StudentID); path != "" {
				student.PDFPath = &path
				summary.Matched++
			}
		}

		students = append(students, student)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Fresh import: wipe and reinsert.
		if err := tx.Where("1 = 1").Delete(&models.Student{}).Error; err != nil {
			return err
		}
		if len(students) == 0 {
			return nil
		}
		return tx.Create(&students).Error
	})
	if err != nil {
		return summary, fmt.Errorf("failed to import students: %w", err)
	}

	summary.Imported = len(students)
	return summary, nil
}

// WithWaivers returns the students that have a waiver file on record,
// ordered alphabetically by last name, then first name.
func (s *StudentStore) WithWaivers() ([]models.Student, error) {
	var students []models.Student
	err := s.db.
		Where("has_ferpa = ? AND pdf_path IS NOT NULL", true).
		Order("lastname, firstname").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query students with waivers: %w", err)
	}
	return students, nil
}

// All returns every student in roster order of import.
func (s *StudentStore) All() ([]models.Student, error) {
	var students []models.Student
	if err := s.db.Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	return students, nil
}

// Count returns the total number of students on record.
func (s *StudentStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.Student{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return n, nil
}

// findWaiverFile locates a student's waiver PDF by the "{id}_" prefix.
// Returns the first match; the matcher proper handles conflicts, this is
// only the import-time convenience lookup.
func findWaiverFile(dir, studentID string) string {
	matches, err := filepath.Glob(filepath.Join(dir, studentID+"_*.pdf"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	return matches[0]
}
