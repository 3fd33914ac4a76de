package waiver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/core/database"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupStudentStore(t *testing.T) *StudentStore {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	store := NewStudentStore(db)
	require.NoError(t, store.Migrate())
	return store
}

const rosterCSV = `student_id,firstname,lastname,email,major,gpa,enrollment_date,has_ferpa
1001,Alice,Young,alice@example.edu,Biology,3.8,2024-08-15,yes
1002,Bob,Adams,bob@example.edu,History,3.1,2024-08-15,yes
1003,Carol,Mills,carol@example.edu,Math,3.9,2024-08-15,no
`

func TestStudentStore_ImportCSV(t *testing.T) {
	store := setupStudentStore(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "1001_Alice_KCS Records Consent_a.pdf"), []byte("%PDF-"), 0o644))

	summary, err := store.ImportCSV(strings.NewReader(rosterCSV), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Imported)
	assert.Equal(t, 1, summary.Matched)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	students, err := store.All()
	require.NoError(t, err)
	require.Len(t, students, 3)

	byID := make(map[string]int, len(students))
	for i, s := range students {
		byID[s.StudentID] = i
	}
	alice := students[byID["1001"]]
	assert.True(t, alice.HasFerpa)
	require.NotNil(t, alice.PDFPath)
	assert.Contains(t, *alice.PDFPath, "1001_")
	assert.InDelta(t, 3.8, alice.GPA, 0.001)

	bob := students[byID["1002"]]
	assert.True(t, bob.HasFerpa)
	assert.Nil(t, bob.PDFPath)

	carol := students[byID["1003"]]
	assert.False(t, carol.HasFerpa)
}

func TestStudentStore_ImportCSV_ReplacesExistingRows(t *testing.T) {
	store := setupStudentStore(t)

	_, err := store.ImportCSV(strings.NewReader(rosterCSV), "")
	require.NoError(t, err)

	// Second import of a shorter roster must not leave stale rows behind.
	short := "student_id,firstname,lastname,has_ferpa\n2001,Dana,Reed,no\n"
	summary, err := store.ImportCSV(strings.NewReader(short), "")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStudentStore_ImportCSV_MissingColumn(t *testing.T) {
	store := setupStudentStore(t)

	_, err := store.ImportCSV(strings.NewReader("firstname,lastname\nAlice,Young\n"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "student_id")
}

func TestStudentStore_WithWaivers_Ordering(t *testing.T) {
	store := setupStudentStore(t)

	dir := t.TempDir()
	for _, name := range []string{
		"1001_Alice_KCS Records Consent_a.pdf",
		"1002_Bob_KCS Records Consent_b.pdf",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-"), 0o644))
	}

	_, err := store.ImportCSV(strings.NewReader(rosterCSV), dir)
	require.NoError(t, err)

	students, err := store.WithWaivers()
	require.NoError(t, err)

	// Both flagged students matched a file; Adams sorts before Young.
	require.Len(t, students, 2)
	assert.Equal(t, "1002", students[0].StudentID)
	assert.Equal(t, "Bob Adams", students[0].DisplayName())
	assert.Equal(t, "1001", students[1].StudentID)
}

func TestStudentStore_WithWaivers_Query(t *testing.T) {
	gormDB, sqlMock := setupMockDB(t)
	store := NewStudentStore(gormDB)

	path := "/waivers/1001_Alice.pdf"
	rows := sqlmock.NewRows([]string{"student_id", "firstname", "lastname", "has_ferpa", "pdf_path"}).
		AddRow("1002", "Bob", "Adams", true, path).
		AddRow("1001", "Alice", "Young", true, path)
	sqlMock.ExpectQuery("SELECT \\* FROM `students` WHERE has_ferpa = \\? AND pdf_path IS NOT NULL ORDER BY lastname, firstname").
		WillReturnRows(rows)

	students, err := store.WithWaivers()
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Adams", students[0].LastName)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
