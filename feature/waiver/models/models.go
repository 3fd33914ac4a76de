package models

import "time"

// Student is one roster record. PDFPath is set when a waiver file has been
// matched to the student; nil means no waiver on record.
type Student struct {
	StudentID      string    `gorm:"column:student_id;primaryKey" json:"student_id"`
	FirstName      string    `gorm:"column:firstname" json:"firstname"`
	LastName       string    `gorm:"column:lastname" json:"lastname"`
	Email          string    `gorm:"column:email" json:"email"`
	Major          string    `gorm:"column:major" json:"major"`
	GPA            float64   `gorm:"column:gpa" json:"gpa"`
	EnrollmentDate string    `gorm:"column:enrollment_date" json:"enrollment_date"`
	HasFerpa       bool      `gorm:"column:has_ferpa" json:"has_ferpa"`
	PDFPath        *string   `gorm:"column:pdf_path" json:"pdf_path"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM.
func (Student) TableName() string {
	return "students"
}

// DisplayName returns "First Last" for reports and logs.
func (s Student) DisplayName() string {
	return s.FirstName + " " + s.LastName
}
