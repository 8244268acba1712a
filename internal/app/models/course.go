package models

import "time"

// Course defines the course model based on the 'courses' table.
// A course is hosted by one user, may be linked to a subject and targets a
// single year level within the school range (7-12).
type Course struct {
	Code          string    `json:"courseId" db:"code" example:"ENG101"`
	Name          string    `json:"courseName" db:"name" example:"Introduction to Poetry"`
	Description   string    `json:"courseDesc" db:"description"`
	HostUserID    int64     `json:"hostUserId" db:"host_user_id" example:"4"`
	HostName      string    `json:"hostUserName,omitempty"` // Populated by joins
	YearLevel     int       `json:"yearLevel" db:"year_level" example:"9"`
	SubjectCode   *string   `json:"subjectId,omitempty" db:"subject_code"`
	SubjectName   string    `json:"subjectName,omitempty"` // Populated by joins
	OfferingDate  *string   `json:"offeringDate,omitempty" db:"offering_date"`
	Location      *string   `json:"location,omitempty" db:"location"`
	Cost          *float64  `json:"cost,omitempty" db:"cost"`
	Prerequisites *string   `json:"prereq,omitempty" db:"prerequisites"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// Year level bounds for the school.
const (
	MinYearLevel = 7
	MaxYearLevel = 12
)

// IsValidYearLevel reports whether level is within the school range.
func IsValidYearLevel(level int) bool {
	return level >= MinYearLevel && level <= MaxYearLevel
}
