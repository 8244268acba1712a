package models

import "time"

// PotentialStudent defines a prospective student row from the
// 'potential_students' table. Each row is owned by exactly one guardian user;
// only that guardian may list, enrol or delete it.
type PotentialStudent struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Email       string    `json:"email" db:"email" example:"student@example.com"`
	FirstName   string    `json:"fn" db:"first_name" example:"Ann"`
	MiddleName  *string   `json:"mn,omitempty" db:"middle_name"`
	LastName    string    `json:"sn" db:"last_name" example:"Lee"`
	DateOfBirth time.Time `json:"dob" db:"date_of_birth"`
	YearLevel   int       `json:"yearLevel" db:"year_level" example:"9"`
	GuardianID  int64     `json:"guardianId" db:"guardian_id" example:"7"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
