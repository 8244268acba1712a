package models

import "time"

// Enrolment links a potential student to a course. The
// (course_code, student_id) pair is unique; the database constraint is the
// authoritative guard against duplicate enrolments.
type Enrolment struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	CourseCode string    `json:"courseId" db:"course_code" example:"ENG101"`
	StudentID  int64     `json:"studentId" db:"student_id" example:"12"`
	EnrolledBy int64     `json:"enrolledBy" db:"enrolled_by" example:"7"` // Guardian user who performed the enrolment
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
}
