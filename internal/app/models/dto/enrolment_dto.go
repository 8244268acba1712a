package dto

import "time"

// EnrolRequest represents a guardian enrolling one or more of their potential
// students in a course
type EnrolRequest struct {
	CourseCode string  `json:"courseId" binding:"required"`
	StudentIDs []int64 `json:"studentIds" binding:"required,min=1"`
}

// UnenrolRequest represents a guardian removing a student from a course
type UnenrolRequest struct {
	CourseCode string `json:"courseId" binding:"required"`
	StudentID  int64  `json:"studentId" binding:"required,gt=0"`
}

// StudentEnrolmentResponse lists one of a student's enrolments with course details
type StudentEnrolmentResponse struct {
	CourseCode string    `json:"courseId"`
	CourseName string    `json:"courseName"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// CourseEnrolmentResponse lists a caller-owned student enrolled in a course
type CourseEnrolmentResponse struct {
	StudentID int64 `json:"studentId"`
}

// AdminEnrolmentResponse is the privileged enrolment directory row joining
// course, student and guardian details
type AdminEnrolmentResponse struct {
	ID            int64     `json:"enrolId"`
	CourseName    string    `json:"courseName"`
	StudentName   string    `json:"studentName"`
	StudentEmail  string    `json:"studentEmail"`
	GuardianEmail string    `json:"guardianEmail"`
	DateOfBirth   time.Time `json:"dob"`
	YearLevel     int       `json:"yearLevel"`
	EnrolledAt    time.Time `json:"enrolledAt"`
}
