package models

// Subject defines the subject model based on the 'subjects' table.
// Subjects are keyed by a three uppercase letter code (e.g. "ENG") and each
// subject is owned by a head of department user.
type Subject struct {
	Code      string `json:"subjectId" db:"code" example:"ENG"`
	Name      string `json:"name" db:"name" example:"English"`
	Faculty   string `json:"faculty" db:"faculty" example:"Humanities"`
	HODUserID int64  `json:"hodUserId" db:"hod_user_id" example:"3"`
	HODName   string `json:"hodName,omitempty"` // Populated by joins, no db column
}
