package dto

// CreatePotentialStudentRequest represents a guardian adding a prospective student
type CreatePotentialStudentRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	FirstName   string  `json:"fn" binding:"required"`
	MiddleName  *string `json:"mn,omitempty"`
	LastName    string  `json:"sn" binding:"required"`
	DateOfBirth string  `json:"dob" binding:"required"`
	YearLevel   int     `json:"yearLevel" binding:"required,min=7,max=12"`
}
