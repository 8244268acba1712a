package dto

// CreateSubjectRequest represents subject creation data
type CreateSubjectRequest struct {
	Code      string `json:"subjectId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Faculty   string `json:"faculty" binding:"required"`
	HODUserID int64  `json:"hodUserId" binding:"required,gt=0"`
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Code          string   `json:"courseId" binding:"required"`
	Name          string   `json:"courseName" binding:"required"`
	Description   string   `json:"courseDesc" binding:"required"`
	HostUserID    int64    `json:"hostUserId" binding:"required,gt=0"`
	YearLevel     int      `json:"yearLevel" binding:"required,min=7,max=12"`
	SubjectCode   *string  `json:"subjectId,omitempty"`
	OfferingDate  *string  `json:"offeringDate,omitempty"`
	Location      *string  `json:"location,omitempty"`
	Cost          *float64 `json:"cost,omitempty"`
	Prerequisites *string  `json:"prereq,omitempty"`
}
