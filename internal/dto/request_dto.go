package dto

// SignUpRequest registers a new user. ConfirmPassword is validated before any
// network call reaches the persistence layer.
type SignUpRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	DisplayName     string `json:"display_name" binding:"required"`
}

type LogInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	YearGroup   *int   `json:"year_group" binding:"omitempty,min=1,max=13"`
}

// StartSessionRequest creates a session with its question set bound up front.
type StartSessionRequest struct {
	SubjectID   uint    `json:"subject_id" binding:"required"`
	QuestionIDs []uint  `json:"question_ids" binding:"required,min=1,dive,required"`
	SetName     *string `json:"set_name"`
}

// RecordAnswerRequest submits one answer within a session. DisplayOrder is the
// option order as shown to the user, first shown option first.
type RecordAnswerRequest struct {
	QuestionID       uint    `json:"question_id" binding:"required"`
	ChosenOptionID   *uint   `json:"chosen_option_id"`
	FreeTextAnswer   *string `json:"free_text_answer"`
	TimeTakenSeconds *int    `json:"time_taken_seconds" binding:"omitempty,min=0"`
	DisplayOrder     []uint  `json:"display_order"`
}
