package model

import (
	"time"

	"github.com/google/uuid"
)

// PracticeSession is one practice run by one user against one subject.
// Sessions and their attempts are hard-deleted so the cascade in
// SessionService.DeleteSession leaves nothing behind.
type PracticeSession struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	UserID      uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index"`
	SubjectID   uint              `json:"subject_id" gorm:"not null;index"`
	Subject     Subject           `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	SetName     *string           `json:"set_name,omitempty"` // optional named question set
	StartedAt   time.Time         `json:"started_at" gorm:"not null"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"` // nil = in progress
	Questions   []SessionQuestion `json:"questions,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Attempts    []QuestionAttempt `json:"attempts,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// SessionQuestion binds one question into a session, in order. The bound set
// is captured when the session is created and never changes afterward.
type SessionQuestion struct {
	ID         uint `gorm:"primarykey" json:"id"`
	SessionID  uint `json:"session_id" gorm:"not null;index;uniqueIndex:idx_session_question"`
	QuestionID uint `json:"question_id" gorm:"not null;uniqueIndex:idx_session_question"`
	Position   int  `json:"position" gorm:"not null"` // 1-based order within the session
}
