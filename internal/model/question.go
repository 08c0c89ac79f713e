package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeFreeText       = "free_text"
)

type Question struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	SubjectID        uint           `json:"subject_id" gorm:"not null;index"`
	TopicID          *uint          `json:"topic_id,omitempty" gorm:"index"`
	QuestionType     string         `json:"question_type" gorm:"not null"` // "multiple_choice", "free_text"
	QuestionText     string         `json:"question_text" gorm:"type:text;not null"`
	QuestionImageURL *string        `json:"question_image_url,omitempty"`
	Explanation      *string        `json:"explanation,omitempty" gorm:"type:text"`
	Points           int            `json:"points" gorm:"not null;default:1"`
	TimeLimitSeconds *int           `json:"time_limit_seconds,omitempty"`
	IsActive         bool           `json:"is_active" gorm:"not null;default:true"`
	Options          []AnswerOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

type AnswerOption struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	QuestionID     uint           `json:"question_id" gorm:"not null;index"`
	OptionText     string         `json:"option_text" gorm:"type:text"`
	OptionImageURL *string        `json:"option_image_url,omitempty"`
	IsCorrect      bool           `json:"is_correct"`
	DisplayOrder   int            `json:"display_order" gorm:"not null"` // canonical storage order, never mutated at read time
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
