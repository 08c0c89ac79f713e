package model

import (
	"time"

	"gorm.io/gorm"
)

// Subject codes seeded at migration time.
const (
	SubjectMaths     = "MATH"
	SubjectEnglish   = "ENG"
	SubjectVerbal    = "VR"
	SubjectNonVerbal = "NVR"
)

type Subject struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Code      string         `json:"code" gorm:"not null;uniqueIndex"` // "MATH", "ENG", "VR", "NVR"
	Name      string         `json:"name" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Topic struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	SubjectID     uint           `json:"subject_id" gorm:"not null;index"`
	Name          string         `json:"name" gorm:"not null"`
	ParentTopicID *uint          `json:"parent_topic_id,omitempty" gorm:"index"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
