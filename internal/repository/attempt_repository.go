package repository

import (
	"github.com/hqnguyen/elevenprep/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	CreateWithOptionOrder(attempt *model.QuestionAttempt, order []model.AttemptOptionOrder) error
	FindBySessionAndQuestion(sessionID, questionID uint) (*model.QuestionAttempt, error)
	FindAllBySession(sessionID uint) ([]model.QuestionAttempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

// CreateWithOptionOrder writes the attempt row and its shown-order rows in
// one transaction, so a failure cannot leave an attempt without its order
// metadata.
func (r *attemptRepository) CreateWithOptionOrder(attempt *model.QuestionAttempt, order []model.AttemptOptionOrder) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		for i := range order {
			order[i].AttemptID = attempt.ID
		}
		if len(order) > 0 {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *attemptRepository) FindBySessionAndQuestion(sessionID, questionID uint) (*model.QuestionAttempt, error) {
	var attempt model.QuestionAttempt
	err := r.db.Where("session_id = ? AND question_id = ?", sessionID, questionID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllBySession(sessionID uint) ([]model.QuestionAttempt, error) {
	var attempts []model.QuestionAttempt
	err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
