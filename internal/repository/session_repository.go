package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/hqnguyen/elevenprep/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.PracticeSession) error
	FindByIDAndUser(id uint, userID uuid.UUID) (*model.PracticeSession, error)
	FindQuestionIDs(sessionID uint) ([]uint, error)
	SetCompletedAt(sessionID uint, completedAt time.Time) error
	DeleteCascade(sessionID uint) error
	FindAllByUser(userID uuid.UUID) ([]model.PracticeSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.PracticeSession) error {
	// GORM creates the associated SessionQuestion rows in the same transaction.
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByIDAndUser(id uint, userID uuid.UUID) (*model.PracticeSession, error) {
	var session model.PracticeSession
	err := r.db.Preload("Subject").Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindQuestionIDs(sessionID uint) ([]uint, error) {
	var rows []model.SessionQuestion
	err := r.db.Where("session_id = ?", sessionID).Order("position ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.QuestionID
	}
	return ids, nil
}

func (r *sessionRepository) SetCompletedAt(sessionID uint, completedAt time.Time) error {
	return r.db.Model(&model.PracticeSession{}).
		Where("id = ?", sessionID).
		Update("completed_at", completedAt).Error
}

// DeleteCascade removes the session and everything hanging off it. Order
// matters for stores that do not enforce referential cascade: option-order
// rows first, then attempts, then the question bindings, then the session.
func (r *sessionRepository) DeleteCascade(sessionID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attempt_id IN (?)",
			tx.Model(&model.QuestionAttempt{}).Select("id").Where("session_id = ?", sessionID),
		).Delete(&model.AttemptOptionOrder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", sessionID).Delete(&model.QuestionAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", sessionID).Delete(&model.SessionQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PracticeSession{}, sessionID).Error
	})
}

func (r *sessionRepository) FindAllByUser(userID uuid.UUID) ([]model.PracticeSession, error) {
	var sessions []model.PracticeSession
	err := r.db.Preload("Subject").
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
