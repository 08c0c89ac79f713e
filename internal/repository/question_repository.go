package repository

import (
	"github.com/hqnguyen/elevenprep/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByIDWithOptions(id uint) (*model.Question, error)
	FindByIDsWithOptions(ids []uint) ([]model.Question, error)
	FindActiveBySubject(subjectID uint, topicID *uint, limit int) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByIDWithOptions(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("answer_options.display_order ASC")
	}).First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDsWithOptions(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("answer_options.display_order ASC")
	}).Where("id IN ?", ids).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindActiveBySubject(subjectID uint, topicID *uint, limit int) ([]model.Question, error) {
	query := r.db.Where("subject_id = ? AND is_active = ?", subjectID, true)
	if topicID != nil {
		query = query.Where("topic_id = ?", *topicID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var questions []model.Question
	if err := query.Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
