package repository

import (
	"errors"

	"github.com/hqnguyen/elevenprep/internal/model"
	"gorm.io/gorm"
)

type SubjectRepository interface {
	FindAll() ([]model.Subject, error)
	FindByID(id uint) (*model.Subject, error)
	FindTopics(subjectID uint) ([]model.Topic, error)
	UpsertByCode(subject *model.Subject) error
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) FindAll() ([]model.Subject, error) {
	var subjects []model.Subject
	if err := r.db.Order("id ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindTopics(subjectID uint) ([]model.Topic, error) {
	var topics []model.Topic
	if err := r.db.Where("subject_id = ?", subjectID).Order("name ASC").Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// UpsertByCode seeds reference subjects idempotently at migration time.
func (r *subjectRepository) UpsertByCode(subject *model.Subject) error {
	var existing model.Subject
	err := r.db.Where("code = ?", subject.Code).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(subject).Error
	}
	if err != nil {
		return err
	}
	subject.ID = existing.ID
	return nil
}
