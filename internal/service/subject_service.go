package service

import (
	"fmt"

	"github.com/hqnguyen/elevenprep/internal/dto"
	"github.com/hqnguyen/elevenprep/internal/repository"
	"github.com/jinzhu/copier"
)

// SubjectService exposes the immutable content taxonomy.
type SubjectService interface {
	ListSubjects() ([]dto.SubjectResponse, error)
	ListTopics(subjectID uint) ([]dto.TopicResponse, error)
}

type subjectService struct {
	subjectRepo repository.SubjectRepository
}

func NewSubjectService(subjectRepo repository.SubjectRepository) SubjectService {
	return &subjectService{subjectRepo: subjectRepo}
}

func (s *subjectService) ListSubjects() ([]dto.SubjectResponse, error) {
	subjects, err := s.subjectRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	resp := make([]dto.SubjectResponse, len(subjects))
	for i := range subjects {
		copier.Copy(&resp[i], &subjects[i])
	}
	return resp, nil
}

func (s *subjectService) ListTopics(subjectID uint) ([]dto.TopicResponse, error) {
	topics, err := s.subjectRepo.FindTopics(subjectID)
	if err != nil {
		return nil, fmt.Errorf("listing topics for subject %d: %w", subjectID, err)
	}
	resp := make([]dto.TopicResponse, len(topics))
	for i := range topics {
		copier.Copy(&resp[i], &topics[i])
	}
	return resp, nil
}
