package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/hqnguyen/elevenprep/internal/dto"
	"github.com/hqnguyen/elevenprep/internal/model"
	"github.com/hqnguyen/elevenprep/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionService resolves a session's bound question set into full
// question+option records for display.
type QuestionService interface {
	LoadSessionQuestions(sessionID uint, userID uuid.UUID) ([]dto.QuestionResponse, error)
	BrowseQuestions(subjectID uint, topicID *uint, limit int) ([]dto.QuestionResponse, error)
}

type questionService struct {
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
}

func NewQuestionService(sessionRepo repository.SessionRepository, questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{sessionRepo: sessionRepo, questionRepo: questionRepo}
}

// LoadSessionQuestions returns the session's questions in bound order, each
// with its options freshly shuffled. The shuffled order is what the client
// echoes back as display_order when the answer is recorded.
func (s *questionService) LoadSessionQuestions(sessionID uint, userID uuid.UUID) ([]dto.QuestionResponse, error) {
	if _, err := s.sessionRepo.FindByIDAndUser(sessionID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session %d: %w", sessionID, err)
	}

	ids, err := s.sessionRepo.FindQuestionIDs(sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading question set for session %d: %w", sessionID, err)
	}
	if len(ids) == 0 {
		// Sessions are always created with a bound set; an empty one means
		// the row predates that rule and cannot be resumed.
		return nil, model.ErrEmptyQuestionSet
	}

	questions, err := s.questionRepo.FindByIDsWithOptions(ids)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("LoadSessionQuestions: failed to load questions")
		return nil, fmt.Errorf("loading questions: %w", err)
	}

	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	resp := make([]dto.QuestionResponse, 0, len(ids))
	for _, id := range ids {
		question, ok := byID[id]
		if !ok {
			log.Warn().Uint("questionID", id).Uint("sessionID", sessionID).Msg("LoadSessionQuestions: bound question missing, skipping")
			continue
		}
		resp = append(resp, questionResponse(&question, true))
	}
	return resp, nil
}

// BrowseQuestions lists active questions for building a new practice set.
// Options come back in canonical order here; shuffling is a session-load
// concern.
func (s *questionService) BrowseQuestions(subjectID uint, topicID *uint, limit int) ([]dto.QuestionResponse, error) {
	questions, err := s.questionRepo.FindActiveBySubject(subjectID, topicID, limit)
	if err != nil {
		return nil, fmt.Errorf("browsing questions: %w", err)
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, questionResponse(&questions[i], false))
	}
	return resp, nil
}

// ShuffleOptions returns a uniform random permutation of the given options.
// The input slice is never mutated; each call draws a fresh permutation.
func ShuffleOptions(options []model.AnswerOption) []model.AnswerOption {
	shuffled := make([]model.AnswerOption, len(options))
	copy(shuffled, options)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

func questionResponse(question *model.Question, shuffle bool) dto.QuestionResponse {
	var resp dto.QuestionResponse
	copier.Copy(&resp, question)

	options := question.Options
	if shuffle {
		options = ShuffleOptions(options)
	}
	resp.Options = make([]dto.OptionResponse, len(options))
	for i := range options {
		copier.Copy(&resp.Options[i], &options[i])
	}
	return resp
}
