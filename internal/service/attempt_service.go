package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hqnguyen/elevenprep/internal/dto"
	"github.com/hqnguyen/elevenprep/internal/model"
	"github.com/hqnguyen/elevenprep/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService records answers within a session. Correctness is decided
// here, against the option's state at submission time; later edits to which
// option is correct never rewrite recorded attempts.
type AttemptService interface {
	RecordAnswer(userID uuid.UUID, sessionID uint, req dto.RecordAnswerRequest) (*dto.AttemptResponse, error)
}

type attemptService struct {
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
}

func NewAttemptService(
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
) AttemptService {
	return &attemptService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
	}
}

func (s *attemptService) RecordAnswer(userID uuid.UUID, sessionID uint, req dto.RecordAnswerRequest) (*dto.AttemptResponse, error) {
	if _, err := s.sessionRepo.FindByIDAndUser(sessionID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session %d: %w", sessionID, err)
	}

	boundIDs, err := s.sessionRepo.FindQuestionIDs(sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading question set for session %d: %w", sessionID, err)
	}
	if !containsID(boundIDs, req.QuestionID) {
		return nil, model.ErrQuestionNotFound
	}

	// Read before write: resubmitting the same question returns the original
	// attempt untouched instead of creating a second row.
	if existing, err := s.attemptRepo.FindBySessionAndQuestion(sessionID, req.QuestionID); err == nil {
		log.Info().Uint("sessionID", sessionID).Uint("questionID", req.QuestionID).Msg("RecordAnswer: duplicate submission, returning existing attempt")
		return attemptResponse(existing), model.ErrDuplicateAttempt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing attempt: %w", err)
	}

	question, err := s.questionRepo.FindByIDWithOptions(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("loading question %d: %w", req.QuestionID, err)
	}

	attempt := model.QuestionAttempt{
		UserID:           userID,
		SessionID:        sessionID,
		QuestionID:       req.QuestionID,
		ChosenOptionID:   req.ChosenOptionID,
		FreeTextAnswer:   req.FreeTextAnswer,
		TimeTakenSeconds: req.TimeTakenSeconds,
		IsCorrect:        isCorrectChoice(question, req.ChosenOptionID),
	}

	order := make([]model.AttemptOptionOrder, 0, len(req.DisplayOrder))
	for i, optionID := range req.DisplayOrder {
		order = append(order, model.AttemptOptionOrder{
			OptionID: optionID,
			Position: i + 1,
		})
	}

	if err := s.attemptRepo.CreateWithOptionOrder(&attempt, order); err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Uint("questionID", req.QuestionID).Msg("RecordAnswer: failed to persist attempt")
		return nil, fmt.Errorf("recording answer: %w", err)
	}
	return attemptResponse(&attempt), nil
}

// isCorrectChoice grades a multiple-choice answer against the designated
// correct option. Free-text answers are stored ungraded as incorrect.
func isCorrectChoice(question *model.Question, chosenOptionID *uint) bool {
	if question.QuestionType != model.QuestionTypeMultipleChoice || chosenOptionID == nil {
		return false
	}
	for _, option := range question.Options {
		if option.ID == *chosenOptionID {
			return option.IsCorrect
		}
	}
	return false
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func attemptResponse(attempt *model.QuestionAttempt) *dto.AttemptResponse {
	var resp dto.AttemptResponse
	copier.Copy(&resp, attempt)
	return &resp
}
