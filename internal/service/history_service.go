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

// HistoryService derives scores and assembles the practice history view.
type HistoryService interface {
	ListSessionHistory(userID uuid.UUID) ([]dto.SessionSummaryResponse, error)
	GetSessionSummary(sessionID uint, userID uuid.UUID) (*dto.SessionSummaryResponse, error)
}

type historyService struct {
	sessionRepo repository.SessionRepository
	attemptRepo repository.AttemptRepository
}

func NewHistoryService(sessionRepo repository.SessionRepository, attemptRepo repository.AttemptRepository) HistoryService {
	return &historyService{sessionRepo: sessionRepo, attemptRepo: attemptRepo}
}

// ListSessionHistory returns every session owned by the user, most recent
// first, each with its subject, attempts and derived score. One query for the
// sessions plus one per session for attempts; fine at personal-history scale.
func (s *historyService) ListSessionHistory(userID uuid.UUID) ([]dto.SessionSummaryResponse, error) {
	sessions, err := s.sessionRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("ListSessionHistory: failed to load sessions")
		return nil, fmt.Errorf("loading sessions: %w", err)
	}

	summaries := make([]dto.SessionSummaryResponse, 0, len(sessions))
	for i := range sessions {
		summary, err := s.summarize(&sessions[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *historyService) GetSessionSummary(sessionID uint, userID uuid.UUID) (*dto.SessionSummaryResponse, error) {
	session, err := s.sessionRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session %d: %w", sessionID, err)
	}
	return s.summarize(session)
}

func (s *historyService) summarize(session *model.PracticeSession) (*dto.SessionSummaryResponse, error) {
	attempts, err := s.attemptRepo.FindAllBySession(session.ID)
	if err != nil {
		return nil, fmt.Errorf("loading attempts for session %d: %w", session.ID, err)
	}

	score, total, err := scoreAndTotal(attempts, func() (int, error) {
		ids, err := s.sessionRepo.FindQuestionIDs(session.ID)
		if err != nil {
			return 0, err
		}
		return len(ids), nil
	})
	if err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("summarize: failed to load bound question count")
		return nil, fmt.Errorf("loading question set for session %d: %w", session.ID, err)
	}

	summary := dto.SessionSummaryResponse{
		ID:          session.ID,
		SetName:     session.SetName,
		StartedAt:   session.StartedAt,
		CompletedAt: session.CompletedAt,
		Score:       score,
		Total:       total,
		Attempts:    make([]dto.AttemptResponse, len(attempts)),
	}
	copier.Copy(&summary.Subject, &session.Subject)
	for i := range attempts {
		copier.Copy(&summary.Attempts[i], &attempts[i])
	}
	return &summary, nil
}

// scoreAndTotal implements the scoring contract: score counts correct
// attempts; total counts distinct attempted questions, falling back to the
// bound question-set size when nothing has been attempted yet.
func scoreAndTotal(attempts []model.QuestionAttempt, boundCount func() (int, error)) (int, int, error) {
	if len(attempts) == 0 {
		total, err := boundCount()
		if err != nil {
			return 0, 0, err
		}
		return 0, total, nil
	}

	score := 0
	seen := make(map[uint]struct{}, len(attempts))
	for _, attempt := range attempts {
		if attempt.IsCorrect {
			score++
		}
		seen[attempt.QuestionID] = struct{}{}
	}
	return score, len(seen), nil
}
