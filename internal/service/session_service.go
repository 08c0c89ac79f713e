package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hqnguyen/elevenprep/internal/dto"
	"github.com/hqnguyen/elevenprep/internal/model"
	"github.com/hqnguyen/elevenprep/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SessionService owns the practice session lifecycle. The only state
// transition is created -> completed; an incomplete session persists as
// not-completed until resumed or deleted.
type SessionService interface {
	StartSession(userID uuid.UUID, req dto.StartSessionRequest) (*dto.SessionResponse, error)
	GetSession(sessionID uint, userID uuid.UUID) (*dto.SessionResponse, error)
	CompleteSession(sessionID uint, userID uuid.UUID) (*dto.SessionResponse, error)
	DeleteSession(sessionID uint, userID uuid.UUID) error
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	subjectRepo repository.SubjectRepository
}

func NewSessionService(sessionRepo repository.SessionRepository, subjectRepo repository.SubjectRepository) SessionService {
	return &sessionService{sessionRepo: sessionRepo, subjectRepo: subjectRepo}
}

// StartSession creates the session and binds its ordered question set in one
// write. Binding at creation is mandatory; a session can never exist without
// a usable question list.
func (s *sessionService) StartSession(userID uuid.UUID, req dto.StartSessionRequest) (*dto.SessionResponse, error) {
	if len(req.QuestionIDs) == 0 {
		return nil, model.ErrEmptyQuestionSet
	}
	if _, err := s.subjectRepo.FindByID(req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("loading subject %d: %w", req.SubjectID, err)
	}

	session := model.PracticeSession{
		UserID:    userID,
		SubjectID: req.SubjectID,
		SetName:   req.SetName,
		StartedAt: time.Now(),
	}
	for i, qid := range req.QuestionIDs {
		session.Questions = append(session.Questions, model.SessionQuestion{
			QuestionID: qid,
			Position:   i + 1,
		})
	}

	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("StartSession: failed to create session")
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return sessionResponse(&session, req.QuestionIDs), nil
}

func (s *sessionService) GetSession(sessionID uint, userID uuid.UUID) (*dto.SessionResponse, error) {
	session, ids, err := s.loadOwned(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return sessionResponse(session, ids), nil
}

// CompleteSession stamps the completion time. Calling it again is allowed;
// the stored timestamp is whichever call ran last.
func (s *sessionService) CompleteSession(sessionID uint, userID uuid.UUID) (*dto.SessionResponse, error) {
	session, ids, err := s.loadOwned(sessionID, userID)
	if err != nil {
		return nil, err
	}
	completedAt := time.Now()
	if err := s.sessionRepo.SetCompletedAt(sessionID, completedAt); err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("CompleteSession: failed to set completion timestamp")
		return nil, fmt.Errorf("completing session %d: %w", sessionID, err)
	}
	session.CompletedAt = &completedAt
	return sessionResponse(session, ids), nil
}

// DeleteSession removes the session and cascades to its attempts and their
// option-order rows.
func (s *sessionService) DeleteSession(sessionID uint, userID uuid.UUID) error {
	if _, err := s.sessionRepo.FindByIDAndUser(sessionID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrSessionNotFound
		}
		return fmt.Errorf("loading session %d: %w", sessionID, err)
	}
	if err := s.sessionRepo.DeleteCascade(sessionID); err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("DeleteSession: cascade delete failed")
		return fmt.Errorf("deleting session %d: %w", sessionID, err)
	}
	return nil
}

func (s *sessionService) loadOwned(sessionID uint, userID uuid.UUID) (*model.PracticeSession, []uint, error) {
	session, err := s.sessionRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, model.ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("loading session %d: %w", sessionID, err)
	}
	ids, err := s.sessionRepo.FindQuestionIDs(sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading question set for session %d: %w", sessionID, err)
	}
	return session, ids, nil
}

func sessionResponse(session *model.PracticeSession, questionIDs []uint) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:          session.ID,
		SubjectID:   session.SubjectID,
		SetName:     session.SetName,
		StartedAt:   session.StartedAt,
		CompletedAt: session.CompletedAt,
		QuestionIDs: questionIDs,
	}
}
