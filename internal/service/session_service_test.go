package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/hqnguyen/elevenprep/internal/dto"
	"github.com/hqnguyen/elevenprep/internal/model"
)

func TestStartSessionBindsQuestionSet(t *testing.T) {
	f := newFixture(t)

	resp, err := f.sessions.StartSession(f.userID, dto.StartSessionRequest{
		SubjectID:   f.subjectID,
		QuestionIDs: f.questionIDs,
	})
	if err != nil {
		t.Fatalf("start session failed: %v", err)
	}
	if resp.CompletedAt != nil {
		t.Fatalf("new session must not be completed")
	}
	if len(resp.QuestionIDs) != 3 {
		t.Fatalf("expected 3 bound questions, got %d", len(resp.QuestionIDs))
	}
	for i, id := range f.questionIDs {
		if resp.QuestionIDs[i] != id {
			t.Fatalf("bound order mismatch at %d: got %d want %d", i, resp.QuestionIDs[i], id)
		}
	}
}

func TestStartSessionRejectsEmptyQuestionSet(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessions.StartSession(f.userID, dto.StartSessionRequest{
		SubjectID:   f.subjectID,
		QuestionIDs: nil,
	})
	if !errors.Is(err, model.ErrEmptyQuestionSet) {
		t.Fatalf("expected ErrEmptyQuestionSet, got %v", err)
	}
}

func TestStartSessionUnknownSubject(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessions.StartSession(f.userID, dto.StartSessionRequest{
		SubjectID:   9999,
		QuestionIDs: f.questionIDs,
	})
	if !errors.Is(err, model.ErrSubjectNotFound) {
		t.Fatalf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestCompleteSessionTwiceKeepsLastTimestamp(t *testing.T) {
	f := newFixture(t)

	created, err := f.sessions.StartSession(f.userID, dto.StartSessionRequest{
		SubjectID:   f.subjectID,
		QuestionIDs: f.questionIDs,
	})
	if err != nil {
		t.Fatalf("start session failed: %v", err)
	}

	first, err := f.sessions.CompleteSession(created.ID, f.userID)
	if err != nil {
		t.Fatalf("first complete failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := f.sessions.CompleteSession(created.ID, f.userID)
	if err != nil {
		t.Fatalf("second complete failed: %v", err)
	}
	if second.CompletedAt == nil || first.CompletedAt == nil {
		t.Fatalf("completion timestamps missing")
	}
	if !second.CompletedAt.After(*first.CompletedAt) {
		t.Fatalf("second completion must win: first=%v second=%v", first.CompletedAt, second.CompletedAt)
	}

	// Exactly one stored timestamp, equal to the second call's.
	stored, err := f.sessions.GetSession(created.ID, f.userID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if stored.CompletedAt == nil || !stored.CompletedAt.Equal(*second.CompletedAt) {
		t.Fatalf("stored timestamp %v, want %v", stored.CompletedAt, second.CompletedAt)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	f := newFixture(t)

	created, err := f.sessions.StartSession(f.userID, dto.StartSessionRequest{
		SubjectID:   f.subjectID,
		QuestionIDs: f.questionIDs,
	})
	if err != nil {
		t.Fatalf("start session failed: %v", err)
	}

	for _, qid := range f.questionIDs {
		chosen := f.correctOption(t, qid)
		_, err := f.attempts.RecordAnswer(f.userID, created.ID, dto.RecordAnswerRequest{
			QuestionID:     qid,
			ChosenOptionID: &chosen,
			DisplayOrder:   f.optionIDs(t, qid),
		})
		if err != nil {
			t.Fatalf("record answer failed: %v", err)
		}
	}

	if err := f.sessions.DeleteSession(created.ID, f.userID); err != nil {
		t.Fatalf("delete session failed: %v", err)
	}

	var attempts, orders, bindings int64
	f.db.Model(&model.QuestionAttempt{}).Where("session_id = ?", created.ID).Count(&attempts)
	f.db.Model(&model.SessionQuestion{}).Where("session_id = ?", created.ID).Count(&bindings)
	f.db.Model(&model.AttemptOptionOrder{}).Count(&orders)
	if attempts != 0 || orders != 0 || bindings != 0 {
		t.Fatalf("cascade left orphans: attempts=%d orders=%d bindings=%d", attempts, orders, bindings)
	}

	if _, err := f.sessions.GetSession(created.ID, f.userID); !errors.Is(err, model.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestSessionOwnershipEnforced(t *testing.T) {
	f := newFixture(t)

	created, err := f.sessions.StartSession(f.userID, dto.StartSessionRequest{
		SubjectID:   f.subjectID,
		QuestionIDs: f.questionIDs,
	})
	if err != nil {
		t.Fatalf("start session failed: %v", err)
	}

	other := model.User{Email: "bob@example.com", PasswordHash: "x", DisplayName: "Bob"}
	if err := f.db.Create(&other).Error; err != nil {
		t.Fatalf("seeding second user: %v", err)
	}

	if _, err := f.sessions.GetSession(created.ID, other.ID); !errors.Is(err, model.ErrSessionNotFound) {
		t.Fatalf("foreign session must read as not found, got %v", err)
	}
	if err := f.sessions.DeleteSession(created.ID, other.ID); !errors.Is(err, model.ErrSessionNotFound) {
		t.Fatalf("foreign delete must read as not found, got %v", err)
	}
}
