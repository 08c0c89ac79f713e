package service_test

import (
	"errors"
	"testing"

	"github.com/hqnguyen/elevenprep/internal/dto"
	"github.com/hqnguyen/elevenprep/internal/model"
)

func startSession(t *testing.T, f *fixture) *dto.SessionResponse {
	t.Helper()
	session, err := f.sessions.StartSession(f.userID, dto.StartSessionRequest{
		SubjectID:   f.subjectID,
		QuestionIDs: f.questionIDs,
	})
	if err != nil {
		t.Fatalf("start session failed: %v", err)
	}
	return session
}

func TestRecordAnswerGradesServerSide(t *testing.T) {
	f := newFixture(t)
	session := startSession(t, f)

	qid := f.questionIDs[0]
	correct := f.correctOption(t, qid)
	resp, err := f.attempts.RecordAnswer(f.userID, session.ID, dto.RecordAnswerRequest{
		QuestionID:     qid,
		ChosenOptionID: &correct,
		DisplayOrder:   f.optionIDs(t, qid),
	})
	if err != nil {
		t.Fatalf("record answer failed: %v", err)
	}
	if !resp.IsCorrect {
		t.Fatalf("correct option must grade as correct")
	}

	qid = f.questionIDs[1]
	wrong := f.wrongOption(t, qid)
	resp, err = f.attempts.RecordAnswer(f.userID, session.ID, dto.RecordAnswerRequest{
		QuestionID:     qid,
		ChosenOptionID: &wrong,
		DisplayOrder:   f.optionIDs(t, qid),
	})
	if err != nil {
		t.Fatalf("record answer failed: %v", err)
	}
	if resp.IsCorrect {
		t.Fatalf("wrong option must grade as incorrect")
	}
}

func TestRecordAnswerStoresShownOrder(t *testing.T) {
	f := newFixture(t)
	session := startSession(t, f)

	qid := f.questionIDs[0]
	chosen := f.correctOption(t, qid)
	shown := f.optionIDs(t, qid)
	// Reverse to simulate a shuffled presentation differing from storage order.
	for i, j := 0, len(shown)-1; i < j; i, j = i+1, j-1 {
		shown[i], shown[j] = shown[j], shown[i]
	}

	resp, err := f.attempts.RecordAnswer(f.userID, session.ID, dto.RecordAnswerRequest{
		QuestionID:     qid,
		ChosenOptionID: &chosen,
		DisplayOrder:   shown,
	})
	if err != nil {
		t.Fatalf("record answer failed: %v", err)
	}

	var rows []model.AttemptOptionOrder
	if err := f.db.Where("attempt_id = ?", resp.ID).Order("position ASC").Find(&rows).Error; err != nil {
		t.Fatalf("loading order rows: %v", err)
	}
	if len(rows) != len(shown) {
		t.Fatalf("expected %d order rows, got %d", len(shown), len(rows))
	}
	for i, row := range rows {
		if row.Position != i+1 {
			t.Fatalf("row %d has position %d, want %d", i, row.Position, i+1)
		}
		if row.OptionID != shown[i] {
			t.Fatalf("row %d records option %d, want %d", i, row.OptionID, shown[i])
		}
	}
}

func TestRecordAnswerIsIdempotentPerQuestion(t *testing.T) {
	f := newFixture(t)
	session := startSession(t, f)

	qid := f.questionIDs[0]
	wrong := f.wrongOption(t, qid)
	first, err := f.attempts.RecordAnswer(f.userID, session.ID, dto.RecordAnswerRequest{
		QuestionID:     qid,
		ChosenOptionID: &wrong,
		DisplayOrder:   f.optionIDs(t, qid),
	})
	if err != nil {
		t.Fatalf("first record failed: %v", err)
	}

	// Resubmitting with a different (correct) choice must not create a second
	// row nor change the verdict.
	correct := f.correctOption(t, qid)
	second, err := f.attempts.RecordAnswer(f.userID, session.ID, dto.RecordAnswerRequest{
		QuestionID:     qid,
		ChosenOptionID: &correct,
		DisplayOrder:   f.optionIDs(t, qid),
	})
	if !errors.Is(err, model.ErrDuplicateAttempt) {
		t.Fatalf("expected ErrDuplicateAttempt, got %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("duplicate submission returned a different attempt: %d vs %d", second.ID, first.ID)
	}
	if second.IsCorrect {
		t.Fatalf("original verdict must stand")
	}

	var count int64
	f.db.Model(&model.QuestionAttempt{}).Where("session_id = ? AND question_id = ?", session.ID, qid).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one attempt row, got %d", count)
	}
}

func TestRecordAnswerRejectsUnboundQuestion(t *testing.T) {
	f := newFixture(t)

	// Session bound to only the first question.
	session, err := f.sessions.StartSession(f.userID, dto.StartSessionRequest{
		SubjectID:   f.subjectID,
		QuestionIDs: f.questionIDs[:1],
	})
	if err != nil {
		t.Fatalf("start session failed: %v", err)
	}

	outside := f.questionIDs[2]
	chosen := f.correctOption(t, outside)
	_, err = f.attempts.RecordAnswer(f.userID, session.ID, dto.RecordAnswerRequest{
		QuestionID:     outside,
		ChosenOptionID: &chosen,
	})
	if !errors.Is(err, model.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestLaterOptionEditsDoNotRewriteAttempts(t *testing.T) {
	f := newFixture(t)
	session := startSession(t, f)

	qid := f.questionIDs[0]
	chosen := f.correctOption(t, qid)
	resp, err := f.attempts.RecordAnswer(f.userID, session.ID, dto.RecordAnswerRequest{
		QuestionID:     qid,
		ChosenOptionID: &chosen,
		DisplayOrder:   f.optionIDs(t, qid),
	})
	if err != nil {
		t.Fatalf("record answer failed: %v", err)
	}
	if !resp.IsCorrect {
		t.Fatalf("expected correct verdict at submission time")
	}

	// Content authoring later flips which option is correct.
	if err := f.db.Model(&model.AnswerOption{}).Where("id = ?", chosen).Update("is_correct", false).Error; err != nil {
		t.Fatalf("editing option: %v", err)
	}

	var stored model.QuestionAttempt
	if err := f.db.First(&stored, resp.ID).Error; err != nil {
		t.Fatalf("reloading attempt: %v", err)
	}
	if !stored.IsCorrect {
		t.Fatalf("recorded verdict must not change retroactively")
	}
}
