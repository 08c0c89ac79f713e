package service_test

import (
	"testing"

	"github.com/hqnguyen/elevenprep/internal/model"
	"github.com/hqnguyen/elevenprep/internal/repository"
)

func TestListSubjectsAndTopics(t *testing.T) {
	f := newFixture(t)

	var subject model.Subject
	if err := f.db.Where("code = ?", model.SubjectNonVerbal).First(&subject).Error; err != nil {
		t.Fatalf("loading seeded subject: %v", err)
	}
	topics := []model.Topic{
		{SubjectID: subject.ID, Name: "Shapes"},
		{SubjectID: subject.ID, Name: "Series"},
	}
	if err := f.db.Create(&topics).Error; err != nil {
		t.Fatalf("seeding topics: %v", err)
	}

	subjects, err := f.subjects.ListSubjects()
	if err != nil {
		t.Fatalf("list subjects failed: %v", err)
	}
	if len(subjects) != 1 || subjects[0].Code != model.SubjectNonVerbal {
		t.Fatalf("unexpected subjects: %+v", subjects)
	}

	listed, err := f.subjects.ListTopics(subject.ID)
	if err != nil {
		t.Fatalf("list topics failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(listed))
	}
	// Alphabetical listing.
	if listed[0].Name != "Series" || listed[1].Name != "Shapes" {
		t.Fatalf("topics not sorted by name: %+v", listed)
	}
}

func TestUpsertSubjectByCodeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewSubjectRepository(f.db)

	fresh := model.Subject{Code: model.SubjectMaths, Name: "Maths"}
	if err := repo.UpsertByCode(&fresh); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if fresh.ID == 0 {
		t.Fatalf("upsert must populate the id")
	}

	again := model.Subject{Code: model.SubjectMaths, Name: "Maths"}
	if err := repo.UpsertByCode(&again); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if again.ID != fresh.ID {
		t.Fatalf("second upsert resolved id %d, want %d", again.ID, fresh.ID)
	}

	var count int64
	if err := f.db.Model(&model.Subject{}).Where("code = ?", model.SubjectMaths).Count(&count).Error; err != nil {
		t.Fatalf("counting subjects: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row for the code, got %d", count)
	}
}

func TestBrowseQuestionsFiltersInactive(t *testing.T) {
	f := newFixture(t)

	inactive := model.Question{
		SubjectID:    f.subjectID,
		QuestionType: model.QuestionTypeMultipleChoice,
		QuestionText: "retired question",
		Points:       1,
		IsActive:     true,
	}
	if err := f.db.Create(&inactive).Error; err != nil {
		t.Fatalf("seeding question: %v", err)
	}
	if err := f.db.Model(&inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("retiring question: %v", err)
	}

	questions, err := f.question.BrowseQuestions(f.subjectID, nil, 0)
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected the 3 active questions, got %d", len(questions))
	}
	for _, q := range questions {
		if q.ID == inactive.ID {
			t.Fatalf("inactive question leaked into browse results")
		}
	}
}
