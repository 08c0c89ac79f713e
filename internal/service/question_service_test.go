package service_test

import (
	"testing"

	"github.com/hqnguyen/elevenprep/internal/model"
	"github.com/hqnguyen/elevenprep/internal/service"
)

func TestShuffleOptionsIsAPermutation(t *testing.T) {
	options := make([]model.AnswerOption, 8)
	for i := range options {
		options[i] = model.AnswerOption{ID: uint(i + 1), DisplayOrder: i + 1}
	}

	shuffled := service.ShuffleOptions(options)
	if len(shuffled) != len(options) {
		t.Fatalf("length changed: %d -> %d", len(options), len(shuffled))
	}

	seen := make(map[uint]int)
	for _, o := range shuffled {
		seen[o.ID]++
	}
	for _, o := range options {
		if seen[o.ID] != 1 {
			t.Fatalf("option %d appears %d times after shuffle", o.ID, seen[o.ID])
		}
	}
}

func TestShuffleOptionsDoesNotMutateInput(t *testing.T) {
	options := make([]model.AnswerOption, 8)
	for i := range options {
		options[i] = model.AnswerOption{ID: uint(i + 1), DisplayOrder: i + 1}
	}

	// Shuffle repeatedly; the canonical slice must keep its stored order.
	for i := 0; i < 20; i++ {
		service.ShuffleOptions(options)
	}
	for i, o := range options {
		if o.ID != uint(i+1) || o.DisplayOrder != i+1 {
			t.Fatalf("canonical order mutated at %d: %+v", i, o)
		}
	}
}

func TestShuffleOptionsDrawsFreshPermutations(t *testing.T) {
	options := make([]model.AnswerOption, 8)
	for i := range options {
		options[i] = model.AnswerOption{ID: uint(i + 1)}
	}

	// With 8! possible orders, 50 draws yielding a single distinct order means
	// the permutation is not being regenerated per call.
	distinct := make(map[[8]uint]struct{})
	for i := 0; i < 50; i++ {
		shuffled := service.ShuffleOptions(options)
		var key [8]uint
		for j, o := range shuffled {
			key[j] = o.ID
		}
		distinct[key] = struct{}{}
	}
	if len(distinct) < 2 {
		t.Fatalf("expected multiple distinct permutations over 50 draws, got %d", len(distinct))
	}
}

func TestLoadSessionQuestionsPreservesBoundOrder(t *testing.T) {
	f := newFixture(t)
	session := startSession(t, f)

	questions, err := f.question.LoadSessionQuestions(session.ID, f.userID)
	if err != nil {
		t.Fatalf("load questions failed: %v", err)
	}
	if len(questions) != len(f.questionIDs) {
		t.Fatalf("expected %d questions, got %d", len(f.questionIDs), len(questions))
	}
	for i, q := range questions {
		if q.ID != f.questionIDs[i] {
			t.Fatalf("question order mismatch at %d: got %d want %d", i, q.ID, f.questionIDs[i])
		}
		if len(q.Options) != 5 {
			t.Fatalf("question %d: expected 5 options, got %d", q.ID, len(q.Options))
		}
	}
}

func TestLoadSessionQuestionsDoesNotMutateStoredOrder(t *testing.T) {
	f := newFixture(t)
	session := startSession(t, f)

	if _, err := f.question.LoadSessionQuestions(session.ID, f.userID); err != nil {
		t.Fatalf("load questions failed: %v", err)
	}

	var options []model.AnswerOption
	if err := f.db.Where("question_id = ?", f.questionIDs[0]).Order("id ASC").Find(&options).Error; err != nil {
		t.Fatalf("loading options: %v", err)
	}
	for i, o := range options {
		if o.DisplayOrder != i+1 {
			t.Fatalf("stored display_order mutated: option %d has order %d", o.ID, o.DisplayOrder)
		}
	}
}
