package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hqnguyen/elevenprep/config"
	"github.com/hqnguyen/elevenprep/internal/model"
	"github.com/hqnguyen/elevenprep/internal/repository"
	"github.com/hqnguyen/elevenprep/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixture wires every service over a fresh in-memory database.
type fixture struct {
	db       *gorm.DB
	sessions service.SessionService
	attempts service.AttemptService
	history  service.HistoryService
	question service.QuestionService
	subjects service.SubjectService
	auth     service.AuthService

	subjectID   uint
	questionIDs []uint
	userID      uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Topic{},
		&model.Question{},
		&model.AnswerOption{},
		&model.PracticeSession{},
		&model.SessionQuestion{},
		&model.QuestionAttempt{},
		&model.AttemptOptionOrder{},
	)
	if err != nil {
		t.Fatalf("migrating: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.Timeout = 5 * time.Second

	f := &fixture{
		db:       db,
		sessions: service.NewSessionService(sessionRepo, subjectRepo),
		attempts: service.NewAttemptService(sessionRepo, questionRepo, attemptRepo),
		history:  service.NewHistoryService(sessionRepo, attemptRepo),
		question: service.NewQuestionService(sessionRepo, questionRepo),
		subjects: service.NewSubjectService(subjectRepo),
		auth:     service.NewAuthService(userRepo, cfg),
	}
	f.seed(t)
	return f
}

// seed creates one subject, three five-option questions (correct option ids
// recorded in correctOptions) and one user.
func (f *fixture) seed(t *testing.T) {
	t.Helper()

	subject := model.Subject{Code: model.SubjectNonVerbal, Name: "Non-Verbal Reasoning"}
	if err := f.db.Create(&subject).Error; err != nil {
		t.Fatalf("seeding subject: %v", err)
	}
	f.subjectID = subject.ID

	for i := 0; i < 3; i++ {
		question := model.Question{
			SubjectID:    subject.ID,
			QuestionType: model.QuestionTypeMultipleChoice,
			QuestionText: fmt.Sprintf("Which shape is the odd one out? (%d)", i+1),
			Points:       1,
			IsActive:     true,
		}
		for pos := 1; pos <= 5; pos++ {
			question.Options = append(question.Options, model.AnswerOption{
				OptionText:   fmt.Sprintf("option %d", pos),
				IsCorrect:    pos == 2, // option B is always correct in the fixture
				DisplayOrder: pos,
			})
		}
		if err := f.db.Create(&question).Error; err != nil {
			t.Fatalf("seeding question: %v", err)
		}
		f.questionIDs = append(f.questionIDs, question.ID)
	}

	user := model.User{Email: "alice@example.com", PasswordHash: "x", DisplayName: "Alice"}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	f.userID = user.ID
}

// correctOption returns the id of the correct option for a seeded question.
func (f *fixture) correctOption(t *testing.T, questionID uint) uint {
	t.Helper()
	var option model.AnswerOption
	if err := f.db.Where("question_id = ? AND is_correct = ?", questionID, true).First(&option).Error; err != nil {
		t.Fatalf("loading correct option: %v", err)
	}
	return option.ID
}

// wrongOption returns the id of some incorrect option for a seeded question.
func (f *fixture) wrongOption(t *testing.T, questionID uint) uint {
	t.Helper()
	var option model.AnswerOption
	if err := f.db.Where("question_id = ? AND is_correct = ?", questionID, false).First(&option).Error; err != nil {
		t.Fatalf("loading wrong option: %v", err)
	}
	return option.ID
}

func (f *fixture) optionIDs(t *testing.T, questionID uint) []uint {
	t.Helper()
	var options []model.AnswerOption
	if err := f.db.Where("question_id = ?", questionID).Order("display_order ASC").Find(&options).Error; err != nil {
		t.Fatalf("loading options: %v", err)
	}
	ids := make([]uint, len(options))
	for i, o := range options {
		ids[i] = o.ID
	}
	return ids
}
