package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hqnguyen/elevenprep/config"
	"github.com/hqnguyen/elevenprep/internal/dto"
	"github.com/hqnguyen/elevenprep/internal/model"
	"github.com/hqnguyen/elevenprep/internal/repository"
	"github.com/hqnguyen/elevenprep/internal/service"
	"gorm.io/gorm"
)

func TestSignUpAndLogIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	signup, err := f.auth.SignUp(ctx, dto.SignUpRequest{
		Email:           "carol@example.com",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
		DisplayName:     "Carol",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if signup.Token == "" {
		t.Fatalf("signup must issue a token")
	}

	parsed, err := f.auth.ParseToken(signup.Token)
	if err != nil {
		t.Fatalf("token parse failed: %v", err)
	}
	if parsed != signup.User.ID {
		t.Fatalf("token subject %v, want %v", parsed, signup.User.ID)
	}

	login, err := f.auth.LogIn(ctx, dto.LogInRequest{Email: "carol@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.User.ID != signup.User.ID {
		t.Fatalf("login returned a different user")
	}

	_, err = f.auth.LogIn(ctx, dto.LogInRequest{Email: "carol@example.com", Password: "wrong"})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := dto.SignUpRequest{
		Email:           "dave@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		DisplayName:     "Dave",
	}
	if _, err := f.auth.SignUp(ctx, req); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := f.auth.SignUp(ctx, req); !errors.Is(err, model.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)

	year := 6
	resp, err := f.auth.UpdateProfile(f.userID, dto.UpdateProfileRequest{DisplayName: "Alice B", YearGroup: &year})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if resp.DisplayName != "Alice B" || resp.YearGroup == nil || *resp.YearGroup != 6 {
		t.Fatalf("profile not updated: %+v", resp)
	}
}

// slowUserRepo stalls lookups to exercise the auth deadline.
type slowUserRepo struct {
	delay time.Duration
}

func (r *slowUserRepo) Create(*model.User) error { return nil }
func (r *slowUserRepo) FindByEmail(string) (*model.User, error) {
	time.Sleep(r.delay)
	return nil, gorm.ErrRecordNotFound
}
func (r *slowUserRepo) FindByID(uuid.UUID) (*model.User, error) { return nil, gorm.ErrRecordNotFound }
func (r *slowUserRepo) Update(*model.User) error                { return nil }

var _ repository.UserRepository = (*slowUserRepo)(nil)

func TestAuthTimeoutSurfacesRetryGuidance(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.Timeout = 20 * time.Millisecond

	auth := service.NewAuthService(&slowUserRepo{delay: 500 * time.Millisecond}, cfg)

	_, err := auth.LogIn(context.Background(), dto.LogInRequest{Email: "x@example.com", Password: "pw"})
	if !errors.Is(err, model.ErrAuthTimeout) {
		t.Fatalf("expected ErrAuthTimeout, got %v", err)
	}
}
