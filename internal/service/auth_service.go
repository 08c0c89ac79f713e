package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hqnguyen/elevenprep/config"
	"github.com/hqnguyen/elevenprep/internal/dto"
	"github.com/hqnguyen/elevenprep/internal/model"
	"github.com/hqnguyen/elevenprep/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error)
	LogIn(ctx context.Context, req dto.LogInRequest) (*dto.AuthResponse, error)
	ParseToken(token string) (uuid.UUID, error)
	GetProfile(userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type authClaims struct {
	jwt.RegisteredClaims
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	timeout   time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.Auth.JWTSecret),
		tokenTTL:  cfg.Auth.TokenTTL,
		timeout:   cfg.Auth.Timeout,
	}
}

func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error) {
	var resp *dto.AuthResponse
	err := s.withTimeout(ctx, func() error {
		if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
			return model.ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking email: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		user := model.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			DisplayName:  req.DisplayName,
		}
		if err := s.userRepo.Create(&user); err != nil {
			log.Error().Err(err).Str("email", req.Email).Msg("SignUp: failed to create user")
			return fmt.Errorf("creating user: %w", err)
		}

		resp, err = s.authResponse(&user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *authService) LogIn(ctx context.Context, req dto.LogInRequest) (*dto.AuthResponse, error) {
	var resp *dto.AuthResponse
	err := s.withTimeout(ctx, func() error {
		user, err := s.userRepo.FindByEmail(req.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrInvalidCredentials
			}
			return fmt.Errorf("looking up user: %w", err)
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			return model.ErrInvalidCredentials
		}
		resp, err = s.authResponse(user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *authService) ParseToken(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &authClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, model.ErrInvalidCredentials
	}
	claims, ok := token.Claims.(*authClaims)
	if !ok {
		return uuid.Nil, model.ErrInvalidCredentials
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, model.ErrInvalidCredentials
	}
	return id, nil
}

func (s *authService) GetProfile(userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *authService) UpdateProfile(userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	user.DisplayName = req.DisplayName
	user.YearGroup = req.YearGroup
	if err := s.userRepo.Update(user); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("UpdateProfile: failed to save user")
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *authService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *authService) authResponse(user *model.User) (*dto.AuthResponse, error) {
	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	var userResp dto.UserResponse
	copier.Copy(&userResp, user)
	return &dto.AuthResponse{Token: token, User: userResp}, nil
}

// withTimeout bounds an auth operation by the configured deadline. A slow
// backend surfaces ErrAuthTimeout with retry guidance instead of hanging the
// caller; the abandoned operation finishes in the background.
func (s *authService) withTimeout(ctx context.Context, fn func() error) error {
	if s.timeout <= 0 {
		return fn()
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		log.Warn().Dur("timeout", s.timeout).Msg("Auth operation exceeded deadline")
		return model.ErrAuthTimeout
	}
}
