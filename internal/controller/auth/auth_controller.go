package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hqnguyen/elevenprep/internal/controller/middleware"
	"github.com/hqnguyen/elevenprep/internal/dto"
	"github.com/hqnguyen/elevenprep/internal/model"
	"github.com/hqnguyen/elevenprep/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// SignUp godoc
// @Summary Register a new user
// @Description Creates an account and returns a signed token. Password and confirmation must match.
// @Tags Auth
// @Accept json
// @Produce json
// @Param signup_data body dto.SignUpRequest true "Registration data"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure (mismatched passwords, missing fields)"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 504 {object} dto.ErrorResponse "Auth backend timed out"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req dto.SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.authService.SignUp(ctx.Request.Context(), req)
	if err != nil {
		c.respondAuthError(ctx, err, "SignUp")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// LogIn godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param login_data body dto.LogInRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Bad credentials"
// @Failure 504 {object} dto.ErrorResponse "Auth backend timed out"
// @Router /auth/login [post]
func (c *AuthController) LogIn(ctx *gin.Context) {
	var req dto.LogInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.authService.LogIn(ctx.Request.Context(), req)
	if err != nil {
		c.respondAuthError(ctx, err, "LogIn")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /me [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}
	resp, err := c.authService.GetProfile(userID)
	if err != nil {
		c.respondAuthError(ctx, err, "GetProfile")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateProfile godoc
// @Summary Update display name and year group
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile_data body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /me [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.authService.UpdateProfile(userID, req)
	if err != nil {
		c.respondAuthError(ctx, err, "UpdateProfile")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *AuthController) respondAuthError(ctx *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, model.ErrEmailTaken):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, model.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, model.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, model.ErrAuthTimeout):
		ctx.JSON(http.StatusGatewayTimeout, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("op", op).Msg("Auth controller: unexpected service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Something went wrong, please retry"})
	}
}
