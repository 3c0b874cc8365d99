package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Domenick1991/flightbook/internal/repository"
	"github.com/Domenick1991/flightbook/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service auth.AuthUseCase
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

func NewAuthHandler(service auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req auth.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(c, http.StatusBadRequest, "Missing required fields", nil)
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			writeError(c, http.StatusBadRequest, "Failed to register user", err)
			return
		}
		writeError(c, http.StatusInternalServerError, "Failed to register user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(c, http.StatusBadRequest, "Invalid credentials", nil)
		default:
			writeError(c, http.StatusInternalServerError, "Failed to log in", err)
		}
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  loginUser{ID: user.ID, Role: user.Role},
	})
}
