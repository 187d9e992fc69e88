package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type AuthHandler struct {
	sessions *auth.SessionUseCase
	cookies  *SessionCookies
	logger   logger.Logger
}

func NewAuthHandler(sessions *auth.SessionUseCase, cookies *SessionCookies, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		cookies:  cookies,
		logger:   log,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	// An empty or missing password is left to the gate, which rejects it
	// like any other mismatch.
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request body", err))
		return
	}

	store := h.cookies.For(c)
	output, err := h.sessions.Login(c.Request.Context(), store, auth.LoginInput{Password: req.Password})
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) {
			err = apperror.WithMessage(err, "Invalid password")
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Authenticated: output.Authenticated,
		Token:         store.Token(),
		Message:       "Login successful!",
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context(), h.cookies.For(c))
	c.JSON(http.StatusOK, SessionResponse{Authenticated: false, Message: "Logged out"})
}

func (h *AuthHandler) Session(c *gin.Context) {
	gate, err := h.sessions.Open(c.Request.Context(), h.cookies.For(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Authenticated: gate.IsAuthenticated()})
}
