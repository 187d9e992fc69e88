package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
	"go.uber.org/zap"
)

const AdminLoginPath = "/admin/login"

// AdminGuard lets a request through only when its session gate is
// authenticated. Browsers are sent to the login page, API clients get 401.
func AdminGuard(sessions *authUC.SessionUseCase, cookies *SessionCookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		gate, err := sessions.Open(c.Request.Context(), cookies.For(c))
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		if !gate.IsAuthenticated() {
			if wantsHTML(c) {
				c.Redirect(http.StatusFound, AdminLoginPath)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   apperror.ErrUnauthorized.Error(),
				"message": "Admin login required",
			})
			return
		}

		c.Next()
	}
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unexpected error", err)
		}
		status := apperror.ToHTTPStatus(appErr)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, fields...)
		} else {
			log.Warn("Request rejected", append(fields, zap.String("error", err.Error()))...)
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(status, appErr.ToJSON())
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
