package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	contactUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type ContactHandler struct {
	contactUseCase *contactUC.ContactUseCase
	logger         logger.Logger
}

func NewContactHandler(uc *contactUC.ContactUseCase, log logger.Logger) *ContactHandler {
	return &ContactHandler{contactUseCase: uc, logger: log}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("request body is not valid JSON", err))
		return
	}

	msg, err := h.contactUseCase.Submit(c.Request.Context(), contactUC.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		c.Error(apperror.WithMessage(err, "Failed to send message"))
		return
	}
	c.JSON(http.StatusAccepted, ContactResponse{
		ID:      msg.ID.String(),
		Message: "Message sent! Thank you for reaching out.",
	})
}
