package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/content"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const confirmHeader = "X-Confirm"

// CollectionHandler serves one content collection. Routes and messages
// come from the collection schema.
type CollectionHandler[T any, PT portfolio.EntityPtr[T]] struct {
	manager *content.Manager[T, PT]
	logger  logger.Logger
}

func NewCollectionHandler[T any, PT portfolio.EntityPtr[T]](m *content.Manager[T, PT], log logger.Logger) *CollectionHandler[T, PT] {
	return &CollectionHandler[T, PT]{manager: m, logger: log}
}

// Routes mounts collection routes on a router group.
type Routes interface {
	RegisterPublic(rg *gin.RouterGroup)
	RegisterAdmin(rg *gin.RouterGroup)
}

func (h *CollectionHandler[T, PT]) path() string {
	return "/" + h.manager.Schema().Route
}

func (h *CollectionHandler[T, PT]) RegisterPublic(rg *gin.RouterGroup) {
	if h.manager.Schema().Singleton {
		rg.GET(h.path(), h.Current)
		return
	}
	rg.GET(h.path(), h.List)
}

func (h *CollectionHandler[T, PT]) RegisterAdmin(rg *gin.RouterGroup) {
	if h.manager.Schema().Singleton {
		rg.GET(h.path(), h.Current)
		rg.PUT(h.path(), h.SaveSingleton)
		return
	}
	rg.GET(h.path(), h.List)
	rg.POST(h.path(), h.Create)
	rg.GET(h.path()+"/:id", h.Get)
	rg.PUT(h.path()+"/:id", h.Update)
	rg.DELETE(h.path()+"/:id", h.Delete)
}

func (h *CollectionHandler[T, PT]) label() string {
	return h.manager.Schema().Label
}

func (h *CollectionHandler[T, PT]) fetchFailed(err error) error {
	return apperror.WithMessage(err, fmt.Sprintf("Failed to fetch %s", h.manager.Schema().Plural))
}

func (h *CollectionHandler[T, PT]) saveFailed(err error) error {
	return apperror.WithMessage(err, fmt.Sprintf("Failed to save %s", strings.ToLower(h.label())))
}

func (h *CollectionHandler[T, PT]) List(c *gin.Context) {
	items, err := h.manager.Load(c.Request.Context())
	if err != nil {
		c.Error(h.fetchFailed(err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// Current returns the singleton row, or null when none has been saved.
func (h *CollectionHandler[T, PT]) Current(c *gin.Context) {
	item, err := h.manager.Current(c.Request.Context())
	if err != nil {
		c.Error(h.fetchFailed(err))
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CollectionHandler[T, PT]) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}
	item, err := h.manager.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CollectionHandler[T, PT]) Create(c *gin.Context) {
	item, ok := h.bind(c)
	if !ok {
		return
	}
	saved, err := h.manager.Create(c.Request.Context(), item)
	if err != nil {
		c.Error(h.saveFailed(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("%s added successfully!", h.label()),
		"data":    saved,
	})
}

func (h *CollectionHandler[T, PT]) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}
	item, ok := h.bind(c)
	if !ok {
		return
	}
	saved, err := h.manager.Update(c.Request.Context(), id, item)
	if err != nil {
		c.Error(h.saveFailed(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s updated successfully!", h.label()),
		"data":    saved,
	})
}

func (h *CollectionHandler[T, PT]) SaveSingleton(c *gin.Context) {
	item, ok := h.bind(c)
	if !ok {
		return
	}
	saved, err := h.manager.SaveSingleton(c.Request.Context(), item)
	if err != nil {
		c.Error(h.saveFailed(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s updated successfully!", h.label()),
		"data":    saved,
	})
}

// Delete needs ?confirm=true or an X-Confirm: true header. Without it the
// row is kept and the prompt is returned with 428.
func (h *CollectionHandler[T, PT]) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}
	deleted, err := h.manager.Remove(c.Request.Context(), id, requestConfirmer(c))
	if err != nil {
		c.Error(apperror.WithMessage(err, fmt.Sprintf("Failed to delete %s", strings.ToLower(h.label()))))
		return
	}
	if !deleted {
		c.JSON(http.StatusPreconditionRequired, gin.H{
			"deleted": false,
			"message": h.manager.DeletePrompt(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted": true,
		"message": fmt.Sprintf("%s deleted successfully!", h.label()),
	})
}

func (h *CollectionHandler[T, PT]) bind(c *gin.Context) (*T, bool) {
	item := new(T)
	if err := c.ShouldBindJSON(item); err != nil {
		c.Error(h.saveFailed(apperror.NewInvalidInput("request body is not valid JSON", err)))
		return nil, false
	}
	return item, true
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.NewInvalidInput("invalid ID", err)
	}
	return id, nil
}

func requestConfirmer(c *gin.Context) content.Confirmer {
	return content.ConfirmFunc(func(context.Context, string) bool {
		v := c.Query("confirm")
		if v == "" {
			v = c.GetHeader(confirmHeader)
		}
		ok, _ := strconv.ParseBool(v)
		return ok
	})
}
