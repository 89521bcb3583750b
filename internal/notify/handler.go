package notify

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tradecase-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the notifications service. All routes are
// registered under the admin group.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterAdminRoutes attaches notification routes to the admin group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.listNotifications)
	rg.PUT("/notifications/:id/read", h.markRead)
	rg.PUT("/notifications/:id/archive", h.archive)
	rg.DELETE("/notifications/:id", h.deleteNotification)
}

func (h *Handler) listNotifications(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	list, err := h.Svc.List(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "status must be unread, read or archived", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list notifications", nil)
		}
		return
	}

	items := make([]gin.H, 0, len(list))
	for _, n := range list {
		item := gin.H{
			"id":          n.ID,
			"type":        n.Type,
			"priority":    n.Priority,
			"title":       n.Title,
			"body":        n.Body,
			"relatedType": n.RelatedType,
			"relatedId":   n.RelatedID,
			"status":      n.Status,
			"createdAt":   n.CreatedAt,
		}
		if n.ExpiresAt != nil {
			item["expiresAt"] = n.ExpiresAt
		}
		items = append(items, item)
	}
	respond.JSON(c, http.StatusOK, gin.H{"notifications": items})
}

func (h *Handler) markRead(c *gin.Context) {
	h.updateStatus(c, h.Svc.MarkRead)
}

func (h *Handler) archive(c *gin.Context) {
	h.updateStatus(c, h.Svc.Archive)
}

func (h *Handler) updateStatus(c *gin.Context, apply func(ctx context.Context, id string) error) {
	notificationID := c.Param("id")
	if err := apply(c.Request.Context(), notificationID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "notification not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "notification id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update notification", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) deleteNotification(c *gin.Context) {
	h.updateStatus(c, h.Svc.Delete)
}
