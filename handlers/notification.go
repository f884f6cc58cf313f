package handlers

import (
	"net/http"

	"stayfinder/middleware"
	"stayfinder/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	svc    notification.NotificationService
	logger *zap.Logger
}

func NewNotificationHandler(svc notification.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, logger: loggerOrNop(logger)}
}

func (h *NotificationHandler) List(c *gin.Context) {
	views, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, views)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.svc.MarkRead(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, n)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	modified, err := h.svc.MarkAllRead(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondMessage(c, "All notifications marked as read", gin.H{"modified": modified})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.svc.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"count": count})
}

func (h *NotificationHandler) DeleteRead(c *gin.Context) {
	deleted, err := h.svc.DeleteRead(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondMessage(c, "Read notifications deleted", gin.H{"deleted": deleted})
}
