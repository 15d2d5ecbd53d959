package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kryonic-fluke/PawRescue-sub001/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Handles GET /notifications - lists notification records for a user id or
// a recipient email.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.Query("userId")
	email := c.Query("email")

	if userID == "" && email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId or email query parameter is required"})
		return
	}

	if userID != "" {
		response, err := h.notificationService.GetUserNotifications(userID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		c.JSON(http.StatusOK, response)
		return
	}

	response, err := h.notificationService.GetRecipientNotifications(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, response)
}

// Handles GET /admin/outbox/stats - delivery pipeline counters for
// monitoring: outbox status counts plus notifications still awaiting the
// consumer.
func (h *NotificationHandler) GetOutboxStats(c *gin.Context) {
	stats, err := h.notificationService.OutboxStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pending, err := h.notificationService.PendingNotifications()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"outbox": stats, "pending_notifications": pending})
}
