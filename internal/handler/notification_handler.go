package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartcampus/scs-api/internal/models"
	"github.com/smartcampus/scs-api/internal/service"
	"github.com/smartcampus/scs-api/pkg/response"
)

type notificationReader interface {
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error)
}

// NotificationHandler exposes the notification log.
type NotificationHandler struct {
	service notificationReader
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// List godoc
// @Summary List department notifications, newest first
// @Tags Notifications
// @Produce json
// @Param departmentId query string true "Department ID"
// @Param limit query int false "Maximum rows (default 50)"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	filter := models.NotificationFilter{
		DepartmentID: c.Query("departmentId"),
		Limit:        queryInt(c, "limit"),
	}
	notifications, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notifications, nil)
}
