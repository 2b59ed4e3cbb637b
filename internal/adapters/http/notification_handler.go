package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// NotificationHandler serves the notification commands that are not plain collection access
type NotificationHandler struct {
	db     *repository.Database
	logger *logger.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(db *repository.Database, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		db:     db,
		logger: logger,
	}
}

// SendEmail godoc
// @Summary Send an email
// @Description Simulates delivery to the signed-in user's address and records an info notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body entities.EmailNotification true "Email"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} MessageResponse
// @Router /notifications/email [post]
func (h *NotificationHandler) SendEmail(c echo.Context) error {
	var req entities.EmailNotification
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var resp SuccessResponse
	err := h.db.Update(c.Request().Context(), func(doc map[string]interface{}) error {
		user, err := repository.Singular(doc, repository.ResourceUser)
		if err != nil {
			return err
		}
		email, _ := user["email"].(string)
		if !strings.EqualFold(email, req.To) {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied: the address does not match the user")
		}

		userID, _ := repository.IDOf(user["id"])
		repository.Append(doc, repository.ResourceNotifications, repository.Record{
			"userId":    userID,
			"title":     "Email sent: " + req.Subject,
			"message":   "Email sent to " + req.To,
			"type":      string(entities.NotificationInfo),
			"createdAt": time.Now().UTC().Format(time.RFC3339),
			"isRead":    false,
			"emailSent": true,
		})

		resp = SuccessResponse{Success: true, MessageID: "demo-" + uuid.NewString()}
		return nil
	})
	if err != nil {
		return storeError(err)
	}

	h.logger.Infow("Email accepted", "to", req.To, "subject", req.Subject, "message_id", resp.MessageID)
	return c.JSON(http.StatusOK, resp)
}

// MarkAllAsRead godoc
// @Summary Mark every notification of a user as read
// @Tags notifications
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} SuccessResponse
// @Router /notifications/mark-all/{userId} [patch]
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, err := intParam(c, "userId")
	if err != nil {
		return err
	}

	marked := 0
	err = h.db.Update(c.Request().Context(), func(doc map[string]interface{}) error {
		items, err := repository.Records(doc, repository.ResourceNotifications)
		if err != nil {
			return err
		}
		for _, item := range items {
			rec, ok := item.(repository.Record)
			if !ok {
				continue
			}
			if owner, _ := repository.IDOf(rec["userId"]); owner == userID && rec["isRead"] != true {
				rec["isRead"] = true
				marked++
			}
		}
		return nil
	})
	if err != nil {
		return storeError(err)
	}

	h.logger.Debugw("Notifications marked as read", "user_id", userID, "count", marked)
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
