package http

import (
	"math/rand"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// ConnectRequest links a chat with the code issued by the bot
type ConnectRequest struct {
	UserID int    `json:"userId" validate:"required"`
	Token  string `json:"token" validate:"required"`
}

// DisconnectRequest removes a chat link
type DisconnectRequest struct {
	UserID int `json:"userId" validate:"required"`
}

// SettingsRequest replaces the delivery settings of a chat link
type SettingsRequest struct {
	Settings entities.TelegramSettings `json:"settings"`
}

// TelegramHandler simulates the chat bot integration
type TelegramHandler struct {
	db     *repository.Database
	logger *logger.Logger
}

// NewTelegramHandler creates a new telegram handler
func NewTelegramHandler(db *repository.Database, logger *logger.Logger) *TelegramHandler {
	return &TelegramHandler{
		db:     db,
		logger: logger,
	}
}

// Config godoc
// @Summary Chat link of a user
// @Tags telegram
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} entities.TelegramConfig
// @Failure 404 {object} MessageResponse
// @Router /telegram/config/{userId} [get]
func (h *TelegramHandler) Config(c echo.Context) error {
	userID, err := intParam(c, "userId")
	if err != nil {
		return err
	}

	configs, err := h.db.List(repository.ResourceTelegram, nil)
	if err != nil {
		return storeError(err)
	}
	for _, cfg := range configs {
		if owner, _ := repository.IDOf(cfg["userId"]); owner == userID {
			return c.JSON(http.StatusOK, cfg)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Telegram is not connected")
}

// Connect godoc
// @Summary Link a chat
// @Tags telegram
// @Accept json
// @Produce json
// @Param request body ConnectRequest true "Link code"
// @Success 200 {object} entities.TelegramConfig
// @Failure 400 {object} MessageResponse
// @Router /telegram/connect [post]
func (h *TelegramHandler) Connect(c echo.Context) error {
	var req ConnectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid connection code")
	}

	cfg := repository.Record{
		"userId":    req.UserID,
		"chatId":    strconv.FormatInt(rand.Int63n(1_000_000_000), 10),
		"username":  "@user" + strconv.Itoa(rand.Intn(10000)),
		"connected": true,
		"settings": repository.Record{
			"tasks":     true,
			"events":    true,
			"important": false,
		},
	}

	var saved repository.Record
	err := h.db.Update(c.Request().Context(), func(doc map[string]interface{}) error {
		removeConfigs(doc, req.UserID)
		saved = repository.Append(doc, repository.ResourceTelegram, cfg)
		return nil
	})
	if err != nil {
		return storeError(err)
	}

	h.logger.Infow("Telegram connected", "user_id", req.UserID, "username", cfg["username"])
	return c.JSON(http.StatusOK, saved)
}

// Disconnect godoc
// @Summary Remove a chat link
// @Tags telegram
// @Accept json
// @Produce json
// @Param request body DisconnectRequest true "User"
// @Success 200 {object} SuccessResponse
// @Router /telegram/disconnect [post]
func (h *TelegramHandler) Disconnect(c echo.Context) error {
	var req DisconnectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.db.Update(c.Request().Context(), func(doc map[string]interface{}) error {
		removeConfigs(doc, req.UserID)
		return nil
	})
	if err != nil {
		return storeError(err)
	}

	h.logger.Infow("Telegram disconnected", "user_id", req.UserID)
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Settings godoc
// @Summary Update delivery settings
// @Tags telegram
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body SettingsRequest true "Settings"
// @Success 200 {object} entities.TelegramConfig
// @Failure 404 {object} MessageResponse
// @Router /telegram/settings/{userId} [patch]
func (h *TelegramHandler) Settings(c echo.Context) error {
	userID, err := intParam(c, "userId")
	if err != nil {
		return err
	}
	var req SettingsRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	var updated repository.Record
	err = h.db.Update(c.Request().Context(), func(doc map[string]interface{}) error {
		items, err := repository.Records(doc, repository.ResourceTelegram)
		if err != nil {
			return err
		}
		for _, item := range items {
			rec, ok := item.(repository.Record)
			if !ok {
				continue
			}
			if owner, _ := repository.IDOf(rec["userId"]); owner == userID {
				rec["settings"] = repository.Record{
					"tasks":     req.Settings.Tasks,
					"events":    req.Settings.Events,
					"important": req.Settings.Important,
				}
				updated = rec
				return nil
			}
		}
		return echo.NewHTTPError(http.StatusNotFound, "Telegram is not connected")
	})
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Send godoc
// @Summary Send a chat message
// @Description Delivery is simulated and only logged
// @Tags telegram
// @Accept json
// @Produce json
// @Param request body entities.TelegramMessage true "Message"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} MessageResponse
// @Router /telegram/send [post]
func (h *TelegramHandler) Send(c echo.Context) error {
	var msg entities.TelegramMessage
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.logger.Infow("Telegram message", "chat_id", msg.ChatID, "parse_mode", msg.ParseMode, "length", len(msg.Text))
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func removeConfigs(doc map[string]interface{}, userID int) {
	items, _ := repository.Records(doc, repository.ResourceTelegram)
	kept := make([]interface{}, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(repository.Record); ok {
			if owner, _ := repository.IDOf(rec["userId"]); owner == userID {
				continue
			}
		}
		kept = append(kept, item)
	}
	doc[repository.ResourceTelegram] = kept
}
