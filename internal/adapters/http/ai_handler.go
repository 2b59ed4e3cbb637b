package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// Suggestions is the static list served to the assistant
var Suggestions = []entities.Suggestion{
	{Text: "Set aside time to plan the week's tasks", Type: "planning", Priority: 5},
	{Text: "Break large tasks into subtasks to work more effectively", Type: "productivity", Priority: 4},
	{Text: "Schedule breaks between study sessions to keep your focus", Type: "rest", Priority: 3},
}

// AIHandler serves the assistant commands
type AIHandler struct {
	logger *logger.Logger
}

// NewAIHandler creates a new assistant handler
func NewAIHandler(logger *logger.Logger) *AIHandler {
	return &AIHandler{logger: logger}
}

// Suggestions godoc
// @Summary Productivity suggestions
// @Tags ai
// @Produce json
// @Success 200 {array} entities.Suggestion
// @Router /ai/suggestions [post]
func (h *AIHandler) Suggestions(c echo.Context) error {
	return c.JSON(http.StatusOK, Suggestions)
}

// ApplyRecommendations godoc
// @Summary Apply recommendations
// @Tags ai
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /ai/apply-recommendations [post]
func (h *AIHandler) ApplyRecommendations(c echo.Context) error {
	h.logger.Debugw("Recommendations applied", "ip", c.RealIP())
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
