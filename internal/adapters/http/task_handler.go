package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// TaskHandler serves task patches, which keep the stats counters in step
// with completion changes
type TaskHandler struct {
	db     *repository.Database
	logger *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(db *repository.Database, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		db:     db,
		logger: logger,
	}
}

// Patch godoc
// @Summary Update a task
// @Description Merges fields into a task. A change of completed adjusts the stats using the stored task.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 404 {object} MessageResponse
// @Router /tasks/{id} [patch]
func (h *TaskHandler) Patch(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	patch, err := bindRecord(c)
	if err != nil {
		return err
	}

	var updated repository.Record
	err = h.db.Update(c.Request().Context(), func(doc map[string]interface{}) error {
		task, err := repository.Find(doc, repository.ResourceTasks, id)
		if err != nil {
			return err
		}

		if completed, ok := patch["completed"].(bool); ok {
			wasCompleted, _ := task["completed"].(bool)
			if completed != wasCompleted {
				stats, err := repository.Singular(doc, repository.ResourceStats)
				if err != nil {
					return err
				}
				applyCompletion(stats, task["priority"] == string(entities.PriorityHigh), completed)
				h.logger.Debugw("Stats adjusted for task", "task_id", id, "completed", completed)
			}
		}

		for k, v := range patch {
			if k != "id" {
				task[k] = v
			}
		}
		updated = task
		return nil
	})
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func applyCompletion(stats repository.Record, high, completed bool) {
	delta := 1
	if !completed {
		delta = -1
	}

	add := func(key string, n int) {
		v, _ := repository.IDOf(stats[key])
		stats[key] = v + n
	}
	add("activeTasks", -delta)
	add("completedToday", delta)
	if high {
		add("urgentTasks", -delta)
	}
}
