package handlers

import (
	"net/http"
	"strings"
	"time"

	"projectmanager/internal/domain"

	"github.com/gin-gonic/gin"
)

type TaskRequest struct {
	Title       string  `json:"title" binding:"required,notblank,max=200"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate" binding:"omitempty,isodate"`
}

func (r TaskRequest) input() domain.TaskInput {
	in := domain.TaskInput{Title: r.Title, Description: r.Description}
	// blank means no due date; the format is already checked by isodate
	if r.DueDate != nil && strings.TrimSpace(*r.DueDate) != "" {
		if d, err := time.Parse(domain.DateLayout, strings.TrimSpace(*r.DueDate)); err == nil {
			in.DueDate = &d
		}
	}
	return in
}

type TaskResponse struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"projectId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Completed   bool    `json:"completed"`
}

func newTaskResponse(t *domain.Task) TaskResponse {
	res := TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
	if t.DueDate != nil {
		d := t.DueDate.Format(domain.DateLayout)
		res.DueDate = &d
	}
	return res
}

func newTaskResponses(tasks []*domain.Task) []TaskResponse {
	res := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, newTaskResponse(t))
	}
	return res
}

// taskPath resolves the caller and both path ids.
func (h *Handler) taskPath(c *gin.Context, withTask bool) (userID, projectID, taskID int64, ok bool) {
	if userID, ok = h.currentUserID(c); !ok {
		return
	}
	if projectID, ok = pathID(c, "id"); !ok {
		return
	}
	if withTask {
		taskID, ok = pathID(c, "taskId")
	}
	return
}

func (h *Handler) AddTask(c *gin.Context) {
	userID, projectID, _, ok := h.taskPath(c, false)
	if !ok {
		return
	}
	var req TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.Tasks.Add(c.Request.Context(), userID, projectID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(t))
}

func (h *Handler) ListTasks(c *gin.Context) {
	userID, projectID, _, ok := h.taskPath(c, false)
	if !ok {
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponses(tasks))
}

func (h *Handler) ListTasksPaged(c *gin.Context) {
	userID, projectID, _, ok := h.taskPath(c, false)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}

	page, err := h.Tasks.ListPaged(c.Request.Context(), userID, projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Page[TaskResponse]{
		Content:       newTaskResponses(page.Content),
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Number:        page.Number,
		Size:          page.Size,
		First:         page.First,
		Last:          page.Last,
	})
}

func (h *Handler) GetTask(c *gin.Context) {
	userID, projectID, taskID, ok := h.taskPath(c, true)
	if !ok {
		return
	}

	t, err := h.Tasks.Get(c.Request.Context(), userID, projectID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(t))
}

func (h *Handler) UpdateTask(c *gin.Context) {
	userID, projectID, taskID, ok := h.taskPath(c, true)
	if !ok {
		return
	}
	var req TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.Tasks.Update(c.Request.Context(), userID, projectID, taskID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(t))
}

func (h *Handler) ToggleTask(c *gin.Context) {
	userID, projectID, taskID, ok := h.taskPath(c, true)
	if !ok {
		return
	}

	t, err := h.Tasks.ToggleComplete(c.Request.Context(), userID, projectID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(t))
}

func (h *Handler) DeleteTask(c *gin.Context) {
	userID, projectID, taskID, ok := h.taskPath(c, true)
	if !ok {
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), userID, projectID, taskID); err != nil {
		respondError(c, err)
		return
	}
	noContent(c)
}
