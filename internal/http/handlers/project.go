package handlers

import (
	"net/http"
	"strconv"

	"projectmanager/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProjectRequest struct {
	Title       string  `json:"title" binding:"required,notblank,max=150"`
	Description *string `json:"description"`
}

func (h *Handler) CreateProject(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.Projects.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListProjects(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	res, err := h.Projects.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if res == nil {
		res = []*domain.Project{}
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListProjectsPaged(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}

	page, err := h.Projects.ListPaged(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetProject(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.Projects.GetOwned(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.Projects.Update(c.Request.Context(), userID, projectID, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Projects.Delete(c.Request.Context(), userID, projectID); err != nil {
		respondError(c, err)
		return
	}
	noContent(c)
}

func (h *Handler) GetProgress(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	progress, err := h.Progress.Get(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// pageRequest reads the 0-based page and size query parameters.
func pageRequest(c *gin.Context) (domain.PageRequest, bool) {
	req := domain.PageRequest{Size: domain.DefaultPageSize}
	fields := map[string]string{}

	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil || n < 0:
			fields["page"] = "must be a non-negative integer"
		case n > domain.MaxPage:
			fields["page"] = "must be at most " + strconv.Itoa(domain.MaxPage)
		}
		req.Page = n
	}
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			fields["size"] = "must be a positive integer"
		}
		req.Size = n
	}

	if len(fields) > 0 {
		respondValidation(c, "Invalid paging parameters", fields)
		return domain.PageRequest{}, false
	}
	return req.Normalize(), true
}
