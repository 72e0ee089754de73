package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-tracker/internal/api/http/response"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	// an empty body is an empty project and fails validation below
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Fail(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, http.StatusCreated, p)
}

func (h *Handler) list(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	items, err := h.svc.List(c.Request.Context(), domain.ListFilter{
		Status:    domain.Status(q.Status),
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	if items == nil {
		items = []domain.Project{}
	}

	response.List(c, items, len(items))
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, p)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		msg := bindErrorMessage(err)
		if errors.Is(err, io.EOF) {
			msg = "status is required"
		}
		response.Fail(c, http.StatusBadRequest, msg)
		return
	}

	p, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	res, err := h.svc.SoftDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, res)
}
