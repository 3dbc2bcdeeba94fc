package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/service"
	"parent-teacher-bridge/backend/pkg/response"
)

// SubjectHandler 科目 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// ListSubjects GET /api/v1/admin/subjects
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	list, err := h.subjectSvc.List(c.Request.Context())
	if err != nil {
		handleSubjectError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// SearchSubjects GET /api/v1/admin/subjects/search?term=
func (h *SubjectHandler) SearchSubjects(c *gin.Context) {
	var req dto.SearchRequest
	if !bindQuery(c, &req) {
		return
	}
	list, err := h.subjectSvc.Search(c.Request.Context(), req.Term)
	if err != nil {
		handleSubjectError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetSubject GET /api/v1/admin/subjects/:id
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	subject, err := h.subjectSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleSubjectError(c, err)
		return
	}
	response.OK(c, subject)
}

// CreateSubject POST /api/v1/admin/subjects
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req dto.SubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	subject, err := h.subjectSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleSubjectError(c, err)
		return
	}
	response.Created(c, subject)
}

// UpdateSubject PUT /api/v1/admin/subjects/:id
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	subject, err := h.subjectSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleSubjectError(c, err)
		return
	}
	response.OK(c, subject)
}

// DeleteSubject DELETE /api/v1/admin/subjects/:id
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.subjectSvc.Delete(c.Request.Context(), id); err != nil {
		handleSubjectError(c, err)
		return
	}
	response.OK(c, nil)
}

func handleSubjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 15001, err.Error())
	case errors.Is(err, service.ErrSubjectCodeExists):
		response.Conflict(c, 15002, err.Error())
	case errors.Is(err, service.ErrSearchTermRequired):
		response.BadRequest(c, 15003, err.Error())
	default:
		response.InternalError(c)
	}
}
