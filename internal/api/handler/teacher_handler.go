package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/internal/service"
	"parent-teacher-bridge/backend/pkg/response"
)

// TeacherHandler 教师账号 HTTP 处理器
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// ListTeachers 教师列表，?active=true 仅返回在职教师
// GET /api/v1/admin/teachers
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	var (
		list []dto.TeacherResponse
		err  error
	)
	if c.Query("active") == "true" {
		list, err = h.teacherSvc.ListActive(c.Request.Context())
	} else {
		list, err = h.teacherSvc.List(c.Request.Context())
	}
	if err != nil {
		handleTeacherError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// SearchTeachers GET /api/v1/admin/teachers/search?term=
func (h *TeacherHandler) SearchTeachers(c *gin.Context) {
	var req dto.SearchRequest
	if !bindQuery(c, &req) {
		return
	}
	list, err := h.teacherSvc.Search(c.Request.Context(), req.Term)
	if err != nil {
		handleTeacherError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetTeacher 管理员可查看任意教师，教师仅能查看本人
// GET /api/v1/admin/teachers/:id, GET /api/v1/teachers/:id
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	callerID, role, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	if role == model.RoleTeacher && callerID != id {
		response.Forbidden(c, 10003, "无权限访问")
		return
	}

	teacher, err := h.teacherSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleTeacherError(c, err)
		return
	}
	response.OK(c, teacher)
}

// CreateTeacher POST /api/v1/admin/teachers
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	teacher, err := h.teacherSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleTeacherError(c, err)
		return
	}
	response.Created(c, teacher)
}

// UpdateTeacher PUT /api/v1/admin/teachers/:id
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	teacher, err := h.teacherSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleTeacherError(c, err)
		return
	}
	response.OK(c, teacher)
}

// DeleteTeacher DELETE /api/v1/admin/teachers/:id
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.teacherSvc.Delete(c.Request.Context(), id); err != nil {
		handleTeacherError(c, err)
		return
	}
	response.OK(c, nil)
}

func handleTeacherError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrTeacherEmailExists):
		response.Conflict(c, 13002, err.Error())
	case errors.Is(err, service.ErrSearchTermRequired):
		response.BadRequest(c, 13003, err.Error())
	default:
		response.InternalError(c)
	}
}
