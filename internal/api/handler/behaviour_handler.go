package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/service"
	"parent-teacher-bridge/backend/pkg/response"
)

// BehaviourHandler 行为记录 HTTP 处理器
// 路由均挂在 /api/v1/teacher/students/:studentId/behaviours 下，记录归属当前教师
type BehaviourHandler struct {
	behaviourSvc service.BehaviourService
}

// NewBehaviourHandler 创建 BehaviourHandler
func NewBehaviourHandler(behaviourSvc service.BehaviourService) *BehaviourHandler {
	return &BehaviourHandler{behaviourSvc: behaviourSvc}
}

// scope 提取教师 ID 与路径中的学生 ID
func (h *BehaviourHandler) scope(c *gin.Context) (teacherID, studentID int64, ok bool) {
	if studentID, ok = ParseIDParam(c, "studentId"); !ok {
		return 0, 0, false
	}
	if teacherID, ok = MustGetUserID(c); !ok {
		return 0, 0, false
	}
	return teacherID, studentID, true
}

// ListBehaviours GET .../behaviours
func (h *BehaviourHandler) ListBehaviours(c *gin.Context) {
	teacherID, studentID, ok := h.scope(c)
	if !ok {
		return
	}
	list, err := h.behaviourSvc.List(c.Request.Context(), teacherID, studentID)
	if err != nil {
		handleBehaviourError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetBehaviour GET .../behaviours/:behaviourId
func (h *BehaviourHandler) GetBehaviour(c *gin.Context) {
	teacherID, studentID, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "behaviourId")
	if !ok {
		return
	}
	record, err := h.behaviourSvc.GetByID(c.Request.Context(), teacherID, studentID, id)
	if err != nil {
		handleBehaviourError(c, err)
		return
	}
	response.OK(c, record)
}

// CreateBehaviour notify_parent=true 时邮件通知已关联家长
// POST .../behaviours
func (h *BehaviourHandler) CreateBehaviour(c *gin.Context) {
	teacherID, studentID, ok := h.scope(c)
	if !ok {
		return
	}
	var req dto.BehaviourRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.behaviourSvc.Create(c.Request.Context(), teacherID, studentID, &req)
	if err != nil {
		handleBehaviourError(c, err)
		return
	}
	response.Created(c, record)
}

// UpdateBehaviour PUT .../behaviours/:behaviourId
func (h *BehaviourHandler) UpdateBehaviour(c *gin.Context) {
	teacherID, studentID, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "behaviourId")
	if !ok {
		return
	}
	var req dto.BehaviourRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.behaviourSvc.Update(c.Request.Context(), teacherID, studentID, id, &req)
	if err != nil {
		handleBehaviourError(c, err)
		return
	}
	response.OK(c, record)
}

// DeleteBehaviour DELETE .../behaviours/:behaviourId
func (h *BehaviourHandler) DeleteBehaviour(c *gin.Context) {
	teacherID, studentID, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "behaviourId")
	if !ok {
		return
	}
	if err := h.behaviourSvc.Delete(c.Request.Context(), teacherID, studentID, id); err != nil {
		handleBehaviourError(c, err)
		return
	}
	response.OK(c, nil)
}

func handleBehaviourError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBehaviourNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 16001, err.Error())
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
