package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"parent-teacher-bridge/backend/config"
	"parent-teacher-bridge/backend/internal/api/handler"
	"parent-teacher-bridge/backend/internal/api/middleware"
	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/pkg/database"
	"parent-teacher-bridge/backend/pkg/jwt"
	"parent-teacher-bridge/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：黑名单与限流降级
func Setup(cfg *config.Config, h *handler.Handler, db *gorm.DB, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			logger.Warn("健康检查失败", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	})

	admin := middleware.RoleAuth(model.RoleAdmin)
	teacher := middleware.RoleAuth(model.RoleTeacher)
	parent := middleware.RoleAuth(model.RoleParent)
	staff := middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, "login", cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow, logger), h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 管理端
			adm := authorized.Group("/admin", admin)
			{
				admins := adm.Group("/admins")
				{
					admins.GET("", h.Admin.ListAdmins)
					admins.GET("/:id", h.Admin.GetAdmin)
					admins.POST("", h.Admin.CreateAdmin)
					admins.PUT("/:id", h.Admin.UpdateAdmin)
					admins.DELETE("/:id", h.Admin.DeleteAdmin)
				}

				teachers := adm.Group("/teachers")
				{
					teachers.GET("", h.Teacher.ListTeachers)
					teachers.GET("/search", h.Teacher.SearchTeachers)
					teachers.GET("/:id", h.Teacher.GetTeacher)
					teachers.POST("", h.Teacher.CreateTeacher)
					teachers.PUT("/:id", h.Teacher.UpdateTeacher)
					teachers.DELETE("/:id", h.Teacher.DeleteTeacher)
				}

				parents := adm.Group("/parents")
				{
					parents.GET("", h.Parent.ListParents)
					parents.GET("/:id", h.Parent.GetParent)
					parents.POST("", h.Parent.CreateParent)
					parents.PUT("/:id", h.Parent.UpdateParent)
					parents.DELETE("/:id", h.Parent.DeleteParent)
				}

				classes := adm.Group("/classes")
				{
					classes.GET("", h.Class.ListClasses)
					classes.GET("/:id", h.Class.GetClass)
					classes.GET("/:id/students", h.Class.ListClassStudents)
					classes.POST("", h.Class.CreateClass)
					classes.PUT("/:id", h.Class.UpdateClass)
					classes.DELETE("/:id", h.Class.DeleteClass)
				}

				subjects := adm.Group("/subjects")
				{
					subjects.GET("", h.Subject.ListSubjects)
					subjects.GET("/search", h.Subject.SearchSubjects)
					subjects.GET("/:id", h.Subject.GetSubject)
					subjects.POST("", h.Subject.CreateSubject)
					subjects.PUT("/:id", h.Subject.UpdateSubject)
					subjects.DELETE("/:id", h.Subject.DeleteSubject)
				}

				students := adm.Group("/students")
				{
					students.GET("", h.Student.ListStudents)
					students.GET("/search", h.Student.SearchStudents)
					students.GET("/:id", h.Student.GetStudent)
					students.POST("", h.Student.CreateStudent)
					students.PUT("/:id", h.Student.UpdateStudent)
					students.DELETE("/:id", h.Student.DeleteStudent)
				}

				timetables := adm.Group("/timetables")
				{
					timetables.GET("", h.Timetable.ListTimetables)
					timetables.GET("/class/:classId", h.Timetable.ListByClass)
					timetables.GET("/teacher/:teacherId", h.Timetable.ListByTeacher)
					timetables.GET("/weekday/:weekday", h.Timetable.ListByWeekday)
					timetables.GET("/:id", h.Timetable.GetTimetable)
					timetables.POST("", h.Timetable.CreateTimetable)
					timetables.PUT("/:id", h.Timetable.UpdateTimetable)
					timetables.DELETE("/:id", h.Timetable.DeleteTimetable)
				}
			}

			// 教师本人资料（管理员亦可读）
			authorized.GET("/teachers/:id", staff, h.Teacher.GetTeacher)

			// 教师端
			tch := authorized.Group("/teacher", teacher)
			{
				tch.GET("/timetable", h.Timetable.MyTimetable)

				tch.POST("/attendance", h.Attendance.MarkAttendance)
				tch.GET("/attendance/:id", h.Attendance.GetAttendance)
				tch.PUT("/attendance/:id", h.Attendance.UpdateAttendance)
				tch.DELETE("/attendance/:id", h.Attendance.DeleteAttendance)
				tch.GET("/classes/:classId/attendance", h.Attendance.ListByClassAndDate)
				tch.GET("/students/:studentId/attendance", h.Attendance.ListByStudent)

				behaviours := tch.Group("/students/:studentId/behaviours")
				{
					behaviours.GET("", h.Behaviour.ListBehaviours)
					behaviours.GET("/:behaviourId", h.Behaviour.GetBehaviour)
					behaviours.POST("", h.Behaviour.CreateBehaviour)
					behaviours.PUT("/:behaviourId", h.Behaviour.UpdateBehaviour)
					behaviours.DELETE("/:behaviourId", h.Behaviour.DeleteBehaviour)
				}

				tch.POST("/performance", h.Performance.CreatePerformance)
				tch.GET("/performance/:id", h.Performance.GetPerformance)
				tch.DELETE("/performance/:id", h.Performance.DeletePerformance)
				tch.GET("/students/:studentId/performance", h.Performance.ListByStudent)

				tch.POST("/events", h.Event.CreateEvent)
				tch.PUT("/events/:id", h.Event.UpdateEvent)
				tch.DELETE("/events/:id", h.Event.DeleteEvent)
			}

			// 家长端
			par := authorized.Group("/parent", parent)
			{
				par.GET("/me", h.Parent.Me)
				par.GET("/student", h.Parent.Student)
				par.GET("/attendance", h.Parent.Attendance)
				par.GET("/behaviours", h.Parent.Behaviours)
				par.GET("/performance", h.Parent.Performance)
				par.GET("/timetable", h.Parent.Timetable)
				par.GET("/events", h.Parent.Events)
			}

			// 活动（所有角色可读）
			authorized.GET("/events", h.Event.ListEvents)
			authorized.GET("/events/:id", h.Event.GetEvent)

			// 站内消息
			messages := authorized.Group("/messages")
			{
				messages.POST("", h.Message.SendMessage)
				messages.GET("/inbox", h.Message.Inbox)
				messages.GET("/conversation", h.Message.Conversation)
				messages.PUT("/:id/read", h.Message.MarkRead)
			}

			// 导出模块
			export := authorized.Group("/export", staff)
			{
				export.GET("/timetables/class/:classId", h.Export.ExportClassTimetable)
				export.GET("/timetables/teacher/:teacherId", h.Export.ExportTeacherCalendar)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
