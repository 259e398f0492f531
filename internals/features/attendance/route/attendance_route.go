package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dugsiku_backend/internals/constants"
	sessionctl "dugsiku_backend/internals/features/attendance/sessions/controller"
	authmw "dugsiku_backend/internals/middlewares/auth"
)

func AttendanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	sessions := &sessionctl.SessionController{DB: db}

	read := admin.Group("",
		authmw.OnlyRoles(constants.RoleErrorTeacher("attendance"), constants.StaffRoles...),
	)
	read.Get("/attendance/sessions", sessions.List)
	read.Get("/attendance/sessions/:id", sessions.Detail)

	write := admin.Group("",
		authmw.OnlyRoles(constants.RoleErrorAdmin("attendance"), constants.AdminRoles...),
	)
	write.Post("/attendance/sessions", sessions.Create)
	write.Post("/attendance/sessions/:id/cancel", sessions.Cancel)
}

// AttendanceTeacherRoutes is the tooling teachers use during class.
func AttendanceTeacherRoutes(teacher fiber.Router, db *gorm.DB) {
	sessions := &sessionctl.SessionController{DB: db}

	grp := teacher.Group("",
		authmw.OnlyRoles(constants.RoleErrorTeacher("attendance"), constants.StaffRoles...),
	)
	grp.Get("/attendance/today", sessions.Today)
	grp.Get("/attendance/sessions/:id", sessions.Detail)
	grp.Post("/attendance/sessions/:id/marks", sessions.BulkMark)
	grp.Post("/attendance/sessions/:id/close", sessions.Close)
}
