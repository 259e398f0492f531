package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dugsiku_backend/internals/constants"
	dashctl "dugsiku_backend/internals/features/dashboard/controller"
	authmw "dugsiku_backend/internals/middlewares/auth"
)

func DashboardAdminRoutes(admin fiber.Router, db *gorm.DB) {
	dash := &dashctl.DashboardController{DB: db}

	grp := admin.Group("",
		authmw.OnlyRoles(constants.RoleErrorAdmin("dashboard"), constants.AdminRoles...),
	)
	grp.Get("/dashboard/summary", dash.Summary)
	grp.Get("/dashboard/attendance-rate", dash.AttendanceRate)
}
