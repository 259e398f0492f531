package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dugsiku_backend/internals/constants"
	teacherctl "dugsiku_backend/internals/features/school/teachers/controller"
	authmw "dugsiku_backend/internals/middlewares/auth"
)

func TeacherAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := &teacherctl.TeacherController{DB: db}

	grp := admin.Group("/teachers",
		authmw.OnlyRoles(constants.RoleErrorAdmin("teacher management"), constants.AdminRoles...),
	)
	grp.Post("/", ctl.Create)
	grp.Get("/", ctl.List)
	grp.Patch("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
