package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dugsiku_backend/internals/constants"
	schoolctl "dugsiku_backend/internals/features/school/schools/controller"
	authmw "dugsiku_backend/internals/middlewares/auth"
)

// SchoolPublicRoutes registers the discovery endpoints, no auth.
func SchoolPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := &schoolctl.SchoolController{DB: db}
	public.Get("/schools", ctl.List)
	public.Get("/schools/:slug", ctl.GetBySlug)
}

// SchoolAdminRoutes registers tenant management, owner/admin only.
func SchoolAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := &schoolctl.SchoolController{DB: db}

	grp := admin.Group("/schools",
		authmw.OnlyRoles(constants.RoleErrorAdmin("school management"), constants.AdminRoles...),
	)
	grp.Post("/", ctl.Create)
	grp.Post("/attach-user", ctl.AttachUser)
	grp.Patch("/:id", ctl.Update)
	grp.Post("/:id/logo", ctl.UploadLogo)
}
