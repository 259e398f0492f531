package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dugsiku_backend/internals/constants"
	batchctl "dugsiku_backend/internals/features/enrollment/batches/controller"
	programctl "dugsiku_backend/internals/features/enrollment/programs/controller"
	authmw "dugsiku_backend/internals/middlewares/auth"
)

func EnrollmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	batches := &batchctl.BatchController{DB: db}
	programs := &programctl.EnrollmentController{DB: db}

	read := admin.Group("",
		authmw.OnlyRoles(constants.RoleErrorTeacher("enrollment"), constants.StaffRoles...),
	)
	read.Get("/batches", batches.List)
	read.Get("/enrollments", programs.List)

	write := admin.Group("",
		authmw.OnlyRoles(constants.RoleErrorAdmin("enrollment"), constants.AdminRoles...),
	)
	write.Post("/batches", batches.Create)
	write.Patch("/batches/:id", batches.Update)

	write.Post("/enrollments", programs.Enroll)
	write.Post("/enrollments/:id/activate", programs.Activate)
	write.Post("/enrollments/:id/complete", programs.Complete)
	write.Post("/enrollments/:id/withdraw", programs.Withdraw)
	write.Patch("/program-profiles/:id", programs.UpdateProfile)
}
