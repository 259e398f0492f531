package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dugsiku_backend/internals/constants"
	guardianctl "dugsiku_backend/internals/features/people/guardians/controller"
	personctl "dugsiku_backend/internals/features/people/persons/controller"
	authmw "dugsiku_backend/internals/middlewares/auth"
)

// PeopleAdminRoutes registers person, contact and guardian endpoints.
// Staff roles may read; admin roles mutate.
func PeopleAdminRoutes(admin fiber.Router, db *gorm.DB) {
	persons := &personctl.PersonController{DB: db}
	guardians := &guardianctl.GuardianController{DB: db}

	read := admin.Group("",
		authmw.OnlyRoles(constants.RoleErrorTeacher("family records"), constants.StaffRoles...),
	)
	read.Get("/persons", persons.List)
	read.Get("/persons/:id", persons.Get)
	read.Get("/families/:guardianId", guardians.Family)

	write := admin.Group("",
		authmw.OnlyRoles(constants.RoleErrorAdmin("family records"), constants.AdminRoles...),
	)
	write.Post("/persons", persons.Create)
	write.Patch("/persons/:id", persons.Update)
	write.Post("/persons/:id/contacts", persons.AddContact)
	write.Delete("/persons/:id/contacts/:contactId", persons.DeleteContact)
	write.Post("/persons/:id/photo", persons.UploadPhoto)

	write.Post("/guardian-relationships", guardians.Create)
	write.Post("/guardian-relationships/:id/deactivate", guardians.Deactivate)
}
