package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceroute "dugsiku_backend/internals/features/attendance/route"
	billingroute "dugsiku_backend/internals/features/billing/route"
	dashboardroute "dugsiku_backend/internals/features/dashboard/route"
	enrollmentroute "dugsiku_backend/internals/features/enrollment/route"
	peopleroute "dugsiku_backend/internals/features/people/route"
	prayertimesroute "dugsiku_backend/internals/features/prayertimes/route"
	schoolroute "dugsiku_backend/internals/features/school/schools/route"
	teacherroute "dugsiku_backend/internals/features/school/teachers/route"
	authroute "dugsiku_backend/internals/features/users/auth/route"
	authmw "dugsiku_backend/internals/middlewares/auth"
)

// SetupRoutes wires every feature into three surfaces:
//
//	/api/public  no auth (school directory, prayer times)
//	/api/a       staff and admin tooling
//	/api/t       teacher tooling
//
// The payment webhook registers outside all groups; the handler verifies the
// gateway signature itself.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	authroute.AuthRoutes(app, db)
	billingroute.BillingWebhookRoutes(app, db)

	public := app.Group("/api/public")
	schoolroute.SchoolPublicRoutes(public, db)
	prayertimesroute.PrayerTimesPublicRoutes(public, db)

	admin := app.Group("/api/a", authmw.AuthMiddleware(db))
	schoolroute.SchoolAdminRoutes(admin, db)
	teacherroute.TeacherAdminRoutes(admin, db)
	peopleroute.PeopleAdminRoutes(admin, db)
	enrollmentroute.EnrollmentAdminRoutes(admin, db)
	billingroute.BillingAdminRoutes(admin, db)
	attendanceroute.AttendanceAdminRoutes(admin, db)
	dashboardroute.DashboardAdminRoutes(admin, db)

	teacher := app.Group("/api/t", authmw.AuthMiddleware(db))
	attendanceroute.AttendanceTeacherRoutes(teacher, db)
}
