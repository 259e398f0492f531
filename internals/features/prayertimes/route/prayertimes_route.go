package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	prayerctl "dugsiku_backend/internals/features/prayertimes/controller"
)

func PrayerTimesPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := prayerctl.NewPrayerTimesController(db)
	public.Get("/schools/:slug/prayer-times", ctl.Day)
}
