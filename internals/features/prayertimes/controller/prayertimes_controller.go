package controller

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hablullah/go-prayer"
	"gorm.io/gorm"

	schoolmodel "dugsiku_backend/internals/features/school/schools/model"
	helper "dugsiku_backend/internals/helpers"
)

type PrayerTimesController struct {
	DB *gorm.DB

	mu    sync.Mutex
	cache map[string][]prayer.Schedule
}

func NewPrayerTimesController(db *gorm.DB) *PrayerTimesController {
	return &PrayerTimesController{
		DB:    db,
		cache: make(map[string][]prayer.Schedule),
	}
}

type prayerDayResponse struct {
	Date    string `json:"date"`
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Zuhr    string `json:"zuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// GET /api/public/schools/:slug/prayer-times?date=2026-01-15
// Computed from the school's coordinates and timezone; defaults to today.
func (ctl *PrayerTimesController) Day(c *fiber.Ctx) error {
	var school schoolmodel.SchoolModel
	if err := ctl.DB.
		Where("school_slug = ? AND school_is_active = TRUE", c.Params("slug")).
		First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "School not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if school.SchoolLatitude == nil || school.SchoolLongitude == nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "School has no coordinates configured")
	}

	loc, err := time.LoadLocation(school.SchoolTimezone)
	if err != nil {
		loc = time.UTC
	}

	date := time.Now().In(loc)
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, loc)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	schedules, err := ctl.yearSchedule(school.SchoolID, *school.SchoolLatitude, *school.SchoolLongitude, loc, date.Year())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute prayer times")
	}

	want := date.Format("2006-01-02")
	for _, s := range schedules {
		if s.Date == want {
			return helper.Success(c, "OK", prayerDayResponse{
				Date:    s.Date,
				Fajr:    clock(s.Fajr),
				Sunrise: clock(s.Sunrise),
				Zuhr:    clock(s.Zuhr),
				Asr:     clock(s.Asr),
				Maghrib: clock(s.Maghrib),
				Isha:    clock(s.Isha),
			})
		}
	}
	return helper.Error(c, fiber.StatusNotFound, "No schedule for that date")
}

// yearSchedule caches one computed year per school; the calculation covers
// the whole year at once.
func (ctl *PrayerTimesController) yearSchedule(schoolID uuid.UUID, lat, lon float64, loc *time.Location, year int) ([]prayer.Schedule, error) {
	key := fmt.Sprintf("%s:%d", schoolID, year)

	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if cached, ok := ctl.cache[key]; ok {
		return cached, nil
	}

	schedules, err := prayer.Calculate(prayer.Config{
		Latitude:           lat,
		Longitude:          lon,
		Timezone:           loc,
		TwilightConvention: prayer.ISNA(),
		AsrConvention:      prayer.Shafii,
	}, year)
	if err != nil {
		return nil, err
	}
	ctl.cache[key] = schedules
	return schedules, nil
}

func clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}
