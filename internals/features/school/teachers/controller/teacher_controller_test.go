package controller

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	helper "dugsiku_backend/internals/helpers"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func newTeacherApp(db *gorm.DB, schoolID uuid.UUID) *fiber.App {
	app := fiber.New()
	ctl := &TeacherController{DB: db}
	app.Post("/teachers", func(c *fiber.Ctx) error {
		c.Locals(helper.LocSchoolID, schoolID.String())
		return ctl.Create(c)
	})
	return app
}

// Deleting a teacher is a soft delete, so the (school, user) unique index
// still holds the old row; re-adding the same user must revive it.
func TestCreateTeacherRevivesSoftDeletedRow(t *testing.T) {
	db, mock := newMockDB(t)
	schoolID := uuid.New()
	userID := uuid.New()
	teacherID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs(userID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "school_id", "is_active"}).
			AddRow(userID.String(), "teacher", schoolID.String(), true))
	mock.ExpectQuery(`SELECT .* FROM "teachers"`).
		WithArgs(schoolID.String(), userID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"teacher_id", "teacher_school_id", "teacher_user_id",
			"teacher_display_name", "teacher_is_active", "teacher_deleted_at",
		}).AddRow(teacherID.String(), schoolID.String(), userID.String(),
			"Old Name", false, time.Now()))
	mock.ExpectExec(`UPDATE "teachers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := newTeacherApp(db, schoolID)
	body := `{"teacher_user_id":"` + userID.String() + `","teacher_display_name":"Ustadh Khalid"}`
	req := httptest.NewRequest("POST", "/teachers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data struct {
			TeacherID   string `json:"teacher_id"`
			DisplayName string `json:"teacher_display_name"`
			IsActive    bool   `json:"teacher_is_active"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, teacherID.String(), envelope.Data.TeacherID)
	assert.Equal(t, "Ustadh Khalid", envelope.Data.DisplayName)
	assert.True(t, envelope.Data.IsActive)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTeacherBindsUnattachedUser(t *testing.T) {
	db, mock := newMockDB(t)
	schoolID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs(userID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "school_id", "is_active"}).
			AddRow(userID.String(), "teacher", nil, true))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .* FROM "teachers"`).
		WithArgs(schoolID.String(), userID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"teacher_id"}))
	mock.ExpectQuery(`INSERT INTO "teachers"`).
		WillReturnRows(sqlmock.NewRows([]string{"teacher_id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	app := newTeacherApp(db, schoolID)
	body := `{"teacher_user_id":"` + userID.String() + `","teacher_display_name":"Ustadha Fartun"}`
	req := httptest.NewRequest("POST", "/teachers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTeacherRejectsUserFromAnotherSchool(t *testing.T) {
	db, mock := newMockDB(t)
	schoolID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs(userID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "school_id", "is_active"}).
			AddRow(userID.String(), "teacher", uuid.New().String(), true))
	mock.ExpectRollback()

	app := newTeacherApp(db, schoolID)
	body := `{"teacher_user_id":"` + userID.String() + `","teacher_display_name":"Ustadh Khalid"}`
	req := httptest.NewRequest("POST", "/teachers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
