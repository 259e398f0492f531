package controller

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dugsiku_backend/internals/configs"
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

func TestCreateSchoolAttachesCreatorAndReissuesTokens(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	db, mock := newMockDB(t)
	userID := uuid.New()
	schoolID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "schools"`).
		WithArgs("al-nur-dugsi").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs(userID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "email", "role", "is_active"}).
			AddRow(userID.String(), "Amina", "amina@example.com", "owner", true))
	mock.ExpectQuery(`INSERT INTO "schools"`).
		WillReturnRows(sqlmock.NewRows([]string{"school_id"}).AddRow(schoolID.String()))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := fiber.New()
	ctl := &SchoolController{DB: db}
	app.Post("/schools", func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, userID.String())
		return ctl.Create(c)
	})

	req := httptest.NewRequest("POST", "/schools", strings.NewReader(`{"school_name":"Al Nur Dugsi"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	require.NotEmpty(t, envelope.Data.RefreshToken)

	// The re-issued access token must carry the new tenant claim.
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(envelope.Data.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, schoolID.String(), claims["school_id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSchoolRejectsSecondSchool(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()
	existing := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "schools"`).
		WithArgs("masjid-annur").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs(userID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "school_id", "is_active"}).
			AddRow(userID.String(), "owner", existing.String(), true))
	mock.ExpectRollback()

	app := fiber.New()
	ctl := &SchoolController{DB: db}
	app.Post("/schools", func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, userID.String())
		return ctl.Create(c)
	})

	req := httptest.NewRequest("POST", "/schools", strings.NewReader(`{"school_name":"Masjid Annur"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachUserRejectsForeignTenant(t *testing.T) {
	db, mock := newMockDB(t)
	schoolID := uuid.New()
	otherSchool := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs(userID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "school_id", "is_active"}).
			AddRow(userID.String(), "admin", otherSchool.String(), true))

	app := fiber.New()
	ctl := &SchoolController{DB: db}
	app.Post("/schools/attach-user", func(c *fiber.Ctx) error {
		c.Locals(helper.LocSchoolID, schoolID.String())
		return ctl.AttachUser(c)
	})

	req := httptest.NewRequest("POST", "/schools/attach-user",
		strings.NewReader(`{"user_id":"`+userID.String()+`"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
