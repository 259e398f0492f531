package controller

import (
	"net/http/httptest"
	"strings"
	"testing"

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

// At most one active relationship per (guardian, dependent) pair.
func TestCreateRelationshipConflictsOnActivePair(t *testing.T) {
	db, mock := newMockDB(t)
	schoolID := uuid.New()
	guardianID := uuid.New()
	dependentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "persons"`).
		WithArgs(guardianID.String(), dependentID.String(), schoolID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "guardian_relationships"`).
		WithArgs(guardianID.String(), dependentID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	app := fiber.New()
	ctl := &GuardianController{DB: db}
	app.Post("/guardian-relationships", func(c *fiber.Ctx) error {
		c.Locals(helper.LocSchoolID, schoolID.String())
		return ctl.Create(c)
	})

	body := `{"guardian_id":"` + guardianID.String() + `","dependent_id":"` + dependentID.String() + `","kind":"mother"}`
	req := httptest.NewRequest("POST", "/guardian-relationships", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
