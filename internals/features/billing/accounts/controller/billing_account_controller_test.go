package controller

import (
	"encoding/json"
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

	"dugsiku_backend/internals/features/billing/accounts/model"
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

// One live subscription per account: a second create while one is active or
// past due must 409, not stack a parallel subscription.
func TestCreateSubscriptionConflictsOnLiveSubscription(t *testing.T) {
	db, mock := newMockDB(t)
	schoolID := uuid.New()
	accountID := uuid.New()
	profileID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "billing_accounts"`).
		WithArgs(accountID.String(), schoolID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"billing_account_id", "billing_account_school_id", "billing_account_is_active"}).
			AddRow(accountID.String(), schoolID.String(), true))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "subscriptions"`).
		WithArgs(accountID.String(), model.SubscriptionStatusActive, model.SubscriptionStatusPastDue).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	app := fiber.New()
	ctl := &BillingAccountController{DB: db}
	app.Post("/subscriptions", func(c *fiber.Ctx) error {
		c.Locals(helper.LocSchoolID, schoolID.String())
		return ctl.CreateSubscription(c)
	})

	body := `{"billing_account_id":"` + accountID.String() + `","amount_cents":10000,"program_profile_ids":["` + profileID.String() + `"]}`
	req := httptest.NewRequest("POST", "/subscriptions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Re-splitting must remove the old assignment rows for real; rows kept by a
// soft delete would still occupy the (subscription, profile) unique index and
// abort the rebuild whenever the new profile set overlaps the old one.
func TestResplitHardDeletesOldAssignments(t *testing.T) {
	db, mock := newMockDB(t)
	schoolID := uuid.New()
	subID := uuid.New()
	accountID := uuid.New()
	p1 := uuid.New()
	p2 := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "subscriptions"`).
		WithArgs(subID.String(), schoolID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"subscription_id", "subscription_school_id", "subscription_billing_account_id",
			"subscription_order_ref", "subscription_amount_cents", "subscription_interval", "subscription_status",
		}).AddRow(subID.String(), schoolID.String(), accountID.String(),
			"DUGSI-1-ABCD1234", 10000, "monthly", model.SubscriptionStatusActive))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "program_profiles"`).
		WithArgs(p1.String(), p2.String(), schoolID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`DELETE FROM "billing_assignments"`).
		WithArgs(subID.String()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT INTO "billing_assignments"`).
		WillReturnRows(sqlmock.NewRows([]string{"billing_assignment_id"}).
			AddRow(uuid.New().String()).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	app := fiber.New()
	ctl := &BillingAccountController{DB: db}
	app.Post("/subscriptions/:id/resplit", func(c *fiber.Ctx) error {
		c.Locals(helper.LocSchoolID, schoolID.String())
		return ctl.Resplit(c)
	})

	body := `{"program_profile_ids":["` + p1.String() + `","` + p2.String() + `"]}`
	req := httptest.NewRequest("POST", "/subscriptions/"+subID.String()+"/resplit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Assignments []struct {
				AmountCents int `json:"amount_cents"`
			} `json:"assignments"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data.Assignments, 2)
	assert.Equal(t, 5000, envelope.Data.Assignments[0].AmountCents)
	assert.Equal(t, 5000, envelope.Data.Assignments[1].AmountCents)

	assert.NoError(t, mock.ExpectationsWereMet())
}
