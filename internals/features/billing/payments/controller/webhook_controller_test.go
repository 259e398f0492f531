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

	"dugsiku_backend/internals/features/billing/payments/model"
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

func newWebhookApp(serverKey string) *fiber.App {
	app := fiber.New()
	ctl := &WebhookController{ServerKey: serverKey}
	app.Post("/api/payments/notification", ctl.HandleNotification)
	return app
}

func TestHandleNotificationRejectsBadSignature(t *testing.T) {
	app := newWebhookApp("server-key")

	body := `{"order_id":"DUGSI-1-AAAA","status_code":"200","gross_amount":"10000","signature_key":"wrong"}`
	req := httptest.NewRequest("POST", "/api/payments/notification", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleNotificationRejectsMissingSignature(t *testing.T) {
	app := newWebhookApp("server-key")

	body := `{"order_id":"DUGSI-1-AAAA","status_code":"200","gross_amount":"10000"}`
	req := httptest.NewRequest("POST", "/api/payments/notification", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleNotificationRejectsMalformedBody(t *testing.T) {
	app := newWebhookApp("server-key")

	req := httptest.NewRequest("POST", "/api/payments/notification", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// A matched account without a live subscription is a permanent condition:
// the event is stored as failed and the gateway gets a 200 so it stops
// redelivering the callback.
func TestHandleNotificationAcksAccountWithoutLiveSubscription(t *testing.T) {
	db, mock := newMockDB(t)
	accountID := uuid.New()
	schoolID := uuid.New()

	orderID := "MANUAL-42"
	sig := sha512sum(orderID + "200" + "10000" + "server-key")

	mock.ExpectQuery(`SELECT count\(\*\) FROM "gateway_events"`).
		WithArgs("txn-42", "settlement",
			model.GatewayEventStatusProcessed, model.GatewayEventStatusUnmatched).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "gateway_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"gateway_event_id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	// Matcher chain: order ref misses, guardian email misses, payer email hits.
	mock.ExpectQuery(`SELECT .* FROM "subscriptions"`).
		WithArgs(orderID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"subscription_id"}))
	mock.ExpectQuery(`SELECT .* FROM "billing_accounts"`).
		WithArgs("email", "hooyo@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"billing_account_id"}))
	mock.ExpectQuery(`SELECT .* FROM "billing_accounts"`).
		WithArgs("hooyo@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"billing_account_id", "billing_account_school_id"}).
			AddRow(accountID.String(), schoolID.String()))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "subscriptions"`).
		WithArgs(accountID.String(), "active", "past_due", 1).
		WillReturnRows(sqlmock.NewRows([]string{"subscription_id"}))
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "gateway_events"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := fiber.New()
	ctl := &WebhookController{DB: db, ServerKey: "server-key"}
	app.Post("/api/payments/notification", ctl.HandleNotification)

	body := `{"order_id":"` + orderID + `","status_code":"200","gross_amount":"10000",` +
		`"signature_key":"` + sig + `","transaction_status":"settlement",` +
		`"transaction_id":"txn-42","customer_email":"hooyo@example.com"}`
	req := httptest.NewRequest("POST", "/api/payments/notification", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ignored", out.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptedSignatureShape(t *testing.T) {
	// SHA512(order_id + status_code + gross_amount + server key), lowercase hex.
	got := sha512sum("ORDER" + "200" + "10000" + "server-key")
	assert.Len(t, got, 128)
	assert.Equal(t, strings.ToLower(got), got)
}
