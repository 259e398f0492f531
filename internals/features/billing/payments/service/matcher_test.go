package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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

func TestMapTransactionStatus(t *testing.T) {
	cases := []struct {
		ts, fraud, want string
	}{
		{"capture", "accept", "paid"},
		{"capture", "", "paid"},
		{"capture", "challenge", "pending"},
		{"settlement", "", "paid"},
		{"SETTLEMENT", "", "paid"},
		{"pending", "", "pending"},
		{"deny", "", "canceled"},
		{"cancel", "", "canceled"},
		{"expire", "", "expired"},
		{"refund", "", ""},
		{"unknown", "", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapTransactionStatus(tc.ts, tc.fraud),
			"transaction_status=%s fraud=%s", tc.ts, tc.fraud)
	}
}

func TestMatchBillingAccountByOrderRef(t *testing.T) {
	db, mock := newMockDB(t)

	subID := uuid.New()
	accountID := uuid.New()
	schoolID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "subscriptions"`).
		WithArgs("DUGSI-1-ABCD1234", 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"subscription_id",
			"subscription_school_id",
			"subscription_billing_account_id",
			"subscription_order_ref",
			"subscription_amount_cents",
			"subscription_status",
		}).AddRow(subID, schoolID, accountID, "DUGSI-1-ABCD1234", 10000, "active"))

	res, err := MatchBillingAccount(db, &Notification{OrderID: "DUGSI-1-ABCD1234"})
	require.NoError(t, err)
	assert.Equal(t, MatchedByOrderRef, res.MatchedBy)
	assert.Equal(t, accountID, res.AccountID)
	assert.Equal(t, schoolID, res.SchoolID)
	require.NotNil(t, res.Subscription)
	assert.Equal(t, subID, res.Subscription.SubscriptionID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchBillingAccountByGuardianEmail(t *testing.T) {
	db, mock := newMockDB(t)

	accountID := uuid.New()
	schoolID := uuid.New()

	// Order ref misses, then the contact-point join hits.
	mock.ExpectQuery(`SELECT .* FROM "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"subscription_id"}))
	mock.ExpectQuery(`SELECT .* FROM "billing_accounts"`).
		WithArgs("email", "hooyo@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"billing_account_id",
			"billing_account_school_id",
			"billing_account_is_active",
		}).AddRow(accountID, schoolID, true))

	res, err := MatchBillingAccount(db, &Notification{
		OrderID:       "UNKNOWN-ORDER",
		CustomerEmail: "Hooyo@Example.com ",
	})
	require.NoError(t, err)
	assert.Equal(t, MatchedByGuardianEmail, res.MatchedBy)
	assert.Equal(t, accountID, res.AccountID)
	assert.Nil(t, res.Subscription)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchBillingAccountPayerEmailFallback(t *testing.T) {
	db, mock := newMockDB(t)

	accountID := uuid.New()
	schoolID := uuid.New()

	// No order id, contact email misses, payer email on the account hits.
	mock.ExpectQuery(`SELECT .* FROM "billing_accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"billing_account_id"}))
	mock.ExpectQuery(`SELECT .* FROM "billing_accounts"`).
		WithArgs("aabe@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"billing_account_id",
			"billing_account_school_id",
		}).AddRow(accountID, schoolID))

	res, err := MatchBillingAccount(db, &Notification{CustomerEmail: "aabe@example.com"})
	require.NoError(t, err)
	assert.Equal(t, MatchedByPayerEmail, res.MatchedBy)
	assert.Equal(t, accountID, res.AccountID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchBillingAccountUnmatched(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .* FROM "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"subscription_id"}))

	_, err := MatchBillingAccount(db, &Notification{OrderID: "NOPE"})
	assert.ErrorIs(t, err, ErrUnmatched)

	require.NoError(t, mock.ExpectationsWereMet())
}
