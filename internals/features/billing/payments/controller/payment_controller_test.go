package controller

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountmodel "dugsiku_backend/internals/features/billing/accounts/model"
)

func TestStoreGatewayRef(t *testing.T) {
	db, mock := newMockDB(t)
	account := accountmodel.BillingAccountModel{BillingAccountID: uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "billing_accounts"`).
		WithArgs("snap-token-123", sqlmock.AnyArg(), account.BillingAccountID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, storeGatewayRef(db, &account, "snap-token-123"))
	require.NotNil(t, account.BillingAccountGatewayRef)
	assert.Equal(t, "snap-token-123", *account.BillingAccountGatewayRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}
