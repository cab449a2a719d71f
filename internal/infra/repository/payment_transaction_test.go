//go:build unit

package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"accept-broker/internal/domain/payment"
	"accept-broker/internal/domain/transaction"
	"accept-broker/internal/infra"
	"accept-broker/tests/common/dbtest"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTransaction(t *testing.T, amount string) *transaction.Transaction {
	t.Helper()
	params := transaction.Params{
		TransactionID: "60123456789",
		ReferenceID:   "ref-1",
		ResponseCode:  "1",
		AuthCode:      "ABC123",
		AccountNumber: "XXXX1111",
		AccountType:   "Visa",
		Source:        transaction.SourceReturn,
		RawResponse:   json.RawMessage(`{"transId":"60123456789"}`),
	}
	if amount != "" {
		m, err := payment.ParseMoney(amount)
		require.NoError(t, err)
		params.Amount = m
	}
	txn, err := transaction.New(params, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return txn
}

func TestTransactionRepository_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("新規行はtrue", func(t *testing.T) {
		db := new(dbtest.MockDBTX)
		db.On("Exec", mock.Anything, insertPaymentTransaction, mock.MatchedBy(func(args []any) bool {
			amount, _ := args[4].(pgtype.Text)
			return len(args) == 13 &&
				args[0] == "60123456789" &&
				amount.Valid && amount.String == "25.00" &&
				args[9] == "approved" &&
				args[10] == "return" &&
				args[11] == `{"transId":"60123456789"}`
		})).Return(dbtest.InsertTag(1), nil)

		inserted, err := NewTransactionRepository(db, discardLogger()).Insert(ctx, newTransaction(t, "25.00"))

		require.NoError(t, err)
		assert.True(t, inserted)
		db.AssertExpectations(t)
	})

	t.Run("金額なしはNULL", func(t *testing.T) {
		db := new(dbtest.MockDBTX)
		db.On("Exec", mock.Anything, insertPaymentTransaction, mock.MatchedBy(func(args []any) bool {
			amount, _ := args[4].(pgtype.Text)
			return !amount.Valid
		})).Return(dbtest.InsertTag(1), nil)

		_, err := NewTransactionRepository(db, discardLogger()).Insert(ctx, newTransaction(t, ""))

		require.NoError(t, err)
		db.AssertExpectations(t)
	})

	t.Run("既存の取引IDはfalse", func(t *testing.T) {
		db := new(dbtest.MockDBTX)
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(dbtest.InsertTag(0), nil)

		inserted, err := NewTransactionRepository(db, discardLogger()).Insert(ctx, newTransaction(t, "25.00"))

		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("DBエラー", func(t *testing.T) {
		db := new(dbtest.MockDBTX)
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(dbtest.InsertTag(0), assert.AnError)

		inserted, err := NewTransactionRepository(db, discardLogger()).Insert(ctx, newTransaction(t, "25.00"))

		assert.False(t, inserted)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
