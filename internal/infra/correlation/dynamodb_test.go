//go:build unit

package correlation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	store "accept-broker/internal/infra/correlation"
	"accept-broker/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDynamoDBStore(t *testing.T) {
	ctx := context.Background()

	t.Run("作成と取得でスナップショットが往復する", func(t *testing.T) {
		mock := newSimpleMock()
		s := store.NewDynamoDBStore(mock, "correlations", discardLogger())
		require.NoError(t, s.Create(ctx, newPending(t, "ref-1")))

		item := mock.table["ref-1"]
		require.NotNil(t, item)
		expires, ok := item["expires_at"].(*types.AttributeValueMemberN)
		require.True(t, ok, "expires_at must be a number for TTL")
		assert.Equal(t, "1740832200", expires.Value)

		got, err := s.Get(ctx, "ref-1")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", got.CustomerEmail())
		assert.Equal(t, int64(2500), got.Amount().Cents())
		assert.Equal(t, baseTime.Add(30*time.Minute), got.ExpiresAt())
		assert.Equal(t, "Jane", got.CustomerInfo().Address().FirstName)
	})

	t.Run("条件付き書き込み失敗はErrCorrelationExists", func(t *testing.T) {
		mock := newSimpleMock()
		s := store.NewDynamoDBStore(mock, "correlations", discardLogger())
		require.NoError(t, s.Create(ctx, newPending(t, "ref-1")))

		err := s.Create(ctx, newPending(t, "ref-1"))
		assert.ErrorIs(t, err, errs.ErrCorrelationExists)
		assert.Equal(t, 2, mock.putCalls)
	})

	t.Run("その他の書き込み失敗はDB障害としてマーク", func(t *testing.T) {
		mock := newSimpleMock()
		mock.failWith = errors.New("throttled")
		s := store.NewDynamoDBStore(mock, "correlations", discardLogger())

		err := s.Create(ctx, newPending(t, "ref-1"))
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
		assert.False(t, errs.Is(err, errs.ErrCorrelationExists))
	})

	t.Run("未登録はErrCorrelationNotFound", func(t *testing.T) {
		s := store.NewDynamoDBStore(newSimpleMock(), "correlations", discardLogger())
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, errs.ErrCorrelationNotFound)
	})

	t.Run("MarkUsedは条件付き更新で一度だけ", func(t *testing.T) {
		mock := newSimpleMock()
		s := store.NewDynamoDBStore(mock, "correlations", discardLogger())
		require.NoError(t, s.Create(ctx, newPending(t, "ref-1")))

		first, err := s.MarkUsed(ctx, "ref-1", baseTime.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, first)

		second, err := s.MarkUsed(ctx, "ref-1", baseTime.Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, second)

		got, err := s.Get(ctx, "ref-1")
		require.NoError(t, err)
		assert.True(t, got.Used())
		require.NotNil(t, got.UsedAt())
		assert.True(t, baseTime.Add(time.Minute).Equal(*got.UsedAt()))
	})
}
