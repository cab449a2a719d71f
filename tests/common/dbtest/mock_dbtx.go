//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockDBTX satisfies db.DBTX for repository unit tests.
type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	rows, _ := mockArgs.Get(0).(pgx.Rows)
	return rows, mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

// StubRow is a pgx.Row that returns a fixed error from Scan.
type StubRow struct {
	Err error
}

func (r StubRow) Scan(dest ...any) error {
	return r.Err
}

// ValuesRow scans fixed values into dest by assignment, in column order.
type ValuesRow struct {
	Values []any
}

func (r ValuesRow) Scan(dest ...any) error {
	if len(dest) != len(r.Values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.Values))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.Values[i]))
	}
	return nil
}

func InsertTag(rows int64) pgconn.CommandTag {
	if rows == 1 {
		return pgconn.NewCommandTag("INSERT 0 1")
	}
	return pgconn.NewCommandTag("INSERT 0 0")
}

func UpdateTag(rows int64) pgconn.CommandTag {
	if rows == 1 {
		return pgconn.NewCommandTag("UPDATE 1")
	}
	return pgconn.NewCommandTag("UPDATE 0")
}

func DeleteTag(rows int64) pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", rows))
}
