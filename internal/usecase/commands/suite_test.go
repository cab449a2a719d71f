//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/clock"
	"accept-broker/internal/usecase/shared"
	sharedmock "accept-broker/tests/mock/shared"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// commandSuite wires the mocks every command use case depends on.
type commandSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	reads    *sharedmock.MockCommandReads
	profiles *sharedmock.MockCustomerProfileRepository
	txns     *sharedmock.MockTransactionRepository
	events   *sharedmock.MockWebhookEventRepository
	store    *sharedmock.MockCorrelationStore
	gateway  *sharedmock.MockGateway
	clock    *clock.MockClock
	logger   *slog.Logger
}

func (s *commandSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.reads = sharedmock.NewMockCommandReads(s.ctrl)
	s.profiles = sharedmock.NewMockCustomerProfileRepository(s.ctrl)
	s.txns = sharedmock.NewMockTransactionRepository(s.ctrl)
	s.events = sharedmock.NewMockWebhookEventRepository(s.ctrl)
	s.store = sharedmock.NewMockCorrelationStore(s.ctrl)
	s.gateway = sharedmock.NewMockGateway(s.ctrl)
	s.clock = clock.NewMockClock(baseTime)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	s.tx.EXPECT().Profiles().Return(s.profiles).AnyTimes()
	s.tx.EXPECT().Transactions().Return(s.txns).AnyTimes()
	s.tx.EXPECT().WebhookEvents().Return(s.events).AnyTimes()
	s.uow.EXPECT().CommandReads().Return(s.reads).AnyTimes()
}

func (s *commandSuite) TearDownTest() {
	s.ctrl.Finish()
}

// expectWithin runs the callback against the mocked transaction n times.
func (s *commandSuite) expectWithin(n int) {
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).Times(n)
}

// payloadOf decodes the operation body of a built gateway request.
func payloadOf(t *testing.T, req authnet.GatewayRequest) map[string]any {
	t.Helper()
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	var top map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &top))
	body, ok := top[req.Operation]
	require.True(t, ok, "operation %s missing", req.Operation)
	return body
}

// dig walks nested objects by key.
func dig(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[k]
	}
	return cur
}

// sequentialIDs returns a generator yielding ids in order.
func sequentialIDs(ids ...string) func(time.Time) (string, error) {
	i := 0
	return func(time.Time) (string, error) {
		id := ids[i%len(ids)]
		i++
		return id, nil
	}
}
