package jetstream_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/messaging"
	"github.com/feral-file/claim-ledger/internal/mocks"
	jspublisher "github.com/feral-file/claim-ledger/internal/providers/jetstream"
)

type testPublisher struct {
	conn      *mocks.MockNatsConn
	js        *mocks.MockJetStream
	publisher messaging.Publisher
}

func setupTestPublisher(t *testing.T, maxElapsed time.Duration) *testPublisher {
	ctrl := gomock.NewController(t)
	natsJS := mocks.NewMockNatsJetStream(ctrl)
	conn := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)

	natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(conn, js, nil)

	p, err := jspublisher.NewPublisher(jspublisher.Config{
		URL:                    "nats://localhost:4222",
		StreamName:             "LEDGER",
		ConnectionName:         "test",
		PublishRetryMaxElapsed: maxElapsed,
	}, domain.ChainBaseMainnet, natsJS, adapter.NewJSON())
	require.NoError(t, err)

	return &testPublisher{conn: conn, js: js, publisher: p}
}

func withdrawEvent() *domain.RawEvent {
	index := uint64(4)
	return &domain.RawEvent{
		Contract:        domain.ContractTreasury,
		Event:           domain.EventWithdraw,
		Params:          map[string]string{"recipient": "0x0000000000000000000000000000000000000b0b", "amount": "10"},
		TransactionHash: "0xABCDEF",
		LogIndex:        &index,
		BlockNumber:     12,
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "ledger.token.transfer", jspublisher.Subject(domain.ContractToken, domain.EventTransfer))
	assert.Equal(t, "ledger.treasury.withdraw", jspublisher.Subject(domain.ContractTreasury, domain.EventWithdraw))
}

func TestPublishEvent(t *testing.T) {
	tp := setupTestPublisher(t, time.Second)

	tp.js.EXPECT().Publish(gomock.Any(), "ledger.treasury.withdraw", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
			assert.Contains(t, string(data), `"transactionHash":"0xABCDEF"`)
			assert.Len(t, opts, 2)
			return &jetstream.PubAck{Stream: "LEDGER", Sequence: 1}, nil
		})

	require.NoError(t, tp.publisher.PublishEvent(context.Background(), withdrawEvent()))
}

func TestPublishEvent_RetriesTransientFailure(t *testing.T) {
	tp := setupTestPublisher(t, 5*time.Second)

	gomock.InOrder(
		tp.js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("no responders")),
		tp.js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&jetstream.PubAck{Duplicate: true}, nil),
	)

	assert.NoError(t, tp.publisher.PublishEvent(context.Background(), withdrawEvent()))
}

func TestPublishEvent_GivesUp(t *testing.T) {
	tp := setupTestPublisher(t, 300*time.Millisecond)

	tp.js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("no responders")).MinTimes(1)

	assert.Error(t, tp.publisher.PublishEvent(context.Background(), withdrawEvent()))
}

func TestPublishEvent_MissingLogIndex(t *testing.T) {
	tp := setupTestPublisher(t, time.Second)

	event := withdrawEvent()
	event.LogIndex = nil
	assert.ErrorIs(t, tp.publisher.PublishEvent(context.Background(), event), domain.ErrMalformedEvent)
}

func TestClose(t *testing.T) {
	tp := setupTestPublisher(t, time.Second)
	tp.conn.EXPECT().Close()

	tp.publisher.Close()
}
