package rabbitmq_test

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"catalog/internal/models"
	"catalog/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	mu         sync.Mutex
	declared   []string
	published  []amqp.Publishing
	keys       []string
	deliveries chan amqp.Delivery
	closed     bool
	publishErr error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{deliveries: make(chan amqp.Delivery, 4)}
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Consume(_, _ string, _, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

// fakeAcker records acknowledgements by delivery tag.
type fakeAcker struct {
	mu     sync.Mutex
	acked  []uint64
	nacked map[uint64]bool
}

func (a *fakeAcker) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *fakeAcker) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked[tag] = requeue
	return nil
}

func (a *fakeAcker) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *fakeAcker) settled() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.acked) + len(a.nacked)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestNewClientWithChannel_DefaultQueue(t *testing.T) {
	ch := newFakeChannel()

	client, err := rabbitmq.NewClientWithChannel(ch, "")
	require.NoError(t, err)

	assert.Equal(t, []string{rabbitmq.DefaultQueue}, ch.declared)
	require.NoError(t, client.Close())
	assert.True(t, ch.closed)
}

func TestPublishProductEvent(t *testing.T) {
	ch := newFakeChannel()
	client, err := rabbitmq.NewClientWithChannel(ch, "catalog_events")
	require.NoError(t, err)

	event := models.ProductEvent{ID: "evt-1", Type: models.ProductCreated, ProductID: 3, OccurredAt: time.Unix(0, 0).UTC()}
	require.NoError(t, client.PublishProductEvent(t.Context(), event))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "catalog_events", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "evt-1", msg.MessageId)
	assert.Equal(t, models.ProductCreated, msg.Type)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var decoded models.ProductEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublishProductEvent_Error(t *testing.T) {
	ch := newFakeChannel()
	ch.publishErr = errors.New("channel closed")
	client, err := rabbitmq.NewClientWithChannel(ch, "")
	require.NoError(t, err)

	err = client.PublishProductEvent(t.Context(), models.ProductEvent{ID: "evt-1"})

	assert.ErrorContains(t, err, "failed to publish message")
}

func TestConsumeProductEvents(t *testing.T) {
	ch := newFakeChannel()
	client, err := rabbitmq.NewClientWithChannel(ch, "")
	require.NoError(t, err)
	acker := &fakeAcker{nacked: map[uint64]bool{}}

	var mu sync.Mutex
	var received []models.ProductEvent
	err = client.ConsumeProductEvents(func(e models.ProductEvent) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e)
		if e.Type == models.ProductDeleted {
			return errors.New("handler failed")
		}
		return nil
	})
	require.NoError(t, err)

	created, _ := json.Marshal(models.ProductEvent{ID: "a", Type: models.ProductCreated, ProductID: 1})
	deleted, _ := json.Marshal(models.ProductEvent{ID: "b", Type: models.ProductDeleted, ProductID: 1})
	ch.deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 1, Body: created}
	ch.deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 2, Body: deleted}
	ch.deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 3, Body: []byte("not json")}
	close(ch.deliveries)

	assert.Eventually(t, func() bool { return acker.settled() == 3 }, time.Second, 10*time.Millisecond)

	acker.mu.Lock()
	defer acker.mu.Unlock()
	assert.Equal(t, []uint64{1}, acker.acked)
	assert.True(t, acker.nacked[2], "handler failures are requeued")
	assert.False(t, acker.nacked[3], "malformed messages are dropped")

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 2)
}
