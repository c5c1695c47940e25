package rabbitmq

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	mu         sync.Mutex
	declared   []string
	published  []amqp.Publishing
	routingKey string
	deliveries chan amqp.Delivery
	declareErr error
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, f.declareErr
}

func (f *fakeChannel) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routingKey = key
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type ackRecorder struct {
	mu     sync.Mutex
	acked  []uint64
	nacked []uint64
}

func (a *ackRecorder) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *ackRecorder) Nack(tag uint64, _ bool, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked = append(a.nacked, tag)
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestPublishOrderCreated(t *testing.T) {
	ch := &fakeChannel{}
	client, err := newClient(ch, "orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, ch.declared)

	require.NoError(t, client.PublishOrderCreated(map[string]string{"orderId": "o-1"}))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "orders", ch.routingKey)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "o-1", body["orderId"])
}

func TestNewClient_DeclareFailureClosesChannel(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := newClient(ch, "")
	require.Error(t, err)
	assert.True(t, ch.closed)
	assert.Equal(t, []string{"order_queue"}, ch.declared)
}

func TestConsumeOrderEvents_AckAndNack(t *testing.T) {
	ch := &fakeChannel{deliveries: make(chan amqp.Delivery, 2)}
	client, err := newClient(ch, "orders")
	require.NoError(t, err)

	acks := &ackRecorder{}
	ch.deliveries <- amqp.Delivery{Acknowledger: acks, DeliveryTag: 1, Body: []byte("good")}
	ch.deliveries <- amqp.Delivery{Acknowledger: acks, DeliveryTag: 2, Body: []byte("bad")}
	close(ch.deliveries)

	require.NoError(t, client.ConsumeOrderEvents(func(body []byte) error {
		if string(body) == "bad" {
			return errors.New("cannot decode")
		}
		return nil
	}))

	assert.Eventually(t, func() bool {
		acks.mu.Lock()
		defer acks.mu.Unlock()
		return len(acks.acked) == 1 && len(acks.nacked) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []uint64{1}, acks.acked)
	assert.Equal(t, []uint64{2}, acks.nacked)
}
