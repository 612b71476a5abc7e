package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kayan2004/dracofit-backend/internal/model"
)

type fakeEventSource struct {
	events []model.UserEvent
}

func (f *fakeEventSource) Pending(_ context.Context, limit int) ([]model.UserEvent, error) {
	var out []model.UserEvent
	for _, e := range f.events {
		if e.PublishedAt == nil {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeEventSource) MarkPublished(_ context.Context, id uint64) error {
	for i := range f.events {
		if f.events[i].ID == id {
			now := time.Now()
			f.events[i].PublishedAt = &now
			return nil
		}
	}
	return errors.New("no such event")
}

type fakePublisher struct {
	published []string // queue names in publish order
	failAfter int      // fail once this many publishes succeeded, -1 never
}

func (f *fakePublisher) Publish(_ context.Context, queueName string, _ []byte) error {
	if f.failAfter >= 0 && len(f.published) >= f.failAfter {
		return errors.New("broker unavailable")
	}
	f.published = append(f.published, queueName)
	return nil
}

func TestOutboxRelay_DrainPublishesInOrder(t *testing.T) {
	src := &fakeEventSource{events: []model.UserEvent{
		{ID: 1, EventType: "user.created", Payload: []byte(`{"user_id":1}`)},
		{ID: 2, EventType: "user.created", Payload: []byte(`{"user_id":2}`)},
	}}
	pub := &fakePublisher{failAfter: -1}
	relay := NewOutboxRelay(src, pub, time.Second, zap.NewNop().Sugar())

	require.NoError(t, relay.Drain(context.Background()))

	assert.Equal(t, []string{"user.created", "user.created"}, pub.published)
	for _, e := range src.events {
		assert.NotNil(t, e.PublishedAt)
	}
}

func TestOutboxRelay_StopsAtFirstFailureAndRetries(t *testing.T) {
	src := &fakeEventSource{events: []model.UserEvent{
		{ID: 1, EventType: "user.created", Payload: []byte(`{"user_id":1}`)},
		{ID: 2, EventType: "user.created", Payload: []byte(`{"user_id":2}`)},
	}}
	pub := &fakePublisher{failAfter: 1}
	relay := NewOutboxRelay(src, pub, time.Second, zap.NewNop().Sugar())

	require.Error(t, relay.Drain(context.Background()))
	assert.NotNil(t, src.events[0].PublishedAt)
	assert.Nil(t, src.events[1].PublishedAt)

	// The broker recovered; the next drain picks up where it stopped.
	pub.failAfter = -1
	require.NoError(t, relay.Drain(context.Background()))
	assert.NotNil(t, src.events[1].PublishedAt)
}
