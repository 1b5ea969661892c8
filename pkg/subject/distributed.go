package subject

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/logger"

	"go.uber.org/zap"
)

// Distributed wraps a PublishSubject so that every value pushed into it
// locally is also published to a Redis channel, and every message
// published to that channel by any process is fanned out to this
// process's local subscribers too. This gives every process a consistent
// view of a topic without each of them needing direct knowledge of the
// others.
type Distributed[T any] struct {
	*PublishSubject[T]
	client  *redis.Client
	channel string
	cancel  context.CancelFunc
}

// NewDistributed creates a Distributed subject bridging channel over
// client. It starts a background subscription loop immediately; call
// Close to stop it and release the Redis connection resources this
// subject's subscription holds.
func NewDistributed[T any](client *redis.Client, channel string) *Distributed[T] {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Distributed[T]{
		PublishSubject: NewPublishSubject[T](),
		client:         client,
		channel:        channel,
		cancel:         cancel,
	}
	go d.pump(ctx)
	return d
}

func (d *Distributed[T]) pump(ctx context.Context) {
	pubsub := d.client.Subscribe(ctx, d.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var value T
			if err := json.Unmarshal([]byte(msg.Payload), &value); err != nil {
				logger.Warn("distributed subject: dropping unparseable message",
					zap.String("channel", d.channel), zap.Error(err))
				continue
			}
			d.PublishSubject.OnNext(value)
		}
	}
}

// OnNext publishes value to the Redis channel in addition to the local
// fan-out PublishSubject.OnNext already performs. The local delivery ack
// governs the returned signal; the Redis publish is best-effort and its
// failure is logged rather than propagated as a stream error, since a
// transient broker hiccup shouldn't tear down every local subscriber.
func (d *Distributed[T]) OnNext(value T) ack.Ack {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warn("distributed subject: dropping unmarshalable value",
			zap.String("channel", d.channel), zap.Error(err))
		return d.PublishSubject.OnNext(value)
	}
	if err := d.client.Publish(context.Background(), d.channel, payload).Err(); err != nil {
		logger.Warn("distributed subject: publish failed",
			zap.String("channel", d.channel), zap.Error(err))
	}
	return d.PublishSubject.OnNext(value)
}

// Close stops the background Redis subscription loop.
func (d *Distributed[T]) Close() {
	d.cancel()
}
