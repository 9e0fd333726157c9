package services

import (
	"context"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

const FeedChannel = "blog:events"

// RedisRelay fans feed events out to every instance through Redis pub/sub.
type RedisRelay struct {
	client  *redis.Client
	channel string
}

func NewRedisRelay(addr, password string) (*RedisRelay, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "redis ping %s", addr)
	}
	return &RedisRelay{client: client, channel: FeedChannel}, nil
}

func (r *RedisRelay) Publish(payload []byte) error {
	return r.client.Publish(r.channel, payload).Err()
}

func (r *RedisRelay) Subscribe(ctx context.Context, deliver func([]byte)) error {
	ps := r.client.Subscribe(r.channel)
	defer ps.Close()

	if _, err := ps.Receive(); err != nil {
		return errors.Wrap(err, "redis subscribe")
	}

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("redis subscription closed")
			}
			deliver([]byte(msg.Payload))
		}
	}
}

func (r *RedisRelay) Close() error {
	return r.client.Close()
}
