package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mindhaven/internal/apperr"
	"mindhaven/internal/model"
)

// RedisStore backs the order registry with Redis so multiple instances
// can share one registry. No TTL: orders are never deleted during their
// lifetime.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// markPaidScript flips pending → paid atomically.
// Returns -1 unknown id, 0 already paid, 1 transitioned.
var markPaidScript = redis.NewScript(`
local raw = redis.call('GET', KEYS[1])
if not raw then return -1 end
local order = cjson.decode(raw)
if order['status'] == 'paid' then return 0 end
order['status'] = 'paid'
redis.call('SET', KEYS[1], cjson.encode(order))
return 1
`)

func orderKey(id string) string {
	return "order:" + id
}

func (s *RedisStore) Put(ctx context.Context, o *model.Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, orderKey(o.ID), data, 0).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*model.Order, error) {
	data, err := s.client.Get(ctx, orderKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var o model.Order
	if err := json.Unmarshal([]byte(data), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *RedisStore) MarkPaid(ctx context.Context, id string) (bool, error) {
	res, err := markPaidScript.Run(ctx, s.client, []string{orderKey(id)}).Int()
	if err != nil {
		return false, fmt.Errorf("mark paid: %w", err)
	}
	switch res {
	case -1:
		return false, apperr.ErrNotFound
	case 0:
		return false, nil
	default:
		return true, nil
	}
}
