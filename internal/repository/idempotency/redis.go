package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "idempotency:orders:"
	pendingMarker = "-"
)

// reserveScript ставит маркер pending, если ключа нет, и возвращает
// {1, ""} при резерве или {0, сохраненное значение} иначе.
var reserveScript = redis.NewScript(`
local ok = redis.call('SET', KEYS[1], ARGV[1], 'NX', 'PX', ARGV[2])
if ok then
	return {1, ''}
end
return {0, redis.call('GET', KEYS[1]) or ''}
`)

var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// Store помнит, какой заказ создал клиентский ключ идемпотентности.
// Храним только ключи запросов, состояние заказов не кешируем.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Reserve занимает ключ под новый запрос. Если ключ занят, возвращает сохраненный
// order id или пустую строку, пока первый запрос еще выполняется.
func (s *Store) Reserve(ctx context.Context, key string) (string, bool, error) {
	res, err := reserveScript.Run(ctx, s.client, []string{keyPrefix + key}, pendingMarker, s.ttl.Milliseconds()).Slice()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if len(res) != 2 {
		return "", false, fmt.Errorf("idempotency reserve: unexpected reply %v", res)
	}

	reserved, _ := res[0].(int64)
	if reserved == 1 {
		return "", true, nil
	}

	stored, _ := res[1].(string)
	if stored == pendingMarker {
		stored = ""
	}
	return stored, false, nil
}

func (s *Store) Commit(ctx context.Context, key, orderID string) error {
	if err := s.client.Set(ctx, keyPrefix+key, orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency commit: %w", err)
	}
	return nil
}

// Release снимает незакоммиченный резерв, чтобы клиент мог повторить запрос.
func (s *Store) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{keyPrefix + key}, pendingMarker).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}
