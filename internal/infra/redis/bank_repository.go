package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

// BankKey holds the JSON-encoded bank, exactly as served to clients.
const BankKey = "quiz:bank"

// BankRepository caches the question bank in Redis and falls back to a loader on cache miss.
type BankRepository struct {
	client *redis.Client
	loader app.BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankRepository(client *redis.Client, loader app.BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) LoadBank(ctx context.Context) ([]domain.Question, error) {
	if bank, ok := r.cached(ctx); ok {
		return bank, nil
	}

	result, err, _ := r.sf.Do(BankKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if bank, ok := r.cached(ctx); ok {
			return bank, nil
		}

		bank, err := r.loader.LoadBank(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(bank)
		if err != nil {
			return nil, err
		}
		if err := r.client.Set(ctx, BankKey, data, r.ttlWithJitter()).Err(); err != nil {
			log.Printf("cache question bank: %v", err)
		}
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// Invalidate removes the cached bank.
func (r *BankRepository) Invalidate(ctx context.Context) error {
	return InvalidateBank(ctx, r.client)
}

// InvalidateBank removes the cached bank shared by every instance using client.
func InvalidateBank(ctx context.Context, client *redis.Client) error {
	return client.Del(ctx, BankKey).Err()
}

func (r *BankRepository) cached(ctx context.Context) ([]domain.Question, bool) {
	data, err := r.client.Get(ctx, BankKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("read cached question bank: %v", err)
		}
		return nil, false
	}
	bank, err := domain.ParseBank(data)
	if err != nil {
		log.Printf("discarding cached question bank: %v", err)
		return nil, false
	}
	return bank, true
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
