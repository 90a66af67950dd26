package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

const bankKey = "bank"

// BankRepository caches the question bank with a TTL to avoid repeated reads
// of the backing store.
type BankRepository struct {
	loader app.BankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	bank      []domain.Question
	expiresAt time.Time
}

func NewBankRepository(loader app.BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// LoadBank returns the cached bank, loading it at most once per expiry even
// under concurrent callers. Callers must treat the slice as read-only.
func (r *BankRepository) LoadBank(ctx context.Context) ([]domain.Question, error) {
	if bank, ok := r.cached(r.clock()); ok {
		return bank, nil
	}

	result, err, _ := r.sf.Do(bankKey, func() (interface{}, error) {
		now := r.clock()
		if bank, ok := r.cached(now); ok {
			return bank, nil
		}

		bank, err := r.loader.LoadBank(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.bank = bank
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// Invalidate drops the cached bank, e.g. after reseeding.
func (r *BankRepository) Invalidate(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bank = nil
	r.expiresAt = time.Time{}
	return nil
}

func (r *BankRepository) cached(now time.Time) ([]domain.Question, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.bank != nil && r.expiresAt.After(now) {
		return r.bank, true
	}
	return nil, false
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
