package cli

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/config"
	"timed-quiz-service/internal/infra/memory"
	"timed-quiz-service/internal/infra/postgres"
	redisinfra "timed-quiz-service/internal/infra/redis"
	"timed-quiz-service/internal/infra/remote"
	"timed-quiz-service/internal/infra/sqlite"
)

// backends holds the connections opened for a command.
type backends struct {
	redis *redis.Client
	pool  *pgxpool.Pool
	bun   *bun.DB
	lite  *sqlite.MarkStore
}

func openBackends(ctx context.Context, cfg config.Config) (*backends, error) {
	b := &backends{}
	if cfg.Redis.Addr != "" {
		b.redis = newRedisClient(cfg)
	}
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.pool = pool
		b.bun = postgres.OpenBun(cfg.Postgres.URL)
	}
	if cfg.SQLite.Path != "" && b.bun == nil {
		lite, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.lite = lite
	}
	return b, nil
}

func (b *backends) Close() {
	if b.lite != nil {
		_ = b.lite.Close()
	}
	if b.bun != nil {
		_ = b.bun.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
}

func newRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// bankSource picks where the bank comes from: Postgres, then a remote URL,
// then a local file.
func (b *backends) bankSource(cfg config.Config) app.BankLoader {
	switch {
	case b.pool != nil:
		return postgres.NewBankLoader(b.pool)
	case cfg.Quiz.BankURL != "":
		return remote.NewBankLoader(nil, cfg.Quiz.BankURL)
	default:
		return memory.NewFileBankLoader(cfg.Quiz.BankFile)
	}
}

// bankLoader puts a cache in front of bankSource, in Redis when configured.
func (b *backends) bankLoader(cfg config.Config) app.BankLoader {
	source := b.bankSource(cfg)
	ttl := config.Duration(cfg.Quiz.BankTTL, 10*time.Minute)
	if b.redis != nil {
		return redisinfra.NewBankRepository(b.redis, source, ttl)
	}
	return memory.NewBankRepository(source, ttl)
}

func (b *backends) markStore(cfg config.Config) app.MarkRepository {
	switch {
	case b.bun != nil:
		return postgres.NewMarkStore(b.bun)
	case b.lite != nil:
		return b.lite
	case b.redis != nil:
		return redisinfra.NewMarkStore(b.redis, cfg.Redis.MaxMarks)
	default:
		log.Printf("no mark store configured, scores are kept in memory")
		return memory.NewMarkStore()
	}
}

func (b *backends) sessionStore(cfg config.Config) app.SessionRepository {
	if b.redis != nil {
		return redisinfra.NewSessionStore(b.redis, config.Duration(cfg.Redis.TTL, 30*time.Minute))
	}
	return memory.NewSessionStore()
}

func sessionConfig(cfg config.Config) app.SessionConfig {
	def := app.DefaultSessionConfig()
	sc := app.SessionConfig{
		Size:        cfg.Quiz.Size,
		Duration:    config.Duration(cfg.Quiz.Duration, def.Duration),
		Tick:        def.Tick,
		ResultLabel: cfg.Quiz.ResultLabel,
		Home:        app.HomeLink{Label: cfg.Quiz.HomeLabel, Path: cfg.Quiz.HomePath},
	}
	if sc.Size <= 0 {
		sc.Size = def.Size
	}
	if sc.ResultLabel == "" {
		sc.ResultLabel = def.ResultLabel
	}
	if sc.Home.Label == "" {
		sc.Home.Label = def.Home.Label
	}
	if sc.Home.Path == "" {
		sc.Home.Path = def.Home.Path
	}
	return sc
}

// reporterFor posts scores to report_url when set and otherwise saves them
// straight into the mark store.
func reporterFor(cfg config.Config, marks app.MarkRepository) app.Reporter {
	if cfg.Quiz.ReportURL != "" {
		return remote.NewReporter(&http.Client{Timeout: 10 * time.Second}, cfg.Quiz.ReportURL)
	}
	return app.NewMarkReporter(marks)
}

// bankCache is a bank loader whose cached copy can be dropped.
type bankCache interface {
	Invalidate(ctx context.Context) error
}

// invalidateBank drops the cached bank so the next quiz reloads it. Loaders
// without a cache are left alone.
func invalidateBank(ctx context.Context, loader app.BankLoader) error {
	cache, ok := loader.(bankCache)
	if !ok {
		return nil
	}
	return cache.Invalidate(ctx)
}

// clearBankCache drops the Redis copy of the bank after a reseed. Servers
// caching in process memory pick the new bank up on SIGHUP or after bank_ttl.
func clearBankCache(ctx context.Context, cfg config.Config) error {
	if cfg.Redis.Addr == "" {
		return nil
	}
	client := newRedisClient(cfg)
	defer client.Close()
	return redisinfra.InvalidateBank(ctx, client)
}
