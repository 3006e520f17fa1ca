// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package: caches, the transport session to the origin
// site, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-process cache on patrickmn/go-cache
// - cache/redis: Redis cache on go-redis
// - cache/sqlite: file-backed cache on go-sqlite3
// - http/session: rate-limited HTTP session with markup parsing
// - logger/logrus: structured logger with optional rotating file output
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache(10 * time.Minute)
//	err := cache.Set(ctx, "key", []byte("value"), time.Hour)
//	value, err := cache.Get(ctx, "key")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
//	cache, err := sqlite.NewSQLiteCache("cache.db", logger)
//
// Every backend returns interfaces.ErrCacheMiss for absent keys.
//
// # Session
//
//	sess, err := session.New(session.Config{RateLimit: 2})
//	defer sess.Close()
//
//	doc, err := sess.FetchMarkup(ctx, "/", &interfaces.RequestOptions{
//	    Params: url.Values{"s": {"ozark"}},
//	})
//
// Non-success statuses come back as core/errors types, and transport
// failures as *errors.ConnectivityError.
//
// # Logger
//
//	logger, err := logrus.New(logrus.Options{Level: "info", Format: "json"})
//	logger.Info("Search page parsed", map[string]interface{}{
//	    "query": "ozark",
//	})
package infrastructure
