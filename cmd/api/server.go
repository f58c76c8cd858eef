package main

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	mw "github.com/recshelf/recshelf-api/internal/api/middlewares"
	"github.com/recshelf/recshelf-api/internal/api/router"
	"github.com/recshelf/recshelf-api/internal/importer"
	"github.com/recshelf/recshelf-api/internal/repository/sqlconnect"
	s3storage "github.com/recshelf/recshelf-api/internal/storage/s3"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/cache"
	"github.com/recshelf/recshelf-api/internal/store/memory"
	"github.com/recshelf/recshelf-api/internal/store/pg"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	st := openStore(ctx)
	c := cache.New(openRedis())

	var sc *s3storage.Client
	if os.Getenv("AWS_BUCKET") != "" {
		var err error
		sc, err = s3storage.NewClient(ctx)
		if err != nil {
			log.Fatalf("object storage init failed: %v", err)
		}
	}

	if path := os.Getenv("SEED_CSV"); path != "" {
		seed(ctx, st, path)
	}

	handler := mw.Chain(
		router.Router(st, c, sc),
		mw.RequestID,
		mw.Recovery,
		mw.Cors,
		mw.ResponseTime,
		mw.BodySizeLimit,
		mw.SecurityHeaders,
		mw.RateLimit(5, 20),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("serving on port %s", port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalln("server error:", err)
	}
}

// openStore picks PostgreSQL when DATABASE_URL is set and falls back to the
// in-memory store otherwise.
func openStore(ctx context.Context) store.Store {
	if os.Getenv("DATABASE_URL") == "" {
		log.Println("DATABASE_URL not set, using in-memory store")
		return memory.New()
	}

	db, err := sqlconnect.ConnectDB()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	st := pg.New(db)
	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}
	return st
}

// openRedis is best-effort: the cache degrades to a no-op when Redis is
// unconfigured or unreachable.
func openRedis() *redis.Client {
	var rdb *redis.Client

	if url := os.Getenv("UPSTASH_REDIS_URL"); url != "" {
		opt, err := redis.ParseURL(url)
		if err != nil {
			log.Printf("[cache] invalid UPSTASH_REDIS_URL: %v", err)
			return nil
		}
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		rdb = redis.NewClient(opt)
	} else if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:         addr,
			Username:     os.Getenv("REDIS_USER"),
			Password:     os.Getenv("REDIS_PASSWORD"),
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
	} else {
		return nil
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("[cache] redis unreachable, caching disabled: %v", err)
		return nil
	}
	return rdb
}

// seed loads a CSV file once at boot. Already-present rows dedupe away, so
// reseeding on every start is harmless.
func seed(ctx context.Context, st store.Store, path string) {
	rows, err := importer.ReadFile(path)
	if err != nil {
		log.Fatalf("seed %s: %v", path, err)
	}
	res, err := importer.ImportRows(ctx, st, rows)
	if err != nil {
		log.Fatalf("seed %s: %v", path, err)
	}
	log.Printf("[import] seeded %d rows from %s (%d skipped of %d)", res.Count, path, res.Skipped, res.Total)
}
