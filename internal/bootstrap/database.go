package bootstrap

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/text2ture/config"
	"github.com/target/text2ture/internal/migrate"
)

const connectTimeout = 5 * time.Second

// BackingConfig describes the optional Postgres and Redis connections.
type BackingConfig struct {
	Postgres config.DBConfig
	Redis    config.RedisConfig
	Logger   *slog.Logger
}

// postgresDSN renders cfg as a URL so credentials with special characters survive.
func postgresDSN(cfg config.DBConfig) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectDB opens the outcome journal database. It returns (nil, nil) when
// Postgres is disabled.
func ConnectDB(ctx context.Context, cfg BackingConfig) (*sql.DB, error) {
	if !cfg.Postgres.Enabled {
		return nil, nil
	}

	db, err := sql.Open("pgx", postgresDSN(cfg.Postgres))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The journal is write-light; a small pool is plenty.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if pingErr := db.PingContext(pingCtx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.InfoContext(ctx, "database connected",
			"host", cfg.Postgres.Host,
			"port", cfg.Postgres.Port,
			"database", cfg.Postgres.Name,
		)
	}
	return db, nil
}

// ConnectRedis opens the submission registry client. It returns (nil, nil)
// when Redis is disabled.
//
//nolint:ireturn // single, sentinel, and cluster clients are chosen at runtime.
func ConnectRedis(ctx context.Context, cfg BackingConfig) (redis.UniversalClient, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client, addrDesc, err := newRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.InfoContext(ctx, "redis connected", "addr", redactAddr(addrDesc))
	}
	return client, nil
}

//nolint:ireturn // see ConnectRedis.
func newRedisClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	switch {
	case cfg.UseCluster:
		return newClusterClient(cfg)
	case cfg.UseSentinel:
		return newSentinelClient(cfg)
	default:
		return newDirectClient(cfg)
	}
}

//nolint:ireturn // see ConnectRedis.
func newClusterClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	opts := &redis.ClusterOptions{
		Addrs:    trimAddrs(cfg.ClusterNodes),
		Password: cfg.Password,
	}

	// Without explicit nodes the URI seeds the cluster.
	if len(opts.Addrs) == 0 {
		seed, err := clusterSeed(cfg.URI)
		if err != nil {
			return nil, "", err
		}
		if seed != nil {
			opts.Addrs = []string{seed.Addr}
			opts.Username = seed.Username
			opts.TLSConfig = seed.TLSConfig
			if seed.Password != "" {
				opts.Password = seed.Password
			}
		}
	}
	if len(opts.Addrs) == 0 {
		return nil, "", errors.New("redis cluster configuration requires at least one address")
	}

	return redis.NewClusterClient(opts), "cluster:" + strings.Join(opts.Addrs, ","), nil
}

//nolint:ireturn // see ConnectRedis.
func newSentinelClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	nodes := trimAddrs(cfg.SentinelNodes)
	if len(nodes) == 0 {
		return nil, "", errors.New("redis sentinel configuration requires at least one sentinel node")
	}

	client := redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:       cfg.SentinelMasterName,
		SentinelAddrs:    nodes,
		Password:         cfg.Password,
		SentinelPassword: cfg.SentinelPassword,
	})
	return client, "sentinel:" + cfg.SentinelMasterName, nil
}

//nolint:ireturn // see ConnectRedis.
func newDirectClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, "", errors.New("redis direct configuration requires a URI")
	}

	if !isRedisURL(uri) {
		return redis.NewClient(&redis.Options{Addr: uri, Password: cfg.Password}), uri, nil
	}

	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, "", fmt.Errorf("parse redis url: %w", err)
	}
	if opt.Password == "" {
		opt.Password = cfg.Password
	}
	return redis.NewClient(opt), opt.Addr, nil
}

type redisSeed struct {
	Addr      string
	Username  string
	Password  string
	TLSConfig *tls.Config
}

// clusterSeed derives a single cluster seed node from uri, which may be a bare
// host:port or a redis:// URL. An empty uri yields no seed.
func clusterSeed(uri string) (*redisSeed, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, nil
	}
	if !isRedisURL(uri) {
		return &redisSeed{Addr: uri}, nil
	}

	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis cluster url: %w", err)
	}
	return &redisSeed{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		TLSConfig: opt.TLSConfig,
	}, nil
}

func trimAddrs(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, addr := range raw {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func isRedisURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}

// redactAddr strips credentials from an address description before logging.
func redactAddr(addr string) string {
	if u, err := url.Parse(addr); err == nil && u.User != nil {
		return u.Scheme + "://*@" + u.Host + u.Path
	}
	if i := strings.LastIndex(addr, "@"); i > -1 {
		return addr[i+1:]
	}
	return addr
}

// RunMigrations applies the outcome journal schema.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if db == nil {
		return nil
	}
	if err := migrate.Run(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if logger != nil {
		logger.InfoContext(ctx, "database migrations completed")
	}
	return nil
}
