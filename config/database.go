package config

import "time"

// DBConfig contains PostgreSQL configuration for the optional outcome journal.
type DBConfig struct {
	// Enabled turns on the outcome journal. The result store itself never needs a database.
	Enabled  bool   `env:"ENABLED"  envDefault:"false"`
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"text2ture"`
	Password string `env:"PASSWORD" envDefault:"text2ture"`
	Name     string `env:"NAME"     envDefault:"text2ture"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the optional submission registry.
type RedisConfig struct {
	Enabled            bool     `env:"ENABLED"              envDefault:"false"`
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`

	// RegistryTTL is how long a submission record is kept.
	RegistryTTL time.Duration `env:"REGISTRY_TTL" envDefault:"24h"`
	// KeyPrefix namespaces registry keys.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"text2ture:submission:"`
}

// Sanitize applies guardrails to redis configuration values.
func (r *RedisConfig) Sanitize() {
	if r.RegistryTTL < time.Minute {
		r.RegistryTTL = time.Minute
	}
	if r.KeyPrefix == "" {
		r.KeyPrefix = "text2ture:submission:"
	}
}
