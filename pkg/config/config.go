package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Gateway      GatewayConfig
	Referrals    ReferralsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BRIDGE_APP_ENV" required:"true"`
	Port         string `envconfig:"BRIDGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BRIDGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BRIDGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BRIDGE_DB_DSN"`
	Driver string `envconfig:"BRIDGE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BRIDGE_DB_HOST"`
	LegacyPort     int    `envconfig:"BRIDGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BRIDGE_DB_USER"`
	LegacyPassword string `envconfig:"BRIDGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"BRIDGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"BRIDGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BRIDGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BRIDGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BRIDGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BRIDGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BRIDGE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BRIDGE_REDIS_ADDR"`
	Password     string        `envconfig:"BRIDGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BRIDGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BRIDGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BRIDGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BRIDGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BRIDGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BRIDGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BRIDGE_AUTO_MIGRATE" default:"false"`
}

// GatewayConfig names the trusted identity headers set by the auth gateway in
// front of this service. Authentication itself happens upstream; the API only
// consumes the resolved actor.
type GatewayConfig struct {
	UserIDHeader string `envconfig:"BRIDGE_GATEWAY_USER_ID_HEADER" default:"X-Bridge-User-Id"`
	RoleHeader   string `envconfig:"BRIDGE_GATEWAY_ROLE_HEADER" default:"X-Bridge-Role"`
}

type ReferralsConfig struct {
	TokenTTL time.Duration `envconfig:"BRIDGE_REFERRAL_TOKEN_TTL" default:"336h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
