package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultReconnectInterval  = 5 * time.Second
	DefaultWorkerPort         = 8081
	defaultMongoDatabase      = "academy"
	defaultAccessTokenTTL     = time.Hour
	defaultRefreshTokenTTL    = 7 * 24 * time.Hour
	defaultExtendedTokenTTL   = 90 * 24 * time.Hour
	minBcryptCost             = 10
)

// Storage drivers accepted by storage.driver.
const (
	StorageDriverMongo    = "mongo"
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		CORS CORSConfig `json:"cors" yaml:"cors"`
	} `json:"http" yaml:"http"`

	Storage StorageConfig `json:"storage" yaml:"storage"`

	Mongo *MongoConfig `json:"mongo" yaml:"mongo"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Redis backs the access token revocation list; optional
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	// PubSub configuration for lead event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`

	// Worker receives pushed lead events; disabled when nil
	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowOrigins []string `json:"allowOrigins" yaml:"allowOrigins"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver"`

	// How often the store is pinged to refresh its availability flag
	ReconnectInterval time.Duration `json:"reconnectInterval" yaml:"reconnectInterval"`
}

// MongoConfig defines the document database connection.
type MongoConfig struct {
	URI                    string        `json:"uri" yaml:"uri"`
	Database               string        `json:"database" yaml:"database"`
	ConnectTimeout         time.Duration `json:"connectTimeout" yaml:"connectTimeout"`
	ServerSelectionTimeout time.Duration `json:"serverSelectionTimeout" yaml:"serverSelectionTimeout"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost              int           `json:"bcryptCost" yaml:"bcryptCost"`
	AccessTokenTTL          time.Duration `json:"accessTokenTTL" yaml:"accessTokenTTL"`
	RefreshTokenTTL         time.Duration `json:"refreshTokenTTL" yaml:"refreshTokenTTL"`
	ExtendedRefreshTokenTTL time.Duration `json:"extendedRefreshTokenTTL" yaml:"extendedRefreshTokenTTL"`
}

// RedisConfig defines the revocation list store. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// WorkerConfig defines the Pub/Sub push endpoint server.
type WorkerConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Port    int  `json:"port" yaml:"port"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// ENV_VAR_NAME becomes a dotted path aligned with the YAML keys,
	// e.g. HTTP_MAXREQUESTBODYSIZE -> http.maxRequestBodySize
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyLegacyEnv(cfg, os.Getenv)
	cfg.applyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyLegacyEnv honours the variable names used by earlier deployments of the platform.
func applyLegacyEnv(cfg *Config, getenv func(string) string) {
	if uri := getenv("MONGODB_URI"); uri != "" {
		if cfg.Mongo == nil {
			cfg.Mongo = &MongoConfig{}
		}
		if cfg.Mongo.URI == "" {
			cfg.Mongo.URI = uri
		}
	}

	if secret := getenv("JWT_SECRET"); secret != "" {
		if cfg.SecretKey.Access == "" {
			cfg.SecretKey.Access = secret
		}
		if cfg.SecretKey.Refresh == "" {
			cfg.SecretKey.Refresh = secret
		}
	}

	if port, err := strconv.Atoi(getenv("PORT")); err == nil && port > 0 {
		cfg.HTTP.Port = port
	}

	if origins := getenv("CORS_ORIGINS"); origins != "" && len(cfg.HTTP.CORS.AllowOrigins) == 0 {
		for origin := range strings.SplitSeq(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.HTTP.CORS.AllowOrigins = append(cfg.HTTP.CORS.AllowOrigins, trimmed)
			}
		}
	}
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageDriverMongo
	}
	if cfg.Storage.ReconnectInterval <= 0 {
		cfg.Storage.ReconnectInterval = defaultReconnectInterval
	}

	if cfg.Mongo != nil && cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defaultMongoDatabase
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost < minBcryptCost {
		cfg.Auth.BcryptCost = minBcryptCost
	}
	if cfg.Auth.AccessTokenTTL <= 0 {
		cfg.Auth.AccessTokenTTL = defaultAccessTokenTTL
	}
	if cfg.Auth.RefreshTokenTTL <= 0 {
		cfg.Auth.RefreshTokenTTL = defaultRefreshTokenTTL
	}
	if cfg.Auth.ExtendedRefreshTokenTTL <= 0 {
		cfg.Auth.ExtendedRefreshTokenTTL = defaultExtendedTokenTTL
	}

	if cfg.Metrics != nil && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Worker != nil && cfg.Worker.Port <= 0 {
		cfg.Worker.Port = DefaultWorkerPort
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Format: POSTGRES_REPLICAS_{index}_{HOST|PORT|USERNAME|PASSWORD}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
