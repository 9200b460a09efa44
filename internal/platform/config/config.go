package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	EnvPrefix         = "PETLOG_"
	defaultConfigFile = "config.yaml"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AuthDev        = "dev"
	AuthJWT        = "jwt"
	AuthIntrospect = "introspect"

	MailLog      = "log"
	MailPostmark = "postmark"
)

type Config struct {
	App string `koanf:"app"`

	HTTP struct {
		Port         int           `koanf:"port"`
		ReadTimeout  time.Duration `koanf:"readtimeout"`
		WriteTimeout time.Duration `koanf:"writetimeout"`
		IdleTimeout  time.Duration `koanf:"idletimeout"`
	} `koanf:"http"`

	Log struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	} `koanf:"log"`

	DB struct {
		// memory | postgres | sqlite
		Driver string `koanf:"driver"`
		DSN    string `koanf:"dsn"`
	} `koanf:"db"`

	Auth struct {
		// dev: X-Debug-User-ID, jwt: HS256 bearer, introspect: IAM remoto
		Mode             string `koanf:"mode"`
		JWTSecret        string `koanf:"jwtsecret"`
		IntrospectURL    string `koanf:"introspecturl"`
		IntrospectAPIKey string `koanf:"introspectapikey"`
	} `koanf:"auth"`

	Mail struct {
		Provider string `koanf:"provider"`
		Token    string `koanf:"token"`
		From     string `koanf:"from"`
		APIURL   string `koanf:"apiurl"`
	} `koanf:"mail"`

	Scheduler struct {
		Enabled bool `koanf:"enabled"`
		// Vacío = zona local del proceso.
		Timezone string `koanf:"timezone"`
	} `koanf:"scheduler"`

	RateLimit struct {
		RPS   float64 `koanf:"rps"`
		Burst int     `koanf:"burst"`
	} `koanf:"ratelimit"`
}

// Load lee config.yaml (opcional) y luego variables PETLOG_*.
// PETLOG_CONFIG permite apuntar a otro archivo.
func Load() (*Config, error) {
	path := strings.TrimSpace(os.Getenv(EnvPrefix + "CONFIG"))
	if path == "" {
		path = defaultConfigFile
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "read config file %s", path)
			}
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, v string) (string, any) {
			return envKey(key), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables")
	}

	cfg := &Config{}
	cfg.Scheduler.Enabled = true

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	applyLegacyEnv(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey: PETLOG_HTTP_PORT -> http.port
func envKey(raw string) string {
	k := strings.TrimPrefix(raw, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(k), "_", ".")
}

// Compat con el despliegue anterior (PORT / DB_DSN).
func applyLegacyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Port = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" {
		cfg.DB.DSN = v
		if cfg.DB.Driver == "" {
			cfg.DB.Driver = DriverPostgres
		}
	}
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.App) == "" {
		cfg.App = "pet-care-log"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.HTTP.ReadTimeout <= 0 {
		cfg.HTTP.ReadTimeout = 5 * time.Second
	}
	if cfg.HTTP.WriteTimeout <= 0 {
		cfg.HTTP.WriteTimeout = 10 * time.Second
	}
	if cfg.HTTP.IdleTimeout <= 0 {
		cfg.HTTP.IdleTimeout = 120 * time.Second
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = DriverMemory
	}
	if cfg.Auth.Mode == "" {
		cfg.Auth.Mode = AuthDev
	}
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = MailLog
	}
	if cfg.RateLimit.RPS <= 0 {
		cfg.RateLimit.RPS = 20
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 40
	}

	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	cfg.Auth.Mode = strings.ToLower(strings.TrimSpace(cfg.Auth.Mode))
	cfg.Mail.Provider = strings.ToLower(strings.TrimSpace(cfg.Mail.Provider))
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return errors.Errorf("db.dsn is required for driver %s", c.DB.Driver)
		}
	default:
		return errors.Errorf("unknown db.driver: %s", c.DB.Driver)
	}

	switch c.Auth.Mode {
	case AuthDev:
	case AuthJWT:
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			return errors.New("auth.jwtsecret is required for jwt mode")
		}
	case AuthIntrospect:
		if strings.TrimSpace(c.Auth.IntrospectURL) == "" {
			return errors.New("auth.introspecturl is required for introspect mode")
		}
	default:
		return errors.Errorf("unknown auth.mode: %s", c.Auth.Mode)
	}

	switch c.Mail.Provider {
	case MailLog, MailPostmark:
	default:
		return errors.Errorf("unknown mail.provider: %s", c.Mail.Provider)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resuelve la zona horaria del scheduler.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Scheduler.Timezone)
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid scheduler.timezone %q", tz)
	}
	return loc, nil
}
