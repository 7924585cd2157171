package config

import (
	"time"
)

type DB struct {
	Url             string        `envconfig:"URL"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
}

// Jwt holds the signing settings of the two token kinds. Access and refresh
// tokens are signed with different secrets.
type Jwt struct {
	AccessSecret  string        `envconfig:"ACCESS_SECRET" required:"true"`
	AccessExpiry  time.Duration `envconfig:"ACCESS_EXPIRY" default:"15m"`
	RefreshSecret string        `envconfig:"REFRESH_SECRET" required:"true"`
	RefreshExpiry time.Duration `envconfig:"REFRESH_EXPIRY" default:"168h"`
	Issuer        string        `envconfig:"ISSUER" default:"bankapi"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type Redis struct {
	URL       string `envconfig:"URL" default:""`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"bankapi:"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Metrics struct {
	Enabled   bool   `envconfig:"ENABLED" default:"true"`
	Namespace string `envconfig:"NAMESPACE" default:"bankapi"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[bankapi]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env             string     `envconfig:"APP_ENV" default:"development"`
	DefaultCurrency string     `envconfig:"DEFAULT_CURRENCY" default:"USD"`
	Server          *Server    `envconfig:"SERVER"`
	Log             *Log       `envconfig:"LOG"`
	DB              *DB        `envconfig:"DATABASE"`
	Auth            *Auth      `envconfig:"AUTH"`
	Redis           *Redis     `envconfig:"REDIS"`
	RateLimit       *RateLimit `envconfig:"RATE_LIMIT"`
	Metrics         *Metrics   `envconfig:"METRICS"`
}
