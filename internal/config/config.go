package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// 接口地址解析
	APIBaseURL   string `env:"API_BASE_URL" envDefault:""`
	APITarget    string `env:"API_TARGET" envDefault:""`
	AppEnv       string `env:"APP_ENV" envDefault:"production"`
	DevProxyAddr string `env:"DEV_PROXY_ADDR" envDefault:"http://127.0.0.1:5173"`
	APIPrefix    string `env:"API_PREFIX" envDefault:"/api"`
	PageScheme   string `env:"PAGE_SCHEME" envDefault:"https"`

	// 旧版鉴权头兼容开关，关闭即视为弃用
	LegacyAuthHeader bool `env:"LEGACY_AUTH_HEADER" envDefault:"true"`

	// 本地状态存储
	StateStore     string `env:"STATE_STORE" envDefault:"file"`
	StateFile      string `env:"STATE_FILE" envDefault:"datas/client-state.json"`
	StateDSN       string `env:"STATE_DSN" envDefault:""`
	StateDBPath    string `env:"STATE_DB_PATH" envDefault:"datas/client-state.db"`
	StateRedisAddr string `env:"STATE_REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	StateRedisDB   int    `env:"STATE_REDIS_DB" envDefault:"0"`
	StateRedisPass string `env:"STATE_REDIS_PASSWORD" envDefault:""`
	StatePrefix    string `env:"STATE_PREFIX" envDefault:"collectibles:"`

	SessionTTLMinutes int `env:"SESSION_TTL_MINUTES" envDefault:"0"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// IsDevelopment reports whether requests should go through the local dev proxy.
func (c Config) IsDevelopment() bool {
	switch c.AppEnv {
	case "development", "dev", "local":
		return true
	default:
		return false
	}
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.Debugf("%#v\n", Conf)
	return Conf, nil
}
