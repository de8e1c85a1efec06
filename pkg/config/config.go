package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/OfriRose/cosmic-canvas/pkg/consts"

	"github.com/adampresley/configinator"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port               string `flag:"port" env:"APP_PORT" default:"8080" description:"Port to bind the HTTP server to"`
	LogLevel           string `flag:"loglevel" env:"LOG_LEVEL" default:"info" description:"Log level: debug, info, warn or error"`
	NasaApiKey         string `flag:"nasaapikey" env:"NASA_API_KEY" default:"" description:"NASA API key, DEMO_KEY when empty"`
	SecretsFile        string `flag:"secrets" env:"SECRETS_FILE" default:".secrets.env" description:"Local dotenv file that may define NASA_API_KEY"`
	APODURL            string `flag:"apodurl" env:"APOD_URL" default:"https://api.nasa.gov/planetary/apod" description:"APOD endpoint"`
	MASTURL            string `flag:"masturl" env:"MAST_URL" default:"https://mast.stsci.edu" description:"MAST base URL"`
	CacheTTLSeconds    int    `flag:"cachettl" env:"CACHE_TTL_SECONDS" default:"3600" description:"How long fetched results stay cached"`
	HTTPTimeoutSeconds int    `flag:"httptimeout" env:"HTTP_TIMEOUT_SECONDS" default:"10" description:"Timeout for upstream API calls"`
	PreviewWorkers     int    `flag:"previewworkers" env:"PREVIEW_WORKERS" default:"4" description:"Concurrent preview lookups per archive query"`
	DBHost             string `flag:"dbhost" env:"DB_HOST" default:"" description:"Postgres host for a shared cache, in-memory cache when empty"`
	DBPort             string `flag:"dbport" env:"DB_PORT" default:"5432" description:"Postgres port"`
	DBUsername         string `flag:"dbuser" env:"DB_USERNAME" default:"postgres" description:"Postgres user"`
	DBPassword         string `flag:"dbpassword" env:"DB_PASSWORD" default:"" description:"Postgres password"`
	DBName             string `flag:"dbname" env:"DB_NAME" default:"cosmic" description:"Postgres database"`
	DBSSLMode          string `flag:"dbsslmode" env:"DB_SSLMODE" default:"disable" description:"Postgres sslmode"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)

	config.NasaApiKey = ResolveApiKey(config.NasaApiKey, config.SecretsFile)
	return config
}

// ResolveApiKey: ключ из файла секретов важнее переменной окружения,
// если нет ни того ни другого - общий DEMO_KEY
func ResolveApiKey(envKey, secretsFile string) string {
	key := strings.TrimSpace(envKey)

	if secretsFile != "" {
		secrets, err := godotenv.Read(secretsFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			logrus.Warnf("failed to read secrets file %s: %q", secretsFile, err)
		default:
			if v := strings.TrimSpace(secrets[consts.NasaApiKey]); v != "" {
				key = v
			}
		}
	}

	if key == "" {
		key = consts.DemoKey
	}

	return key
}

// MaskKey оставляет от ключа только края, для логов
func MaskKey(key string) string {
	if len(key) <= 8 {
		return key[:min(len(key), 4)] + "..."
	}

	return key[:4] + "..." + key[len(key)-4:]
}

func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return consts.CacheTTL
	}

	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 10 * time.Second
	}

	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c Config) UsePostgresCache() bool {
	return c.DBHost != ""
}
