package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"vidtube/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Storage     Storage     `json:"storage"`
	Events      Events      `json:"events"`
	Pagination  Pagination  `json:"pagination"`
	Cache       Cache       `json:"cache"`
}

type App struct {
	Port               int           `json:"port"`
	AccessTokenSecret  string        `json:"accessTokenSecret"`
	AccessTokenTTL     time.Duration `json:"accessTokenTTL"`
	RefreshTokenSecret string        `json:"refreshTokenSecret"`
	RefreshTokenTTL    time.Duration `json:"refreshTokenTTL"`
	RequestTimeout     time.Duration `json:"requestTimeout"`
	SecureCookies      bool          `json:"secureCookies"`
	CorsOrigins        []string      `json:"corsOrigins"`
	WatchHistoryLimit  int           `json:"watchHistoryLimit"`
	TLSEnabled         bool          `json:"tlsEnabled"`
	TLSCertFile        string        `json:"tlsCertFile"`
	TLSKeyFile         string        `json:"tlsKeyFile"`
}

type Database struct {
	Mongo Mongo `json:"mongo"`
}

type Mongo struct {
	URI            string        `json:"uri"`
	Name           string        `json:"name"`
	Host           string        `json:"host"`
	Port           string        `json:"port"`
	User           string        `json:"user"`
	Password       string        `json:"password"`
	ConnectTimeout time.Duration `json:"connectTimeout"`
}

type RedisClient struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Password     string `json:"password"`
	DatabaseName string `json:"databaseName"`
	Username     string `json:"username"`
}

type Storage struct {
	Endpoint      string `json:"endpoint"`
	AccessKey     string `json:"accessKey"`
	SecretKey     string `json:"secretKey"`
	Bucket        string `json:"bucket"`
	UseSSL        bool   `json:"useSSL"`
	PublicBaseURL string `json:"publicBaseURL"`
	TempDir       string `json:"tempDir"`
	MaxUploadMB   int64  `json:"maxUploadMB"`
}

// Events selects where domain events go. Provider is one of none, pubsub, servicebus.
type Events struct {
	Provider   string     `json:"provider"`
	Pubsub     Pubsub     `json:"pubsub"`
	ServiceBus ServiceBus `json:"serviceBus"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	TopicID   string `json:"topicID"`
}

type ServiceBus struct {
	Namespace string `json:"namespace"`
	QueueName string `json:"queueName"`
}

type Pagination struct {
	DefaultLimit int `json:"defaultLimit"`
	MaxLimit     int `json:"maxLimit"`
}

type Cache struct {
	ChannelStatsTTL time.Duration `json:"channelStatsTTL"`
}

var C Config

func init() {
	Reload()
}

// Reload rebuilds C from the config file and the current environment, e.g. after LoadEnvFromFile.
func Reload() {
	C = Config{}
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initStorage(&C)
	applyDefaults(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if v := os.Getenv("MONGODB_URI"); v != "" {
		C.Database.Mongo.URI = v
	}
	if C.Database.Mongo.Name == "" {
		C.Database.Mongo.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Mongo.Port == "" {
		C.Database.Mongo.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Mongo.User == "" {
		C.Database.Mongo.User = os.Getenv("DB_USER")
	}
	if C.Database.Mongo.Password == "" {
		C.Database.Mongo.Password = os.Getenv("DB_PASSWORD")
	}
	if C.RedisClient.Host == "" {
		C.RedisClient.Host = os.Getenv("REDIS_HOST")
	}
	if C.RedisClient.Port == "" {
		C.RedisClient.Port = os.Getenv("REDIS_PORT")
	}
	if C.RedisClient.Password == "" {
		C.RedisClient.Password = os.Getenv("REDIS_PASSWORD")
	}
}

func initApp(C *Config) {
	if v := os.Getenv("ACCESS_TOKEN_SECRET"); v != "" {
		C.App.AccessTokenSecret = v
	}
	if v := os.Getenv("REFRESH_TOKEN_SECRET"); v != "" {
		C.App.RefreshTokenSecret = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		C.App.CorsOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			C.App.TLSEnabled = false
		}
	}
	if C.App.TLSCertFile == "" {
		C.App.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	}
	if C.App.TLSKeyFile == "" {
		C.App.TLSKeyFile = os.Getenv("TLS_KEY_FILE")
	}
	if C.App.AccessTokenSecret == "" || C.App.RefreshTokenSecret == "" {
		logger.GetLogger().Warn("Token secrets not set; authentication will fail. Provide ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET.")
	}
}

func initStorage(C *Config) {
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		C.Storage.Endpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		C.Storage.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		C.Storage.SecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		C.Storage.Bucket = v
	}
	if v := os.Getenv("EVENTS_PROVIDER"); v != "" {
		C.Events.Provider = v
	}
}

// applyDefaults fills everything the service cannot run without.
func applyDefaults(C *Config) {
	if C.App.Port == 0 {
		C.App.Port = 8000
	}
	if C.App.AccessTokenTTL <= 0 {
		C.App.AccessTokenTTL = 24 * time.Hour
	}
	if C.App.RefreshTokenTTL <= 0 {
		C.App.RefreshTokenTTL = 10 * 24 * time.Hour
	}
	if C.App.RequestTimeout <= 0 {
		C.App.RequestTimeout = 10 * time.Second
	}
	if C.App.WatchHistoryLimit <= 0 {
		C.App.WatchHistoryLimit = 100
	}
	if C.Database.Mongo.Name == "" {
		C.Database.Mongo.Name = "vidtube"
	}
	if C.Database.Mongo.ConnectTimeout <= 0 {
		C.Database.Mongo.ConnectTimeout = 10 * time.Second
	}
	if C.Storage.Bucket == "" {
		C.Storage.Bucket = "vidtube"
	}
	if C.Storage.TempDir == "" {
		C.Storage.TempDir = os.TempDir()
	}
	if C.Storage.MaxUploadMB <= 0 {
		C.Storage.MaxUploadMB = 512
	}
	if C.Events.Provider == "" {
		C.Events.Provider = "none"
	}
	if C.Pagination.MaxLimit <= 0 {
		C.Pagination.MaxLimit = 100
	}
	if C.Pagination.DefaultLimit <= 0 || C.Pagination.DefaultLimit > C.Pagination.MaxLimit {
		C.Pagination.DefaultLimit = min(10, C.Pagination.MaxLimit)
	}
	if C.Cache.ChannelStatsTTL <= 0 {
		C.Cache.ChannelStatsTTL = 5 * time.Minute
	}
}

// MongoURI returns the configured connection string, building one from host parts when no URI is set.
func (m Mongo) MongoURI() string {
	if m.URI != "" {
		return m.URI
	}
	host := m.Host
	if host == "" {
		host = "localhost"
	}
	port := m.Port
	if port == "" {
		port = "27017"
	}
	if m.User != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s", m.User, m.Password, host, port)
	}
	return fmt.Sprintf("mongodb://%s:%s", host, port)
}
