package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/restaurant-service/pkg/kafka"
	"github.com/Astemirdum/restaurant-service/pkg/logger"
	"github.com/Astemirdum/restaurant-service/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"RESTAURANT_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"RESTAURANT_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Catalog struct {
	// Path of the catalog json file; ignored when URL is set.
	Path string `envconfig:"CATALOG_PATH" default:"restaurants.json"`
	URL  string `envconfig:"CATALOG_URL"`
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type Storage struct {
	// Driver is one of memory, file, redis, postgres.
	Driver  string `envconfig:"STORAGE_DRIVER"`
	FileDir string `envconfig:"STORAGE_FILE_DIR" default:"data"`
	Redis   Redis
}

type Session struct {
	IdleTTL time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m"`
}

type Config struct {
	Server   HTTPServer   `yaml:"server"`
	Catalog  Catalog      `yaml:"catalog"`
	Storage  Storage      `yaml:"storage"`
	Database postgres.DB  `yaml:"db"`
	Kafka    kafka.Config `yaml:"kafka"`
	Session  Session      `yaml:"session"`
	Log      logger.Log   `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config, err := load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

// load applies ops on top of the defaults, then the environment.
// Environment variables win over both.
func load(ops ...Option) (*Config, error) {
	var config Config
	for _, op := range append(defaultOptions(), ops...) {
		op(&config)
	}
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func printConfig(cfg *Config) {
	masked := *cfg
	masked.Database.Password = "***"
	masked.Storage.Redis.Password = "***"
	jscfg, _ := json.MarshalIndent(masked, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
