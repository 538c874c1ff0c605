package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		Enabled      bool   `yaml:"enabled"`
	} `yaml:"email"`

	Matching struct {
		MaxMatches         int     `yaml:"max_matches"`          // K
		SkillWeight        float64 `yaml:"skill_weight"`         // skill-overlap ratio weight
		LocationWeight     float64 `yaml:"location_weight"`      // location match weight
		AvailabilityWeight float64 `yaml:"availability_weight"`  // availability match weight
		FairnessWeight     float64 `yaml:"fairness_weight"`      // exposure penalty weight
		FairnessWindowMin  int     `yaml:"fairness_window_min"`  // trailing window, minutes
		FairnessSaturation int     `yaml:"fairness_saturation"`  // proposals at which penalty maxes out
	} `yaml:"matching"`

	RateLimit struct {
		Requests      int `yaml:"requests"`
		WindowSeconds int `yaml:"window_seconds"`
	} `yaml:"rate_limit"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyMatchingDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Environment-variable mode (tests, containers)
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")

	applyMatchingDefaults(&cfg)
	AppConfig = &cfg
}

func applyMatchingDefaults(cfg *Config) {
	m := &cfg.Matching
	if m.MaxMatches <= 0 {
		m.MaxMatches = 10
	}
	if m.SkillWeight == 0 && m.LocationWeight == 0 && m.AvailabilityWeight == 0 {
		m.SkillWeight = 0.6
		m.LocationWeight = 0.2
		m.AvailabilityWeight = 0.2
	}
	if m.FairnessWeight == 0 {
		m.FairnessWeight = 0.3
	}
	if m.FairnessWindowMin <= 0 {
		m.FairnessWindowMin = 24 * 60
	}
	if m.FairnessSaturation <= 0 {
		m.FairnessSaturation = 20
	}
	if cfg.RateLimit.Requests <= 0 {
		cfg.RateLimit.Requests = 120
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
