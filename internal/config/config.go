package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
		// PublicURL is used for links in generated feeds.
		PublicURL string `mapstructure:"public_url"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	LLM struct {
		// Provider is one of "gemini", "openai" or "disabled".
		Provider      string        `mapstructure:"provider"`
		GeminiAPIKey  string        `mapstructure:"gemini_api_key"`
		GeminiModel   string        `mapstructure:"gemini_model"`
		OpenAIAPIKey  string        `mapstructure:"openai_api_key"`
		OpenAIBaseURL string        `mapstructure:"openai_base_url"`
		OpenAIModel   string        `mapstructure:"openai_model"`
		Timeout       time.Duration `mapstructure:"timeout"`
	} `mapstructure:"llm"`
	Ollama struct {
		Host           string `mapstructure:"host"`
		EmbeddingModel string `mapstructure:"embedding_model"`
	} `mapstructure:"ollama"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	Scheduler struct {
		InsightsRefreshAt string `mapstructure:"insights_refresh_at"`
		// BackupAt schedules the nightly database backup; empty disables it.
		BackupAt string `mapstructure:"backup_at"`
	} `mapstructure:"scheduler"`
}

// LoadConfig reads config.yaml from the given paths (default "."), then .env and the environment.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, strings.TrimSuffix(p, "/")+"/.env")
	}
	if err = godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.public_url", "APP_PUBLIC_URL")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.cache_ttl", "REDIS_CACHE_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")

	v.BindEnv("llm.provider", "LLM_PROVIDER")
	v.BindEnv("llm.gemini_api_key", "GEMINI_API_KEY")
	v.BindEnv("llm.gemini_model", "GEMINI_MODEL")
	v.BindEnv("llm.openai_api_key", "OPENAI_API_KEY")
	v.BindEnv("llm.openai_base_url", "OPENAI_BASE_URL")
	v.BindEnv("llm.openai_model", "OPENAI_MODEL")
	v.BindEnv("llm.timeout", "LLM_TIMEOUT")
	v.BindEnv("ollama.host", "OLLAMA_HOST")
	v.BindEnv("ollama.embedding_model", "OLLAMA_EMBEDDING_MODEL")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")
	v.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")
	v.BindEnv("scheduler.insights_refresh_at", "INSIGHTS_REFRESH_AT")
	v.BindEnv("scheduler.backup_at", "BACKUP_AT")

	err = v.Unmarshal(&cfg)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.public_url", "http://localhost:8080")
	v.SetDefault("redis.cache_ttl", 24*time.Hour)
	v.SetDefault("kafka.group_id", "gamification-group")
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.gemini_model", "gemini-2.5-flash")
	v.SetDefault("llm.openai_model", "llama-3.1-8b-instant")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("ollama.embedding_model", "nomic-embed-text")
	v.SetDefault("scheduler.insights_refresh_at", "03:00")
}
