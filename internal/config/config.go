package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	AdSync       AdSync       `mapstructure:",squash"`
	MetricsCache MetricsCache `mapstructure:",squash"`
	SecretKey    string       `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL               string `mapstructure:"meta_base_url"`
	URL                   string `mapstructure:"meta_url"`
	Version               string `mapstructure:"meta_version"`
	RequestTimeoutSeconds int    `mapstructure:"meta_request_timeout_seconds"`
	MaxPages              int    `mapstructure:"meta_max_pages"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// AdSync controla a reconciliação noturna de contas de anúncio.
type AdSync struct {
	CronSchedule       string `mapstructure:"ad_sync_cron"`
	Enabled            bool   `mapstructure:"ad_sync_enabled"`
	ChunkSize          int    `mapstructure:"ad_sync_chunk_size"`
	ChunkDelaySeconds  int    `mapstructure:"ad_sync_chunk_delay_seconds"`
	WindowDelaySeconds int    `mapstructure:"ad_sync_window_delay_seconds"`
	MaxConcurrentJobs  int    `mapstructure:"ad_sync_max_concurrent_jobs"`
}

// MetricsCache controla os fallbacks de leitura do cache de métricas.
type MetricsCache struct {
	RecentDays                int     `mapstructure:"metrics_cache_recent_days"`
	CoverageThreshold         float64 `mapstructure:"metrics_cache_coverage_threshold"`
	FallbackCoverageThreshold float64 `mapstructure:"metrics_cache_fallback_coverage_threshold"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adsight")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("META_MAX_PAGES", 50)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	// Defaults para a reconciliação de contas
	viper.SetDefault("AD_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("AD_SYNC_ENABLED", false)
	viper.SetDefault("AD_SYNC_CHUNK_SIZE", 50)           // Anúncios por chamada de insights
	viper.SetDefault("AD_SYNC_CHUNK_DELAY_SECONDS", 2)   // Pausa entre lotes
	viper.SetDefault("AD_SYNC_WINDOW_DELAY_SECONDS", 5)  // Pausa entre janelas
	viper.SetDefault("AD_SYNC_MAX_CONCURRENT_JOBS", 3)

	// Defaults para a leitura em camadas do cache de métricas
	viper.SetDefault("METRICS_CACHE_RECENT_DAYS", 14)
	viper.SetDefault("METRICS_CACHE_COVERAGE_THRESHOLD", 0.8)
	viper.SetDefault("METRICS_CACHE_FALLBACK_COVERAGE_THRESHOLD", 0.7)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
