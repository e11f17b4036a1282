package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Pacing         Pacing         `mapstructure:",squash"`
	Batch          Batch          `mapstructure:",squash"`
	Audit          Audit          `mapstructure:",squash"`
	DailyPacingRun DailyPacingRun `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"app_version"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Enabled  bool   `mapstructure:"database_enabled"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Pacing struct {
	VATRateRaw string          `mapstructure:"vat_rate"`
	VATRate    decimal.Decimal `mapstructure:"-"`
}

type Batch struct {
	MaxConcurrentJobs int `mapstructure:"batch_max_concurrent_jobs"`
}

type Audit struct {
	OutputDir     string `mapstructure:"audit_output_dir"`
	ReportEnabled bool   `mapstructure:"audit_report_enabled"`
	RetentionDays int    `mapstructure:"audit_retention_days"`
	RetentionCron string `mapstructure:"snapshot_retention_cron"`
}

type DailyPacingRun struct {
	CronSchedule string `mapstructure:"daily_pacing_run_cron"`
	InputPath    string `mapstructure:"daily_pacing_run_input_path"`
	Enabled      bool   `mapstructure:"daily_pacing_run_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_VERSION", "0.1.0")

	viper.SetDefault("DATABASE_ENABLED", false)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/budgetguard?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("VAT_RATE", "0.15") // IVA da África do Sul

	viper.SetDefault("BATCH_MAX_CONCURRENT_JOBS", 4)

	viper.SetDefault("AUDIT_OUTPUT_DIR", "output")
	viper.SetDefault("AUDIT_REPORT_ENABLED", true)
	viper.SetDefault("AUDIT_RETENTION_DAYS", 400)
	viper.SetDefault("SNAPSHOT_RETENTION_CRON", "30 3 * * *")

	viper.SetDefault("DAILY_PACING_RUN_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
	viper.SetDefault("DAILY_PACING_RUN_INPUT_PATH", "campaigns.csv")
	viper.SetDefault("DAILY_PACING_RUN_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Debug("Arquivo .env lido pelo Viper com sucesso")
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

	if err := config.finalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize deriva os campos calculados a partir dos valores lidos
func (c *Config) finalize() error {
	vatRate, err := decimal.NewFromString(c.Pacing.VATRateRaw)
	if err != nil {
		return fmt.Errorf("VAT_RATE inválido %q: %w", c.Pacing.VATRateRaw, err)
	}
	if vatRate.IsNegative() {
		return fmt.Errorf("VAT_RATE não pode ser negativo: %s", vatRate)
	}
	c.Pacing.VATRate = vatRate

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
