package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vfg2006/commerce-insights-api/internal/domain"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Commerce   Commerce   `mapstructure:",squash"`
	Cache      Cache      `mapstructure:",squash"`
	Report     Report     `mapstructure:",squash"`
	ReportSync ReportSync `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Enabled  bool   `mapstructure:"database_enabled"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Commerce é a configuração da API de vendas consumida pelo motor.
type Commerce struct {
	AuthURL          string `mapstructure:"commerce_auth_url"`
	APIBaseURL       string `mapstructure:"commerce_api_base_url"`
	OrganizationSlug string `mapstructure:"commerce_organization_slug"`
	ClientID         string `mapstructure:"commerce_client_id"`
	ClientSecret     string `mapstructure:"commerce_client_secret"`
	PageSize         int    `mapstructure:"commerce_page_size"`
	TokenFile        string `mapstructure:"commerce_token_file"`
}

type Cache struct {
	Enabled     bool   `mapstructure:"orders_cache_enabled"`
	MaxAgeHours int    `mapstructure:"orders_cache_max_age_hours"`
	OrdersFile  string `mapstructure:"orders_cache_file"`
}

type Report struct {
	CatalogFile         string `mapstructure:"report_catalog_file"`
	ReferralProductName string `mapstructure:"report_referral_product_name"`
}

type ReportSync struct {
	CronSchedule string `mapstructure:"report_sync_cron"`
	Enabled      bool   `mapstructure:"report_sync_enabled"`
}

type Auth struct {
	SecretKey            string `mapstructure:"secret_key"`
	OperatorUser         string `mapstructure:"operator_user"`
	OperatorPasswordHash string `mapstructure:"operator_password_hash"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_ENABLED", false)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/insights")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("COMMERCE_AUTH_URL", "https://api.helloasso.com/oauth2/token")
	viper.SetDefault("COMMERCE_API_BASE_URL", "https://api.helloasso.com/v5")
	viper.SetDefault("COMMERCE_PAGE_SIZE", 20)
	viper.SetDefault("COMMERCE_TOKEN_FILE", "token.json")

	viper.SetDefault("ORDERS_CACHE_ENABLED", false)
	viper.SetDefault("ORDERS_CACHE_MAX_AGE_HOURS", 1)
	viper.SetDefault("ORDERS_CACHE_FILE", "orders_cache.json")

	viper.SetDefault("REPORT_CATALOG_FILE", "catalog.yaml")

	// Todos os dias às 6h da manhã
	viper.SetDefault("REPORT_SYNC_CRON", "0 6 * * *")
	viper.SetDefault("REPORT_SYNC_ENABLED", false)

	viper.SetDefault("SECRET_KEY", "")
	viper.SetDefault("OPERATOR_USER", "admin")
	viper.SetDefault("OPERATOR_PASSWORD_HASH", "")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Carrega o .env com godotenv antes do viper ler o ambiente
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate confere as chaves obrigatórias antes de qualquer atividade de
// rede. Falha aqui é fatal.
func (c *Config) Validate() error {
	required := map[string]string{
		"commerce_client_id":           c.Commerce.ClientID,
		"commerce_client_secret":       c.Commerce.ClientSecret,
		"commerce_organization_slug":   c.Commerce.OrganizationSlug,
		"report_catalog_file":          c.Report.CatalogFile,
		"report_referral_product_name": c.Report.ReferralProductName,
	}

	for key, value := range required {
		if value == "" {
			return errors.Wrapf(domain.ErrConfigInvalid, "a chave '%s' está ausente ou vazia", key)
		}
	}

	if c.Cache.Enabled && c.Cache.MaxAgeHours <= 0 {
		return errors.Wrap(domain.ErrConfigInvalid, "orders_cache_max_age_hours deve ser positivo quando o cache está habilitado")
	}

	return nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado; usando apenas variáveis de ambiente")
}
