package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Salesforce     Salesforce     `mapstructure:",squash"`
	QuickBooks     QuickBooks     `mapstructure:",squash"`
	SalesforceSync SalesforceSync `mapstructure:",squash"`
	EODSnapshot    EODSnapshot    `mapstructure:",squash"`
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

type Salesforce struct {
	URL         string        `mapstructure:"salesforce_url"`
	AccessToken string        `mapstructure:"salesforce_access_token"`
	APIVersion  string        `mapstructure:"salesforce_api_version"`
	Timeout     time.Duration `mapstructure:"salesforce_timeout"`
}

type QuickBooks struct {
	URL         string        `mapstructure:"quickbooks_url"`
	AccessToken string        `mapstructure:"quickbooks_access_token"`
	RealmID     string        `mapstructure:"quickbooks_realm_id"`
	Timeout     time.Duration `mapstructure:"quickbooks_timeout"`
	Enabled     bool          `mapstructure:"quickbooks_enabled"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`

	// Fuso de referência para o dia contábil dos snapshots
	ReferenceTimezone string `mapstructure:"reference_timezone"`

	// Quando definido (YYYY-MM-DD), oportunidades fechadas antes desta
	// data ficam fora das agregações de bookings
	BookingsCutoffDate string `mapstructure:"bookings_cutoff_date"`
}

type SalesforceSync struct {
	CronSchedule string `mapstructure:"salesforce_sync_cron"`
	Enabled      bool   `mapstructure:"salesforce_sync_enabled"`
}

type EODSnapshot struct {
	CronSchedule string `mapstructure:"eod_snapshot_cron"`
	Enabled      bool   `mapstructure:"eod_snapshot_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/cfo_copilot")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SALESFORCE_URL", "https://dazos.my.salesforce.com")
	viper.SetDefault("SALESFORCE_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("SALESFORCE_API_VERSION", "v59.0")
	viper.SetDefault("SALESFORCE_TIMEOUT", "60s")

	viper.SetDefault("QUICKBOOKS_URL", "https://quickbooks.api.intuit.com")
	viper.SetDefault("QUICKBOOKS_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("QUICKBOOKS_REALM_ID", "")
	viper.SetDefault("QUICKBOOKS_TIMEOUT", "60s")
	viper.SetDefault("QUICKBOOKS_ENABLED", false)

	// Defaults para sincronização com o Salesforce
	viper.SetDefault("SALESFORCE_SYNC_CRON", "59 * * * *") // Toda hora aos 59 minutos
	viper.SetDefault("SALESFORCE_SYNC_ENABLED", false)

	// Defaults para snapshot de fim de dia
	viper.SetDefault("EOD_SNAPSHOT_CRON", "59 23 * * *") // Todos os dias às 23h59
	viper.SetDefault("EOD_SNAPSHOT_ENABLED", false)

	viper.SetDefault("REFERENCE_TIMEZONE", "America/New_York")
	viper.SetDefault("BOOKINGS_CUTOFF_DATE", "")

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

	if _, err := time.LoadLocation(config.App.ReferenceTimezone); err != nil {
		return nil, fmt.Errorf("fuso de referência inválido %q: %w", config.App.ReferenceTimezone, err)
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ReferenceLocation devolve o fuso de referência já validado pelo NewConfig
func (c *Config) ReferenceLocation() *time.Location {
	loc, err := time.LoadLocation(c.App.ReferenceTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
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
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
