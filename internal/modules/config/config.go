package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/hbk671104/options-calculator/internal/models"
)

const (
	configFilePathENV = "CONFIG_FILE"

	defaultKeyword = "opcal"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string
		ChatID int64
	}
	DB string

	Broker struct {
		TokenURL string
		APIBase  string
		ClientID string
	}

	Report struct {
		// Time — локальное время запуска дневного отчёта, "HH:MM".
		Time     string
		Timezone string
		CacheDir string
	}

	Refresh struct {
		Interval time.Duration
		// Pause — пауза между аккаунтами в RefreshAll, чтобы не упереться
		// в rate limit токен-эндпоинта.
		Pause time.Duration
	}

	Tracing struct {
		Host string
		Port int
	}

	AccountsFile string
	Accounts     []models.Account
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("broker.token_url", "https://api.tdameritrade.com/v1/oauth2/token")
	v.SetDefault("broker.api_base", "https://api.tdameritrade.com/v1")
	v.SetDefault("report.time", "16:05")
	v.SetDefault("report.timezone", "America/New_York")
	v.SetDefault("report.cache_dir", "cache")
	v.SetDefault("refresh.interval", "20m")
	v.SetDefault("refresh.pause", "2s")
	v.SetDefault("accounts_file", "configs/accounts.yaml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// legacy-имена переменных
	_ = v.BindEnv("db_dsn", "DATABASE_DSN")
	_ = v.BindEnv("telegram.token", "TELEGRAM_TOKEN")
	_ = v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	configPath := filepath.Join("configs", configFileName)
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	config := &Config{}
	config.Telegram.Token = v.GetString("telegram.token")
	config.Telegram.ChatID = v.GetInt64("telegram.chat_id")
	config.DB = v.GetString("db_dsn")
	config.Broker.TokenURL = v.GetString("broker.token_url")
	config.Broker.APIBase = v.GetString("broker.api_base")
	config.Broker.ClientID = v.GetString("broker.client_id")
	config.Report.Time = v.GetString("report.time")
	config.Report.Timezone = v.GetString("report.timezone")
	config.Report.CacheDir = v.GetString("report.cache_dir")
	config.Refresh.Interval = v.GetDuration("refresh.interval")
	config.Refresh.Pause = v.GetDuration("refresh.pause")
	config.Tracing.Host = v.GetString("tracing.host")
	config.Tracing.Port = v.GetInt("tracing.port")
	config.AccountsFile = v.GetString("accounts_file")

	accounts, err := LoadAccounts(config.AccountsFile)
	if err != nil {
		return nil, err
	}
	config.Accounts = accounts

	return config, nil
}

// LoadAccounts читает список аккаунтов из yaml. Если файла нет — собираем
// аккаунты из пар ACCOUNT_ID_n / REFRESH_TOKEN_n (контракт прежнего деплоя).
func LoadAccounts(path string) ([]models.Account, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return accountsFromEnv(), nil
		}
		return nil, fmt.Errorf("open accounts file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var doc struct {
		Accounts []models.Account `yaml:"accounts"`
	}
	if err := yaml.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode accounts file: %w", err)
	}
	for i := range doc.Accounts {
		if doc.Accounts[i].Keyword == "" {
			doc.Accounts[i].Keyword = defaultKeyword
		}
	}
	return doc.Accounts, nil
}

func accountsFromEnv() []models.Account {
	var accounts []models.Account
	for i := 1; ; i++ {
		id := os.Getenv(fmt.Sprintf("ACCOUNT_ID_%d", i))
		token := os.Getenv(fmt.Sprintf("REFRESH_TOKEN_%d", i))
		if id == "" || token == "" {
			break
		}
		keyword := os.Getenv(fmt.Sprintf("ACCOUNT_KEYWORD_%d", i))
		if keyword == "" {
			keyword = defaultKeyword
		}
		accounts = append(accounts, models.Account{
			ID:           id,
			RefreshToken: token,
			Keyword:      keyword,
		})
	}
	return accounts
}
