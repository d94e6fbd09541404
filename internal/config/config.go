package config

import (
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Inventory struct {
		// Порог низкого остатка, включительно.
		LowStockThreshold float64 `mapstructure:"low_stock_threshold"`
	} `mapstructure:"inventory"`

	Catalog struct {
		// Путь до glass_database.json для команды импорта.
		Path string
	} `mapstructure:"catalog"`
}

func Load(path string) (Config, error) {
	// .env рядом с бинарём, если есть — токены удобнее держать там
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("inventory.low_stock_threshold", 5.0)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
