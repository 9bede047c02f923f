package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Coin   CoinConfig   `mapstructure:"coin"`
	Keygen KeygenConfig `mapstructure:"keygen"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

type AppConfig struct {
	Env   string `mapstructure:"env" validate:"oneof=development production test"`
	Debug bool   `mapstructure:"debug"`
}

type CoinConfig struct {
	Symbol  string `mapstructure:"symbol" validate:"oneof=btc ltc bch eth etc zec xmr"`
	Network string `mapstructure:"network" validate:"oneof=mainnet testnet regtest"`
	Type    string `mapstructure:"type"` // 地址类型代码或名称，空值使用币种默认值
}

type KeygenConfig struct {
	Backend     int  `mapstructure:"backend" validate:"min=0,max=2"` // 1 起始的后端序号，0 表示自动选择
	AllowUnsafe bool `mapstructure:"allow_unsafe"`                   // 允许非常量时间的后端 (仅测试环境)
}

type SeedConfig struct {
	SubseedListLen int  `mapstructure:"subseed_list_len" validate:"min=1,max=1000000"` // 按 Seed ID 查找子种子时的默认搜索上限
	DebugSubseed   bool `mapstructure:"debug_subseed"`                                 // 打印 Seed ID 碰撞并在拆分后校验重组结果
	DebugLastShare bool `mapstructure:"debug_last_share"`                              // 最后一份额使用 3 字符前缀做碰撞检测
}

var Global Config

func Init() {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath(".")      // optionally look for config in the working directory
	viper.AddConfigPath("./config")

	// 环境变量设置，如 SEED_COIN_SYMBOL=ltc
	viper.SetEnvPrefix("seed")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 设置默认值
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
	if err := Validate(&Global); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", false)

	viper.SetDefault("coin.symbol", "btc")
	viper.SetDefault("coin.network", "mainnet")
	viper.SetDefault("coin.type", "")

	viper.SetDefault("keygen.backend", 0)
	viper.SetDefault("keygen.allow_unsafe", false)

	viper.SetDefault("seed.subseed_list_len", 100)
	viper.SetDefault("seed.debug_subseed", false)
	viper.SetDefault("seed.debug_last_share", false)
}
