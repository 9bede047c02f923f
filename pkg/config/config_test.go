package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) Config {
	t.Helper()
	viper.Reset()
	setDefaults()
	var c Config
	require.NoError(t, viper.Unmarshal(&c))
	return c
}

func TestDefaultsAreValid(t *testing.T) {
	c := defaultConfig(t)
	require.NoError(t, Validate(&c))
	assert.Equal(t, "btc", c.Coin.Symbol)
	assert.Equal(t, "mainnet", c.Coin.Network)
	assert.Equal(t, 100, c.Seed.SubseedListLen)
	assert.Equal(t, 0, c.Keygen.Backend)
}

func TestValidateNormalizesCase(t *testing.T) {
	c := defaultConfig(t)
	c.Coin.Symbol = "XMR"
	c.Coin.Network = "TestNet"
	require.NoError(t, Validate(&c))
	assert.Equal(t, "xmr", c.Coin.Symbol)
	assert.Equal(t, "testnet", c.Coin.Network)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"coin", func(c *Config) { c.Coin.Symbol = "doge" }, "Config.Coin.Symbol"},
		{"network", func(c *Config) { c.Coin.Network = "signet" }, "Config.Coin.Network"},
		{"backend", func(c *Config) { c.Keygen.Backend = 3 }, "Config.Keygen.Backend"},
		{"list len", func(c *Config) { c.Seed.SubseedListLen = 0 }, "Config.Seed.SubseedListLen"},
		{"env", func(c *Config) { c.App.Env = "staging" }, "Config.App.Env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaultConfig(t)
			tt.mutate(&c)
			err := Validate(&c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SEED_COIN_SYMBOL", "ltc")
	viper.Reset()
	viper.SetEnvPrefix("seed")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults()

	var c Config
	require.NoError(t, viper.Unmarshal(&c))
	assert.Equal(t, "ltc", c.Coin.Symbol)
}
