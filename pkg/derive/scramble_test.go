package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-seed/pkg/address"
	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/protocol"
)

func TestScrambleKey(t *testing.T) {
	tests := []struct {
		coin, network, typ string
		want               string
		scrambled          bool
	}{
		{"BTC", protocol.Mainnet, "L", "", false},
		{"LTC", protocol.Mainnet, "L", "", false},
		{"BCH", protocol.Mainnet, "L", "", false},
		{"BTC", protocol.Testnet, "L", "legacy:testnet", true},
		{"BTC", protocol.Mainnet, "C", "compressed", true},
		{"BTC", protocol.Mainnet, "S", "segwit", true},
		{"LTC", protocol.Regtest, "B", "bech32:regtest", true},
		{"ETH", protocol.Mainnet, "E", "eth", true},
		{"ETC", protocol.Testnet, "E", "etc:testnet", true},
		{"ZEC", protocol.Mainnet, "Z", "zec:zcash_z", true},
		{"ZEC", protocol.Mainnet, "L", "zec:legacy", true},
		{"XMR", protocol.Mainnet, "M", "xmr:monero", true},
		{"XMR", protocol.Testnet, "M", "xmr:monero:testnet", true},
	}
	for _, tt := range tests {
		t.Run(tt.coin+"-"+tt.network+"-"+tt.typ, func(t *testing.T) {
			p, err := protocol.Get(tt.coin, tt.network)
			require.NoError(t, err)
			at, err := address.GetType(p, tt.typ)
			require.NoError(t, err)

			key, ok := ScrambleKey(p, at)
			assert.Equal(t, tt.scrambled, ok)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestScrambleSeed(t *testing.T) {
	btc, _ := protocol.Get("BTC", protocol.Mainnet)
	legacy, _ := address.Lookup("L")
	bech32, _ := address.Lookup("B")

	seedBytes := deadbeef[:16]
	assert.Equal(t, seedBytes, ScrambleSeed(seedBytes, btc, legacy))
	assert.Equal(t, crypto_util.Scramble(seedBytes, []byte("bech32")), ScrambleSeed(seedBytes, btc, bech32))
	assert.Len(t, ScrambleSeed(seedBytes, btc, bech32), 32)
}
