package derive

import (
	"strings"

	"wallet-seed/pkg/address"
	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/protocol"
)

// ScrambleKey 返回该币种与地址类型的打乱密钥；BTC 币族主网 legacy 地址不打乱，此时 ok 为 false。
func ScrambleKey(p *protocol.Params, at address.AddrType) (key string, ok bool) {
	btcFork := p.BaseCoin == "BTC"
	if btcFork && at.Code == "L" && !p.Testnet() {
		return "", false
	}
	switch {
	case p.BaseCoin == "ETH":
		key = strings.ToLower(p.Coin)
	case btcFork:
		key = at.Name
	default:
		key = strings.ToLower(p.Coin) + ":" + at.Name
	}
	if p.Testnet() {
		key += ":" + p.Network
	}
	return key, true
}

// ScrambleSeed 按 ScrambleKey 打乱种子数据，作为哈希链的初始状态
func ScrambleSeed(seedBytes []byte, p *protocol.Params, at address.AddrType) []byte {
	key, ok := ScrambleKey(p, at)
	if !ok {
		out := make([]byte, len(seedBytes))
		copy(out, seedBytes)
		return out
	}
	return crypto_util.Scramble(seedBytes, []byte(key))
}
