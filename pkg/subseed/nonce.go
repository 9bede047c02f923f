package subseed

import (
	"fmt"

	"go.uber.org/zap"

	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/logger"
	"wallet-seed/pkg/monitor"
	"wallet-seed/pkg/seed"
)

// MaxNonce 是每个序号允许尝试的最大 nonce。
const MaxNonce = 1000

// Found 是 nonce 搜索的结果。
type Found struct {
	Data  []byte
	ID    seed.ID
	Nonce int
}

// SearchNonce 从 start 开始递增 nonce，返回第一个 Seed ID 未被 taken 占用的派生结果。
// 超过 MaxNonce 返回 ErrKeyDerivationExhausted，调用方不得提交任何部分结果。
func SearchNonce(kind string, start int, derive func(nonce int) []byte, taken func(seed.ID) bool) (Found, error) {
	for nonce := start; nonce <= MaxNonce; nonce++ {
		data := derive(nonce)
		id := seed.ID(crypto_util.ChecksumID(data))
		if !taken(id) {
			return Found{Data: data, ID: id, Nonce: nonce}, nil
		}
		monitor.Derivation.Collision(kind)
		logger.Debug("seed ID collision, incrementing nonce",
			zap.String("kind", kind),
			zap.String("sid", string(id)),
			zap.Int("nonce", nonce+1))
	}
	return Found{}, fmt.Errorf("%s: %w", kind, errno.ErrKeyDerivationExhausted)
}
