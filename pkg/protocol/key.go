package protocol

import (
	"encoding/hex"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"go.uber.org/zap"

	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/logger"
)

// PrivKeyLen 是所有支持币种的私钥长度
const PrivKeyLen = 32

// PreprocessKey 将派生出的原始私钥规范化为该公钥类型的合法私钥。
//   - std: 必须满足 0 < k < n，超出时取模并告警，结果为零时报错
//   - zcash_z: 清除首字节高 4 位
//   - monero: 按小端整数对群阶 l 取模
func (p *Params) PreprocessKey(sec []byte, kind PubKeyKind) ([]byte, error) {
	return PreprocessKey(sec, kind)
}

// PreprocessKey 按公钥类型规范化私钥，与币种参数无关
func PreprocessKey(sec []byte, kind PubKeyKind) ([]byte, error) {
	if len(sec) != PrivKeyLen {
		return nil, fmt.Errorf("%d bytes: incorrect private key length: %w", len(sec), errno.ErrInvalidKey)
	}
	switch kind {
	case PubKeyStd:
		return reduceSecp256k1(sec)
	case PubKeyZcashZ:
		out := make([]byte, PrivKeyLen)
		copy(out, sec)
		out[0] &= 0x0f
		return out, nil
	case PubKeyMonero:
		return ReduceMonero(sec)
	}
	return nil, fmt.Errorf("pubkey type %q: %w", kind, errno.ErrInvalidAddressType)
}

func reduceSecp256k1(sec []byte) ([]byte, error) {
	var buf [32]byte
	copy(buf[:], sec)
	var k secp256k1.ModNScalar
	overflow := k.SetBytes(&buf)
	if k.IsZero() {
		// 原值为 0 或恰好等于群阶
		return nil, fmt.Errorf("private key is zero modulo the secp256k1 group order: %w", errno.ErrInvalidKey)
	}
	if overflow != 0 {
		// 只记录指纹，不输出私钥本身
		logger.Warn("private key is greater than secp256k1 group order, reducing",
			zap.String("key_fingerprint", crypto_util.ChecksumID(sec)))
	}
	out := k.Bytes()
	return out[:], nil
}

// ReduceMonero 将 32 字节小端整数对 ed25519 群阶取模 (sc_reduce32)
func ReduceMonero(sec []byte) ([]byte, error) {
	if len(sec) != PrivKeyLen {
		return nil, fmt.Errorf("%d bytes: incorrect private key length: %w", len(sec), errno.ErrInvalidKey)
	}
	wide := make([]byte, 64)
	copy(wide, sec)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide)
	if err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}
	return s.Bytes(), nil
}

// EncodeWIF 编码已预处理的私钥。ETH 与 XMR 没有 WIF，返回十六进制。
func (p *Params) EncodeWIF(priv []byte, kind PubKeyKind, compressed bool) (string, error) {
	if len(priv) != PrivKeyLen {
		return "", fmt.Errorf("%d bytes: incorrect private key length: %w", len(priv), errno.ErrInvalidKey)
	}
	if p.HasDummyWIF() {
		return hex.EncodeToString(priv), nil
	}
	ver, ok := p.WIFVer[kind]
	if !ok {
		return "", fmt.Errorf("%s: no WIF version for pubkey type %q: %w", p.Coin, kind, errno.ErrInvalidAddressType)
	}
	payload := append(append([]byte{}, ver...), priv...)
	if compressed {
		payload = append(payload, 0x01)
	}
	return B58Check(payload), nil
}

// B58Check 对 payload 追加 4 字节双 SHA256 校验和后做 base58 编码，支持多字节版本号。
func B58Check(payload []byte) string {
	sum := crypto_util.Hash256(payload)
	buf := make([]byte, 0, len(payload)+4)
	buf = append(buf, payload...)
	buf = append(buf, sum[:4]...)
	return base58.Encode(buf)
}
