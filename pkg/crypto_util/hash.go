package crypto_util

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/sha3"
)

// CalculateSHA256 计算输入的 SHA256 哈希值。
func CalculateSHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// CalculateKeccak256 计算输入的 Keccak256 哈希值。
// 这是以太坊和门罗币使用的哈希算法。
func CalculateKeccak256(data []byte) string {
	return hex.EncodeToString(Keccak256(data))
}

// Keccak256 返回原始 Keccak256 摘要 (非 NIST SHA3)。
func Keccak256(data []byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(data)
	return hash.Sum(nil)
}

// Hash256 双重 SHA256。
func Hash256(data []byte) []byte {
	return chainhash.DoubleHashB(data)
}

// Hash160 RIPEMD160(SHA256(data))。
func Hash160(data []byte) []byte {
	return btcutil.Hash160(data)
}

// SHA512 单轮 SHA512。
func SHA512(data []byte) []byte {
	hash := sha512.Sum512(data)
	return hash[:]
}

// ChecksumID 返回 8 位大写十六进制校验码，即 Seed ID 的算法。
func ChecksumID(data []byte) string {
	return strings.ToUpper(hex.EncodeToString(Hash256(data)[:4]))
}

// ChecksumN 返回 n 位 (4 的倍数) 大写十六进制校验码，sep 为 true 时每 4 位以空格分隔。
func ChecksumN(data []byte, n int, sep bool) (string, error) {
	if n%4 != 0 || n < 4 || n > 64 {
		return "", fmt.Errorf("checksum length %d: must be a multiple of 4 in range 4-64", n)
	}
	s := strings.ToUpper(hex.EncodeToString(Hash256(data)))[:n]
	if !sep {
		return s, nil
	}
	groups := make([]string, 0, n/4)
	for i := 0; i < n; i += 4 {
		groups = append(groups, s[i:i+4])
	}
	return strings.Join(groups, " "), nil
}

// SHA256Compress 对单个 64 字节块执行 SHA256 压缩函数，不做填充。
// Zcash 的 PRF 依赖未填充的压缩输出。
func SHA256Compress(block []byte) ([32]byte, error) {
	var out [32]byte
	if len(block) != sha256.BlockSize {
		return out, fmt.Errorf("compress: block must be %d bytes, got %d", sha256.BlockSize, len(block))
	}
	h := sha256.New()
	h.Write(block)
	state, err := h.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		return out, fmt.Errorf("compress: %w", err)
	}
	// 状态布局: 4 字节 magic，随后是 8 个大端 uint32 链接值
	copy(out[:], state[4:36])
	return out, nil
}
