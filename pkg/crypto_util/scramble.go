package crypto_util

import (
	"crypto/hmac"
	"crypto/sha256"
)

// HashRounds 是 Scramble 中 HMAC 之后追加的 SHA256 轮数。
const HashRounds = 10

// Scramble 以 key 对种子做单向变换: HMAC-SHA256(seed, key) 之后再做 HashRounds 轮 SHA256。
// 输出固定 32 字节，调用方按需要截断。
func Scramble(seed, key []byte) []byte {
	mac := hmac.New(sha256.New, seed)
	mac.Write(key)
	return sha256Rounds(mac.Sum(nil), HashRounds)
}

func sha256Rounds(s []byte, n int) []byte {
	for i := 0; i < n; i++ {
		sum := sha256.Sum256(s)
		s = sum[:]
	}
	return s
}
