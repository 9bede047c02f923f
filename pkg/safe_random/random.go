package safe_random

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// Reader 是全局共享的加密安全随机数源，默认为 crypto/rand.Reader。
// 测试中可以替换为确定性的 Reader。
var Reader io.Reader = rand.Reader

// rawEntropyLen 是生成新种子时读取的原始熵字节数，经 SHA256 压缩后截断。
const rawEntropyLen = 1033

// GenerateRandomBytes 生成指定长度的安全随机字节切片。
// 如果系统的安全随机数生成器失败，将返回错误。
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	// 只有读满 len(b) 个字节，err 才为 nil
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, fmt.Errorf("生成随机字节失败: %w", err)
	}
	return b, nil
}

// GenerateSeedBytes 生成 byteLen (不超过 32) 字节的种子数据。
// 原始熵先经 SHA256 汇聚，再截断到所需长度。
func GenerateSeedBytes(byteLen int) ([]byte, error) {
	if byteLen <= 0 || byteLen > sha256.Size {
		return nil, fmt.Errorf("种子长度 %d 超出范围 (1-%d)", byteLen, sha256.Size)
	}
	raw, err := GenerateRandomBytes(rawEntropyLen)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(raw)
	return sum[:byteLen], nil
}
