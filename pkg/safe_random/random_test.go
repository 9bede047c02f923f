package safe_random

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

func TestGenerateRandomBytes(t *testing.T) {
	n := 32
	b, err := GenerateRandomBytes(n)
	if err != nil {
		t.Fatalf("GenerateRandomBytes 失败: %v", err)
	}
	if len(b) != n {
		t.Errorf("GenerateRandomBytes 返回了 %d 字节, 期望 %d", len(b), n)
	}

	// 简单的随机性检查（极不可能全为零）
	if bytes.Equal(b, make([]byte, n)) {
		t.Error("GenerateRandomBytes 返回了全零数据，可能未正确生成随机数")
	}
}

func TestGenerateSeedBytes(t *testing.T) {
	saved := Reader
	defer func() { Reader = saved }()

	Reader = bytes.NewReader(bytes.Repeat([]byte{0x5a}, rawEntropyLen))
	b, err := GenerateSeedBytes(16)
	if err != nil {
		t.Fatalf("GenerateSeedBytes 失败: %v", err)
	}
	want := sha256.Sum256(bytes.Repeat([]byte{0x5a}, rawEntropyLen))
	if !bytes.Equal(b, want[:16]) {
		t.Errorf("GenerateSeedBytes = %x, 期望 %x", b, want[:16])
	}
}

func TestGenerateSeedBytes_ShortRead(t *testing.T) {
	saved := Reader
	defer func() { Reader = saved }()

	Reader = bytes.NewReader(make([]byte, 10))
	if _, err := GenerateSeedBytes(32); err == nil {
		t.Error("期望因熵不足而报错，但未收到错误")
	}
}

func TestGenerateSeedBytes_BadLength(t *testing.T) {
	for _, n := range []int{0, 33} {
		if _, err := GenerateSeedBytes(n); err == nil {
			t.Errorf("长度 %d: 期望报错", n)
		}
	}
}
