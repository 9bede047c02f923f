package seed

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"wallet-seed/pkg/bip39"
	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/safe_random"
)

// 支持的种子位长
var SupportedBitLens = []int{128, 192, 256}

// DefaultBitLen 是新种子的默认位长
const DefaultBitLen = 256

// ID 是种子的 8 位大写十六进制标识 (Seed ID)。
type ID string

// ParseID 校验并规范化 Seed ID 字符串，允许小写输入。
func ParseID(s string) (ID, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	if len(up) != 8 {
		return "", fmt.Errorf("%q: %w", s, errno.ErrInvalidSeedID)
	}
	if _, err := hex.DecodeString(up); err != nil {
		return "", fmt.Errorf("%q: %w", s, errno.ErrInvalidSeedID)
	}
	return ID(up), nil
}

func (id ID) String() string { return string(id) }

// Seed 是不可变的种子数据，ID 始终由数据计算得到。
type Seed struct {
	data []byte
	id   ID
}

// FromBytes 复制 b 构造种子，长度必须为 16、24 或 32 字节。
func FromBytes(b []byte) (*Seed, error) {
	if !validByteLen(len(b)) {
		return nil, fmt.Errorf("%d bytes: %w", len(b), errno.ErrInvalidSeedLength)
	}
	data := bytes.Clone(b)
	return &Seed{data: data, id: ID(crypto_util.ChecksumID(data))}, nil
}

// FromHex 从十六进制字符串构造种子。
func FromHex(s string) (*Seed, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("seed hex: %w", err)
	}
	return FromBytes(b)
}

// FromMnemonic 从 BIP-39 助记词 (12/18/24 词) 还原种子。
func FromMnemonic(words string) (*Seed, error) {
	entropy, err := bip39.NewMnemonicService().MnemonicToEntropy(words)
	if err != nil {
		return nil, err
	}
	return FromBytes(entropy)
}

// New 使用系统随机源生成指定位长的新种子。
func New(bitLen int) (*Seed, error) {
	if !validByteLen(bitLen/8) || bitLen%8 != 0 {
		return nil, fmt.Errorf("%d bits: %w", bitLen, errno.ErrInvalidSeedLength)
	}
	b, err := safe_random.GenerateSeedBytes(bitLen / 8)
	if err != nil {
		return nil, err
	}
	return FromBytes(b)
}

// Data 返回种子数据的副本。
func (s *Seed) Data() []byte { return bytes.Clone(s.data) }

func (s *Seed) ID() ID { return s.id }

func (s *Seed) ByteLen() int { return len(s.data) }

func (s *Seed) BitLen() int { return len(s.data) * 8 }

func (s *Seed) Hex() string { return hex.EncodeToString(s.data) }

// Mnemonic 返回种子数据的 BIP-39 助记词编码。
func (s *Seed) Mnemonic() (string, error) {
	return bip39.NewMnemonicService().EntropyToMnemonic(s.data)
}

// Equal 比较两个种子的数据。
func (s *Seed) Equal(o *Seed) bool {
	return o != nil && bytes.Equal(s.data, o.data)
}

func (s *Seed) String() string {
	return fmt.Sprintf("%s (%d bits)", s.id, s.BitLen())
}

func validByteLen(n int) bool {
	for _, bits := range SupportedBitLens {
		if n == bits/8 {
			return true
		}
	}
	return false
}
