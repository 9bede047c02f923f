package bip39

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicService 提供种子数据与 BIP-39 助记词之间的互转。
// 助记词直接编码种子熵，不经过 PBKDF2 扩展。
type MnemonicService struct{}

// NewMnemonicService 创建一个新的助记词服务实例
func NewMnemonicService() *MnemonicService {
	return &MnemonicService{}
}

// EntropyToMnemonic 将 16/24/32 字节种子数据编码为 12/18/24 个单词。
func (s *MnemonicService) EntropyToMnemonic(entropy []byte) (string, error) {
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("生成助记词失败: %w", err)
	}
	return mnemonic, nil
}

// MnemonicToEntropy 还原助记词对应的种子数据，校验和错误时返回错误。
func (s *MnemonicService) MnemonicToEntropy(mnemonic string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(normalize(mnemonic))
	if err != nil {
		return nil, fmt.Errorf("解析助记词失败: %w", err)
	}
	return entropy, nil
}

// ValidateMnemonic 验证助记词是否有效。
func (s *MnemonicService) ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalize(mnemonic))
}

func normalize(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}
