package address

import (
	"encoding/hex"
	"fmt"
	"strings"

	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/errno"
)

// ethAddress 将非压缩公钥 (65 bytes, 0x04...) 转换为小写、不带 0x 的以太坊地址
func ethAddress(pubKeyBytes []byte) (string, error) {
	if len(pubKeyBytes) != 65 || pubKeyBytes[0] != 0x04 {
		return "", fmt.Errorf("ethereum address needs uncompressed pubkey: %w", errno.ErrPublicKeyMismatch)
	}
	hash := crypto_util.Keccak256(pubKeyBytes[1:])
	return hex.EncodeToString(hash[12:]), nil
}

// ChecksumAddress 实现 EIP-55 混合大小写校验，输入输出均不带 0x
func ChecksumAddress(address string) string {
	address = strings.ToLower(strings.TrimPrefix(address, "0x"))
	hexHash := crypto_util.CalculateKeccak256([]byte(address))

	var sb strings.Builder
	for i := 0; i < len(address); i++ {
		char := address[i]
		// 检查 hash 的第 i 位是否 >= 8
		if hexCharToInt(hexHash[i]) >= 8 {
			sb.WriteString(strings.ToUpper(string(char)))
		} else {
			sb.WriteByte(char)
		}
	}
	return sb.String()
}

func hexCharToInt(c byte) byte {
	if c >= '0' && c <= '9' {
		return c - '0'
	}
	if c >= 'a' && c <= 'f' {
		return c - 'a' + 10
	}
	return 0
}
