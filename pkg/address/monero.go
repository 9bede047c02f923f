package address

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"

	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/errno"
)

const moneroBlockLen = 8

// 按输入块字节数索引的编码长度
var moneroEncodedBlockSizes = [moneroBlockLen + 1]int{0, 2, 3, 5, 6, 7, 9, 10, 11}

func moneroAddress(ver byte, pubkey []byte) (string, error) {
	if len(pubkey) != 64 {
		return "", fmt.Errorf("%d bytes: incorrect monero pubkey length: %w", len(pubkey), errno.ErrPublicKeyMismatch)
	}
	data := append([]byte{ver}, pubkey...)
	data = append(data, crypto_util.Keccak256(data)[:4]...)
	return MoneroB58Encode(data), nil
}

// MoneroB58Encode 按 8 字节分块编码，每块左侧以 '1' 补齐到固定长度
func MoneroB58Encode(data []byte) string {
	var sb strings.Builder
	for len(data) > 0 {
		n := min(len(data), moneroBlockLen)
		sb.WriteString(moneroEncodeBlock(data[:n]))
		data = data[n:]
	}
	return sb.String()
}

func moneroEncodeBlock(block []byte) string {
	size := moneroEncodedBlockSizes[len(block)]
	digits := base58.Encode(bytes.TrimLeft(block, "\x00"))
	return strings.Repeat("1", size-len(digits)) + digits
}
