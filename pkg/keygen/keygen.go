package keygen

import (
	"bytes"
	"fmt"

	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/protocol"
)

// PublicData 是由私钥生成的公开数据
type PublicData struct {
	Pubkey     []byte
	ViewKey    []byte // 仅 monero 与 zcash_z 有值
	Kind       protocol.PubKeyKind
	Compressed bool
}

// KeyGenerator 由私钥计算公钥 (以及 view key)
type KeyGenerator interface {
	Name() string
	GenData(priv []byte, compressed bool) (PublicData, error)
}

// probeKey 用于检测后端是否可用
var probeKey = bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 8)

func checkPrivKey(priv []byte) error {
	if len(priv) != protocol.PrivKeyLen {
		return fmt.Errorf("%d bytes: incorrect private key length: %w", len(priv), errno.ErrInvalidKey)
	}
	return nil
}
