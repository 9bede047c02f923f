package keygen

import (
	"fmt"

	"golang.org/x/crypto/curve25519"

	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/protocol"
)

// zhash256 是 Zcash 的 PRF: 对 (0xc0|sk) ‖ t ‖ 0… 做一次不带填充的 SHA256 压缩
func zhash256(sk []byte, t byte) ([]byte, error) {
	block := make([]byte, 64)
	copy(block, sk)
	block[0] |= 0xc0
	block[32] = t
	out, err := crypto_util.SHA256Compress(block)
	if err != nil {
		return nil, err
	}
	return out[:], nil
}

// x25519Gen 生成 Zcash z 地址的公钥 (a_pk ‖ pk_enc) 与 view key
type x25519Gen struct{}

func newX25519() KeyGenerator { return x25519Gen{} }

func (x25519Gen) Name() string { return "x25519" }

func (x25519Gen) GenData(priv []byte, compressed bool) (PublicData, error) {
	if err := checkPrivKey(priv); err != nil {
		return PublicData{}, err
	}
	apk, err := zhash256(priv, 0)
	if err != nil {
		return PublicData{}, err
	}
	skenc, err := zhash256(priv, 1)
	if err != nil {
		return PublicData{}, err
	}
	// X25519 内部会对标量做 clamp
	pkenc, err := curve25519.X25519(skenc, curve25519.Basepoint)
	if err != nil {
		return PublicData{}, fmt.Errorf("x25519: %v: %w", err, errno.ErrInvalidKey)
	}

	vk := make([]byte, 0, 64)
	vk = append(vk, apk...)
	vk = append(vk, skenc...)
	vk[32] &= 0xf8
	vk[63] &= 0x7f
	vk[63] |= 0x40

	return PublicData{
		Pubkey:     append(apk, pkenc...),
		ViewKey:    vk,
		Kind:       protocol.PubKeyZcashZ,
		Compressed: compressed,
	}, nil
}
