package keygen

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/protocol"
)

// libsecp256k1Gen 通过 go-ethereum 的 cgo 绑定调用 libsecp256k1
type libsecp256k1Gen struct{}

func newLibsecp256k1() KeyGenerator { return libsecp256k1Gen{} }

func (libsecp256k1Gen) Name() string { return "libsecp256k1" }

func (libsecp256k1Gen) GenData(priv []byte, compressed bool) (PublicData, error) {
	if err := checkPrivKey(priv); err != nil {
		return PublicData{}, err
	}
	key, err := ethcrypto.ToECDSA(priv)
	if err != nil {
		return PublicData{}, fmt.Errorf("libsecp256k1: %v: %w", err, errno.ErrInvalidKey)
	}
	var pub []byte
	if compressed {
		pub = ethcrypto.CompressPubkey(&key.PublicKey)
	} else {
		pub = ethcrypto.FromECDSAPub(&key.PublicKey)
	}
	return PublicData{Pubkey: pub, Kind: protocol.PubKeyStd, Compressed: compressed}, nil
}

func probeLibsecp256k1() error {
	if !libsecp256k1Linked {
		return fmt.Errorf("libsecp256k1 not linked (built without cgo)")
	}
	data, err := newLibsecp256k1().GenData(probeKey, true)
	if err != nil {
		return err
	}
	if len(data.Pubkey) != 33 {
		return fmt.Errorf("libsecp256k1: unexpected pubkey length %d", len(data.Pubkey))
	}
	return nil
}

// btcecGen 是纯 Go 实现
type btcecGen struct{}

func newBtcec() KeyGenerator { return btcecGen{} }

func (btcecGen) Name() string { return "btcec" }

func (btcecGen) GenData(priv []byte, compressed bool) (PublicData, error) {
	if err := checkPrivKey(priv); err != nil {
		return PublicData{}, err
	}
	sk, pk := btcec.PrivKeyFromBytes(priv)
	if sk.Key.IsZero() {
		return PublicData{}, fmt.Errorf("btcec: zero private key: %w", errno.ErrInvalidKey)
	}
	var pub []byte
	if compressed {
		pub = pk.SerializeCompressed()
	} else {
		pub = pk.SerializeUncompressed()
	}
	return PublicData{Pubkey: pub, Kind: protocol.PubKeyStd, Compressed: compressed}, nil
}
