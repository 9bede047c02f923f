package keygen

import (
	"fmt"
	"slices"

	"filippo.io/edwards25519"
	"github.com/decred/dcrd/dcrec/edwards/v2"

	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/protocol"
)

// moneroViewKey 由花费私钥派生查看私钥: reduce(Keccak256(spend))
func moneroViewKey(spend []byte) ([]byte, error) {
	return protocol.ReduceMonero(crypto_util.Keccak256(spend))
}

// edwards25519Gen 常数时间实现
type edwards25519Gen struct{}

func newEdwards25519() KeyGenerator { return edwards25519Gen{} }

func (edwards25519Gen) Name() string { return "edwards25519" }

func (edwards25519Gen) GenData(priv []byte, compressed bool) (PublicData, error) {
	if err := checkPrivKey(priv); err != nil {
		return PublicData{}, err
	}
	view, err := moneroViewKey(priv)
	if err != nil {
		return PublicData{}, err
	}
	spendPub, err := ed25519BaseMult(priv)
	if err != nil {
		return PublicData{}, err
	}
	viewPub, err := ed25519BaseMult(view)
	if err != nil {
		return PublicData{}, err
	}
	return PublicData{
		Pubkey:     append(spendPub, viewPub...),
		ViewKey:    view,
		Kind:       protocol.PubKeyMonero,
		Compressed: compressed,
	}, nil
}

func ed25519BaseMult(k []byte) ([]byte, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(k)
	if err != nil {
		return nil, fmt.Errorf("edwards25519: %v: %w", err, errno.ErrInvalidKey)
	}
	return edwards25519.NewIdentityPoint().ScalarBaseMult(s).Bytes(), nil
}

// dcrdEdwardsGen 基于 big.Int，非常数时间
type dcrdEdwardsGen struct {
	curve *edwards.TwistedEdwardsCurve
}

func newDcrdEdwards() KeyGenerator { return dcrdEdwardsGen{curve: edwards.Edwards()} }

func (dcrdEdwardsGen) Name() string { return "dcrd-edwards" }

func (g dcrdEdwardsGen) GenData(priv []byte, compressed bool) (PublicData, error) {
	if err := checkPrivKey(priv); err != nil {
		return PublicData{}, err
	}
	view, err := moneroViewKey(priv)
	if err != nil {
		return PublicData{}, err
	}
	return PublicData{
		Pubkey:     append(g.baseMult(priv), g.baseMult(view)...),
		ViewKey:    view,
		Kind:       protocol.PubKeyMonero,
		Compressed: compressed,
	}, nil
}

// baseMult 接收小端标量；dcrd 的 ScalarBaseMult 需要大端
func (g dcrdEdwardsGen) baseMult(k []byte) []byte {
	be := slices.Clone(k)
	slices.Reverse(be)
	x, y := g.curve.ScalarBaseMult(be)
	pub := edwards.PublicKey{Curve: g.curve, X: x, Y: y}
	return pub.Serialize()
}
