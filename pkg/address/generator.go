package address

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"

	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/keygen"
	"wallet-seed/pkg/protocol"
)

// Generator 按地址类型的 Format 把公钥数据编码为地址
type Generator struct {
	params *protocol.Params
	typ    AddrType
}

// NewGenerator 只接受能生成地址的类型 (password 类型除外)
func NewGenerator(p *protocol.Params, t AddrType) (*Generator, error) {
	switch t.Format {
	case FormatP2PKH, FormatSegwit, FormatBech32, FormatEthereum, FormatMonero, FormatZcashZ:
	default:
		return nil, fmt.Errorf("%s: no address format: %w", t.Name, errno.ErrInvalidAddressType)
	}
	if (t.Format == FormatSegwit || t.Format == FormatBech32) && p.Chain == nil {
		return nil, fmt.Errorf("%s not supported by %s: %w", t.Name, p, errno.ErrInvalidAddressType)
	}
	return &Generator{params: p, typ: t}, nil
}

func (g *Generator) Type() AddrType { return g.typ }

func (g *Generator) check(pd keygen.PublicData) error {
	if pd.Kind != g.typ.PubKeyKind {
		return fmt.Errorf("%s generator got %s public key: %w", g.typ.Name, pd.Kind, errno.ErrPublicKeyMismatch)
	}
	if pd.Kind == protocol.PubKeyStd && pd.Compressed != g.typ.Compressed {
		return fmt.Errorf("%s generator got compressed=%v public key: %w", g.typ.Name, pd.Compressed, errno.ErrPublicKeyMismatch)
	}
	return nil
}

// ToAddr 生成地址
func (g *Generator) ToAddr(pd keygen.PublicData) (string, error) {
	if err := g.check(pd); err != nil {
		return "", err
	}
	switch g.typ.Format {
	case FormatP2PKH:
		return g.p2pkh(pd.Pubkey)
	case FormatSegwit:
		script, err := g.redeemScript(pd.Pubkey)
		if err != nil {
			return "", err
		}
		addr, err := btcutil.NewAddressScriptHash(script, g.params.Chain)
		if err != nil {
			return "", err
		}
		return addr.EncodeAddress(), nil
	case FormatBech32:
		addr, err := btcutil.NewAddressWitnessPubKeyHash(crypto_util.Hash160(pd.Pubkey), g.params.Chain)
		if err != nil {
			return "", err
		}
		return addr.EncodeAddress(), nil
	case FormatEthereum:
		return ethAddress(pd.Pubkey)
	case FormatMonero:
		return moneroAddress(g.params.MoneroVer, pd.Pubkey)
	case FormatZcashZ:
		if len(pd.Pubkey) != 64 {
			return "", fmt.Errorf("%d bytes: incorrect zcash_z pubkey length: %w", len(pd.Pubkey), errno.ErrPublicKeyMismatch)
		}
		return protocol.B58Check(append(append([]byte{}, g.params.ZcashZVer...), pd.Pubkey...)), nil
	}
	return "", fmt.Errorf("%s: %w", g.typ.Name, errno.ErrInvalidAddressType)
}

// ToViewKey 返回 view key 的文本形式，只有 monero 与 zcash_z 支持
func (g *Generator) ToViewKey(pd keygen.PublicData) (string, error) {
	if err := g.check(pd); err != nil {
		return "", err
	}
	switch g.typ.Format {
	case FormatMonero:
		return hex.EncodeToString(pd.ViewKey), nil
	case FormatZcashZ:
		if len(pd.ViewKey) != 64 {
			return "", fmt.Errorf("%d bytes: incorrect zcash_z viewkey length: %w", len(pd.ViewKey), errno.ErrPublicKeyMismatch)
		}
		return protocol.B58Check(append(append([]byte{}, g.params.ViewKeyVer...), pd.ViewKey...)), nil
	}
	return "", fmt.Errorf("%s has no view key: %w", g.typ.Name, errno.ErrInvalidAddressType)
}

// ToRedeemScript 返回 0014‖hash160(pubkey)。segwit 地址中它是 P2SH 赎回脚本，bech32 中即输出脚本。
func (g *Generator) ToRedeemScript(pd keygen.PublicData) ([]byte, error) {
	if err := g.check(pd); err != nil {
		return nil, err
	}
	if g.typ.Format != FormatSegwit && g.typ.Format != FormatBech32 {
		return nil, fmt.Errorf("%s has no redeem script: %w", g.typ.Name, errno.ErrInvalidAddressType)
	}
	return g.redeemScript(pd.Pubkey)
}

func (g *Generator) redeemScript(pubkey []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(crypto_util.Hash160(pubkey)).
		Script()
}

func (g *Generator) p2pkh(pubkey []byte) (string, error) {
	pkh := crypto_util.Hash160(pubkey)
	if g.params.Chain != nil {
		addr, err := btcutil.NewAddressPubKeyHash(pkh, g.params.Chain)
		if err != nil {
			return "", err
		}
		return addr.EncodeAddress(), nil
	}
	// Zcash 使用两字节版本号
	return protocol.B58Check(append(append([]byte{}, g.params.P2PKHVer...), pkh...)), nil
}
