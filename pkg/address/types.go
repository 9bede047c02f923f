package address

import (
	"fmt"
	"strings"

	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/protocol"
)

// Format 是地址编码格式
type Format string

const (
	FormatNone     Format = ""
	FormatP2PKH    Format = "p2pkh"
	FormatSegwit   Format = "segwit"
	FormatBech32   Format = "bech32"
	FormatEthereum Format = "ethereum"
	FormatMonero   Format = "monero"
	FormatZcashZ   Format = "zcash_z"
)

// 地址条目附带的额外字段
const (
	ExtraViewKey      = "viewkey"
	ExtraWalletPasswd = "wallet_passwd"
)

// AddrType 描述一种地址类型，值不可变
type AddrType struct {
	Code       string
	Name       string
	PubKeyKind protocol.PubKeyKind
	Compressed bool
	Format     Format
	WIFLabel   string
	Extra      []string
	Desc       string
}

func (t AddrType) HasExtra(attr string) bool {
	for _, a := range t.Extra {
		if a == attr {
			return true
		}
	}
	return false
}

func (t AddrType) String() string { return t.Name }

var addrTypes = []AddrType{
	{Code: "L", Name: "legacy", PubKeyKind: protocol.PubKeyStd, Format: FormatP2PKH, WIFLabel: "wif",
		Desc: "Legacy uncompressed address"},
	{Code: "C", Name: "compressed", PubKeyKind: protocol.PubKeyStd, Compressed: true, Format: FormatP2PKH, WIFLabel: "wif",
		Desc: "Compressed P2PKH address"},
	{Code: "S", Name: "segwit", PubKeyKind: protocol.PubKeyStd, Compressed: true, Format: FormatSegwit, WIFLabel: "wif",
		Desc: "Segwit P2SH-P2WPKH address"},
	{Code: "B", Name: "bech32", PubKeyKind: protocol.PubKeyStd, Compressed: true, Format: FormatBech32, WIFLabel: "wif",
		Desc: "Native Segwit (Bech32) address"},
	{Code: "E", Name: "ethereum", PubKeyKind: protocol.PubKeyStd, Format: FormatEthereum, WIFLabel: "privkey",
		Extra: []string{ExtraWalletPasswd}, Desc: "Ethereum address"},
	{Code: "Z", Name: "zcash_z", PubKeyKind: protocol.PubKeyZcashZ, Format: FormatZcashZ, WIFLabel: "wif",
		Extra: []string{ExtraViewKey}, Desc: "Zcash z-address"},
	{Code: "M", Name: "monero", PubKeyKind: protocol.PubKeyMonero, Format: FormatMonero, WIFLabel: "spendkey",
		Extra: []string{ExtraViewKey, ExtraWalletPasswd}, Desc: "Monero address"},
	{Code: "P", Name: "password", PubKeyKind: protocol.PubKeyPassword, Format: FormatNone,
		Desc: "Password generated from seed"},
}

// Types 返回全部地址类型
func Types() []AddrType {
	out := make([]AddrType, len(addrTypes))
	copy(out, addrTypes)
	return out
}

// Lookup 按代码 (大小写不敏感) 或名称查找地址类型
func Lookup(codeOrName string) (AddrType, error) {
	for _, t := range addrTypes {
		if strings.EqualFold(t.Code, codeOrName) || t.Name == strings.ToLower(codeOrName) {
			return t, nil
		}
	}
	return AddrType{}, fmt.Errorf("%q: %w", codeOrName, errno.ErrInvalidAddressType)
}

// GetType 查找地址类型并确认币种支持它。空字符串表示币种的默认类型。
func GetType(p *protocol.Params, codeOrName string) (AddrType, error) {
	if codeOrName == "" {
		codeOrName = p.DefaultType
	}
	t, err := Lookup(codeOrName)
	if err != nil {
		return AddrType{}, err
	}
	if !p.SupportsType(t.Code) {
		return AddrType{}, fmt.Errorf("%s not supported by %s: %w", t.Name, p, errno.ErrInvalidAddressType)
	}
	return t, nil
}
