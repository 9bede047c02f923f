package protocol

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"

	"wallet-seed/pkg/errno"
)

// PubKeyKind 是公钥类型，决定使用的密钥生成后端
type PubKeyKind string

const (
	PubKeyStd      PubKeyKind = "std"
	PubKeyZcashZ   PubKeyKind = "zcash_z"
	PubKeyMonero   PubKeyKind = "monero"
	PubKeyPassword PubKeyKind = "password"
)

const (
	Mainnet = "mainnet"
	Testnet = "testnet"
	Regtest = "regtest"
)

// Params 描述一个币种在某个网络上的编码参数
type Params struct {
	Coin     string // 大写币种代码，如 "LTC"
	BaseCoin string // 所属币族: BTC、ETH、ZEC、XMR
	Network  string

	P2PKHVer   []byte
	P2SHVer    []byte
	WIFVer     map[PubKeyKind][]byte
	ZcashZVer  []byte
	ViewKeyVer []byte
	MoneroVer  byte
	Bech32HRP  string

	PubKeyKinds []PubKeyKind
	AddrTypes   []string // 支持的地址类型代码
	DefaultType string

	// Chain 仅 BTC 币族 (BTC/LTC/BCH) 提供，用于 segwit/bech32 地址编码
	Chain *chaincfg.Params
}

// Testnet 非主网时为 true
func (p *Params) Testnet() bool { return p.Network != Mainnet }

// HasDummyWIF 为 true 时私钥以十六进制输出，没有真正的 WIF 编码
func (p *Params) HasDummyWIF() bool {
	return p.BaseCoin == "ETH" || p.BaseCoin == "XMR"
}

// SupportsType 判断地址类型代码是否适用于该币种
func (p *Params) SupportsType(code string) bool {
	for _, c := range p.AddrTypes {
		if c == code {
			return true
		}
	}
	return false
}

func (p *Params) SupportsPubKeyKind(kind PubKeyKind) bool {
	for _, k := range p.PubKeyKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (p *Params) String() string {
	return fmt.Sprintf("%s %s", p.Coin, p.Network)
}

var registry = map[string]map[string]*Params{}

func register(p *Params) {
	if registry[p.Coin] == nil {
		registry[p.Coin] = map[string]*Params{}
	}
	registry[p.Coin][p.Network] = p
}

// Get 返回币种 (大小写不敏感) 在指定网络上的参数
func Get(coin, network string) (*Params, error) {
	nets, ok := registry[strings.ToUpper(coin)]
	if !ok {
		return nil, fmt.Errorf("coin %q not supported: %w", coin, errno.ErrBadArgs)
	}
	if network == "" {
		network = Mainnet
	}
	p, ok := nets[strings.ToLower(network)]
	if !ok {
		return nil, fmt.Errorf("network %q not supported for %s: %w", network, strings.ToUpper(coin), errno.ErrBadArgs)
	}
	return p, nil
}

// Coins 返回支持的币种代码
func Coins() []string {
	return []string{"BTC", "LTC", "BCH", "ETH", "ETC", "ZEC", "XMR"}
}

func chainWith(base chaincfg.Params, name string, p2pkh, p2sh, wif byte, hrp string) *chaincfg.Params {
	c := base
	c.Name = name
	c.PubKeyHashAddrID = p2pkh
	c.ScriptHashAddrID = p2sh
	c.PrivateKeyID = wif
	c.Bech32HRPSegwit = hrp
	return &c
}

func init() {
	btcTypes := []string{"L", "C", "S", "B"}
	std := []PubKeyKind{PubKeyStd}

	register(&Params{Coin: "BTC", BaseCoin: "BTC", Network: Mainnet,
		P2PKHVer: []byte{0x00}, P2SHVer: []byte{0x05}, WIFVer: map[PubKeyKind][]byte{PubKeyStd: {0x80}},
		Bech32HRP: "bc", PubKeyKinds: std, AddrTypes: btcTypes, DefaultType: "L",
		Chain: &chaincfg.MainNetParams})
	register(&Params{Coin: "BTC", BaseCoin: "BTC", Network: Testnet,
		P2PKHVer: []byte{0x6f}, P2SHVer: []byte{0xc4}, WIFVer: map[PubKeyKind][]byte{PubKeyStd: {0xef}},
		Bech32HRP: "tb", PubKeyKinds: std, AddrTypes: btcTypes, DefaultType: "L",
		Chain: &chaincfg.TestNet3Params})
	register(&Params{Coin: "BTC", BaseCoin: "BTC", Network: Regtest,
		P2PKHVer: []byte{0x6f}, P2SHVer: []byte{0xc4}, WIFVer: map[PubKeyKind][]byte{PubKeyStd: {0xef}},
		Bech32HRP: "bcrt", PubKeyKinds: std, AddrTypes: btcTypes, DefaultType: "L",
		Chain: &chaincfg.RegressionNetParams})

	register(&Params{Coin: "LTC", BaseCoin: "BTC", Network: Mainnet,
		P2PKHVer: []byte{0x30}, P2SHVer: []byte{0x32}, WIFVer: map[PubKeyKind][]byte{PubKeyStd: {0xb0}},
		Bech32HRP: "ltc", PubKeyKinds: std, AddrTypes: btcTypes, DefaultType: "L",
		Chain: chainWith(chaincfg.MainNetParams, "litecoin", 0x30, 0x32, 0xb0, "ltc")})
	register(&Params{Coin: "LTC", BaseCoin: "BTC", Network: Testnet,
		P2PKHVer: []byte{0x6f}, P2SHVer: []byte{0x3a}, WIFVer: map[PubKeyKind][]byte{PubKeyStd: {0xef}},
		Bech32HRP: "tltc", PubKeyKinds: std, AddrTypes: btcTypes, DefaultType: "L",
		Chain: chainWith(chaincfg.TestNet3Params, "litecoin-testnet", 0x6f, 0x3a, 0xef, "tltc")})
	register(&Params{Coin: "LTC", BaseCoin: "BTC", Network: Regtest,
		P2PKHVer: []byte{0x6f}, P2SHVer: []byte{0x3a}, WIFVer: map[PubKeyKind][]byte{PubKeyStd: {0xef}},
		Bech32HRP: "rltc", PubKeyKinds: std, AddrTypes: btcTypes, DefaultType: "L",
		Chain: chainWith(chaincfg.RegressionNetParams, "litecoin-regtest", 0x6f, 0x3a, 0xef, "rltc")})

	// BCH 不支持 segwit，地址使用传统 base58 格式
	bchTypes := []string{"L", "C"}
	register(&Params{Coin: "BCH", BaseCoin: "BTC", Network: Mainnet,
		P2PKHVer: []byte{0x00}, P2SHVer: []byte{0x05}, WIFVer: map[PubKeyKind][]byte{PubKeyStd: {0x80}},
		PubKeyKinds: std, AddrTypes: bchTypes, DefaultType: "L", Chain: &chaincfg.MainNetParams})
	register(&Params{Coin: "BCH", BaseCoin: "BTC", Network: Testnet,
		P2PKHVer: []byte{0x6f}, P2SHVer: []byte{0xc4}, WIFVer: map[PubKeyKind][]byte{PubKeyStd: {0xef}},
		PubKeyKinds: std, AddrTypes: bchTypes, DefaultType: "L", Chain: &chaincfg.TestNet3Params})
	register(&Params{Coin: "BCH", BaseCoin: "BTC", Network: Regtest,
		P2PKHVer: []byte{0x6f}, P2SHVer: []byte{0xc4}, WIFVer: map[PubKeyKind][]byte{PubKeyStd: {0xef}},
		PubKeyKinds: std, AddrTypes: bchTypes, DefaultType: "L", Chain: &chaincfg.RegressionNetParams})

	for _, coin := range []string{"ETH", "ETC"} {
		for _, nw := range []string{Mainnet, Testnet, Regtest} {
			register(&Params{Coin: coin, BaseCoin: "ETH", Network: nw,
				PubKeyKinds: std, AddrTypes: []string{"E"}, DefaultType: "E"})
		}
	}

	zecTypes := []string{"L", "C", "Z"}
	zecKinds := []PubKeyKind{PubKeyStd, PubKeyZcashZ}
	register(&Params{Coin: "ZEC", BaseCoin: "ZEC", Network: Mainnet,
		P2PKHVer: []byte{0x1c, 0xb8}, P2SHVer: []byte{0x1c, 0xbd},
		WIFVer:    map[PubKeyKind][]byte{PubKeyStd: {0x80}, PubKeyZcashZ: {0xab, 0x36}},
		ZcashZVer: []byte{0x16, 0x9a}, ViewKeyVer: []byte{0xa8, 0xab, 0xd3},
		PubKeyKinds: zecKinds, AddrTypes: zecTypes, DefaultType: "L"})
	register(&Params{Coin: "ZEC", BaseCoin: "ZEC", Network: Testnet,
		P2PKHVer: []byte{0x1d, 0x25}, P2SHVer: []byte{0x1c, 0xba},
		WIFVer:    map[PubKeyKind][]byte{PubKeyStd: {0xef}, PubKeyZcashZ: {0xac, 0x08}},
		ZcashZVer: []byte{0x16, 0xb6}, ViewKeyVer: []byte{0xa8, 0xac, 0x0c},
		PubKeyKinds: zecKinds, AddrTypes: zecTypes, DefaultType: "L"})

	// 测试网使用 stagenet 版本号
	register(&Params{Coin: "XMR", BaseCoin: "XMR", Network: Mainnet, MoneroVer: 0x12,
		PubKeyKinds: []PubKeyKind{PubKeyMonero}, AddrTypes: []string{"M"}, DefaultType: "M"})
	register(&Params{Coin: "XMR", BaseCoin: "XMR", Network: Testnet, MoneroVer: 0x18,
		PubKeyKinds: []PubKeyKind{PubKeyMonero}, AddrTypes: []string{"M"}, DefaultType: "M"})
}
