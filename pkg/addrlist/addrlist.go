package addrlist

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"wallet-seed/pkg/address"
	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/derive"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/keygen"
	"wallet-seed/pkg/logger"
	"wallet-seed/pkg/monitor"
	"wallet-seed/pkg/protocol"
	"wallet-seed/pkg/seed"
)

// Entry 是地址列表中的一行。WIF、ViewKey、WalletPasswd 仅在 Options.Keys 为 true 时填充。
type Entry struct {
	Idx          int
	Addr         string
	WIF          string
	ViewKey      string
	WalletPasswd string
}

type Options struct {
	// Keys 为 true 时同时输出私钥及地址类型的额外字段
	Keys bool
	// Backend 是从 1 开始的密钥生成后端序号，0 表示自动选择
	Backend int
	// Catalog 为 nil 时使用默认后端目录
	Catalog *keygen.BackendCatalog
}

// List 是由单个种子生成的地址列表
type List struct {
	SeedID  seed.ID
	Params  *protocol.Params
	Type    address.AddrType
	Entries []Entry
	keys    bool
}

// Generate 对 idxs 中的每个序号派生私钥并生成地址:
// 打乱种子 → 哈希链 → 私钥预处理 → 公钥 → 地址。
func Generate(ctx context.Context, s *seed.Seed, p *protocol.Params, at address.AddrType, idxs derive.IdxList, opts Options) (*List, error) {
	defer monitor.Derivation.Observe("addrgen", time.Now())

	if len(idxs) == 0 {
		return nil, fmt.Errorf("empty address index list: %w", errno.ErrInvalidIndex)
	}
	if !p.SupportsType(at.Code) {
		return nil, fmt.Errorf("%s not supported by %s: %w", at.Name, p, errno.ErrInvalidAddressType)
	}
	ag, err := address.NewGenerator(p, at)
	if err != nil {
		return nil, err
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = keygen.NewBackendCatalog(keygen.CatalogOptions{})
	}
	kg, err := catalog.KeyGenerator(at.PubKeyKind, opts.Backend)
	if err != nil {
		return nil, err
	}

	scrambled := derive.ScrambleSeed(s.Data(), p, at)
	key, _ := derive.ScrambleKey(p, at)
	logger.Debug("seed scrambled",
		zap.String("seed_id", s.ID().String()),
		zap.String("scramble_key", key),
		zap.String("seed", hex.EncodeToString(scrambled[:8])))

	l := &List{SeedID: s.ID(), Params: p, Type: at, keys: opts.Keys}
	logger.Debug("generating addresses", zap.String("id", l.IDString(idxs)), zap.String("backend", kg.Name()))

	kd := derive.NewKeyDeriver(scrambled, idxs)
	for {
		pk, ok := kd.Next()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := l.entry(pk, kg, ag)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", pk.Idx, err)
		}
		l.Entries = append(l.Entries, e)
		monitor.Derivation.KeyGenerated(p.Coin, at.Name)
		logger.Debug("address generated", zap.Int("idx", pk.Idx), zap.Int("pos", pk.Pos), zap.Int("total", len(idxs)))
	}
	return l, nil
}

func (l *List) entry(pk derive.PrivKeyBytes, kg keygen.KeyGenerator, ag *address.Generator) (Entry, error) {
	sec, err := l.Params.PreprocessKey(pk.Data[:], l.Type.PubKeyKind)
	if err != nil {
		return Entry{}, err
	}
	data, err := kg.GenData(sec, l.Type.Compressed)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{Idx: pk.Idx}
	if e.Addr, err = ag.ToAddr(data); err != nil {
		return Entry{}, err
	}
	if !l.keys {
		return e, nil
	}
	if e.WIF, err = l.Params.EncodeWIF(sec, l.Type.PubKeyKind, l.Type.Compressed); err != nil {
		return Entry{}, err
	}
	if l.Type.HasExtra(address.ExtraViewKey) {
		if e.ViewKey, err = ag.ToViewKey(data); err != nil {
			return Entry{}, err
		}
	}
	if l.Type.HasExtra(address.ExtraWalletPasswd) {
		e.WalletPasswd = WalletPasswd(sec)
	}
	return e, nil
}

// WalletPasswd 由私钥派生钱包文件密码: hex(Hash256(secret)[:16])
func WalletPasswd(secret []byte) string {
	return hex.EncodeToString(crypto_util.Hash256(secret)[:16])
}

func (l *List) Idxs() derive.IdxList {
	idxs := make(derive.IdxList, len(l.Entries))
	for i, e := range l.Entries {
		idxs[i] = e.Idx
	}
	return idxs
}

// IDString 形如 "SID[-COIN][-TYPE][idxs]"；BTC 与 L、E 类型省略
func (l *List) IDString(idxs derive.IdxList) string {
	var sb strings.Builder
	sb.WriteString(l.SeedID.String())
	coin := l.Params.Coin
	if coin == "BCH" {
		coin = "BTC"
	}
	if coin != "BTC" {
		sb.WriteString("-" + coin)
	}
	if l.Type.Code != "L" && l.Type.Code != "E" {
		sb.WriteString("-" + l.Type.Code)
	}
	sb.WriteString("[" + idxs.IDString() + "]")
	return sb.String()
}

// Checksum 是列表内容的 16 位校验码，分 4 组
func (l *List) Checksum() (string, error) {
	lines := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		fields := []string{strconv.Itoa(e.Idx), e.Addr}
		if l.keys {
			fields = append(fields, e.WIF)
		}
		for _, attr := range l.Type.Extra {
			var v string
			switch attr {
			case address.ExtraViewKey:
				v = e.ViewKey
			case address.ExtraWalletPasswd:
				v = e.WalletPasswd
			}
			if v != "" {
				fields = append(fields, v)
			}
		}
		lines[i] = strings.Join(fields, " ")
	}
	return crypto_util.ChecksumN([]byte(strings.Join(lines, " ")), 16, true)
}
