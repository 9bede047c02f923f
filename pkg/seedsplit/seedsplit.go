package seedsplit

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/logger"
	"wallet-seed/pkg/monitor"
	"wallet-seed/pkg/seed"
	"wallet-seed/pkg/subseed"
)

// debugSIDLen 是最后份额调试检测比较的 Seed ID 前缀长度
const debugSIDLen = 3

// Options 控制拆分行为
type Options struct {
	IDStr     string // 缺省为 "default"
	MasterIdx int    // 0 表示不使用主份额

	// DebugLastShare 使最后份额按 3 字符前缀做碰撞检测，用于测试外层重试
	DebugLastShare bool
	// Verify 在拆分完成后重组并与父种子比对
	Verify bool
}

// Share 是拆分中的一个份额
type Share struct {
	*seed.Seed
	Idx   int
	Nonce int
}

// Tag 标识一个份额的来源
type Tag struct {
	ParentID  seed.ID
	IDStr     string
	Idx       int
	Count     int
	MasterIdx int
	ID        seed.ID
}

// FnStem 返回份额文件名主干，如 "4710FBF0-default-2of3[1234ABCD]"
func (t Tag) FnStem() string {
	ms := ""
	if t.MasterIdx > 0 {
		ms = fmt.Sprintf("_with_master%d", t.MasterIdx)
	}
	return fmt.Sprintf("%s-%s-%dof%d%s[%s]", t.ParentID, t.IDStr, t.Idx, t.Count, ms, t.ID)
}

// Desc 返回份额描述
func (t Tag) Desc() string {
	ms := ""
	if t.MasterIdx > 0 {
		ms = fmt.Sprintf(", with master share #%d", t.MasterIdx)
	}
	return fmt.Sprintf("share %d of %d of %s, split id '%s'%s", t.Idx, t.Count, t.ParentID, t.IDStr, ms)
}

// List 是一次 N-of-N 异或拆分的结果。
// 所有份额 (主份额取其派生贡献) 异或后恒等于父种子。
type List struct {
	parent *seed.Seed
	count  int
	idStr  string
	master *MasterShare
	reg    *subseed.Registry
	last   *seed.Seed
}

// Split 将 parent 拆分为 count 份。
// 前 count-1 份按 nonce 搜索派生，最后一份由异或闭包计算；
// 最后一份的 Seed ID 冲突时，以下一个起始 nonce 重新生成全部份额。
func Split(parent *seed.Seed, count int, opts Options) (*List, error) {
	if count < MinShareCount || count > MaxShareCount {
		return nil, fmt.Errorf("share count %d: not in range %d-%d: %w", count, MinShareCount, MaxShareCount, errno.ErrInvalidIndex)
	}
	idStr := opts.IDStr
	if idStr == "" {
		idStr = DefaultIDStr
	}
	if err := ValidateIDStr(idStr); err != nil {
		return nil, err
	}
	defer monitor.Derivation.Observe("split", time.Now())

	l := &List{parent: parent, count: count, idStr: idStr}
	if opts.MasterIdx > 0 {
		ms, err := NewMasterShare(parent, opts.MasterIdx, idStr, count)
		if err != nil {
			return nil, err
		}
		l.master = ms
	}

	for nonceStart := 0; nonceStart <= subseed.MaxNonce; nonceStart++ {
		reg, last, err := l.generate(nonceStart)
		if err != nil {
			return nil, err
		}
		lastID := last.ID()
		if (opts.DebugLastShare && debugCollision(reg, parent.ID(), lastID)) ||
			reg.Contains(lastID) || lastID == parent.ID() {
			monitor.Derivation.Collision("last_share")
			logger.Debug("last share seed ID collision, incrementing nonce_start",
				zap.String("sid", string(lastID)),
				zap.Int("count", count),
				zap.Int("nonce_start", nonceStart+1))
			continue
		}
		reg.Add(subseed.Entry{ID: lastID, Idx: count, Nonce: nonceStart})
		l.reg, l.last = reg, last

		if opts.Verify {
			joined, err := l.Join()
			if err != nil {
				return nil, err
			}
			if !joined.Equal(parent) {
				return nil, fmt.Errorf("rejoined seed %s != %s: %w", joined.ID(), parent.ID(), errno.ErrSeedIDMismatch)
			}
		}
		return l, nil
	}
	return nil, fmt.Errorf("split %s: %w", idStr, errno.ErrKeyDerivationExhausted)
}

// generate 生成前 count-1 份并计算最后一份，不修改 l。
func (l *List) generate(nonceStart int) (*subseed.Registry, *seed.Seed, error) {
	reg := subseed.NewRegistry()
	acc := l.parent.Data()

	if l.master != nil {
		reg.Add(subseed.Entry{ID: l.master.ID(), Idx: 1, Nonce: l.master.Nonce})
		xorInto(acc, l.master.Derived.Data())
	}

	for idx := reg.Len() + 1; idx <= l.count-1; idx++ {
		found, err := subseed.SearchNonce("share", nonceStart, func(nonce int) []byte {
			return l.shareBytes(idx, nonce)
		}, func(id seed.ID) bool {
			return reg.Contains(id) || id == l.parent.ID()
		})
		if err != nil {
			return nil, nil, fmt.Errorf("share %d of %d: %w", idx, l.count, err)
		}
		reg.Add(subseed.Entry{ID: found.ID, Idx: idx, Nonce: found.Nonce})
		xorInto(acc, found.Data)
	}

	last, err := seed.FromBytes(acc)
	if err != nil {
		return nil, nil, err
	}
	return reg, last, nil
}

// shareBytes: scramble key 为 "N-of-N:<id>:" || count(2) || idx(2) || nonce(2) [|| ":master:" || midx(2)]
func (l *List) shareBytes(idx, nonce int) []byte {
	key := []byte(SplitType + ":" + l.idStr + ":")
	key = binary.BigEndian.AppendUint16(key, uint16(l.count))
	key = binary.BigEndian.AppendUint16(key, uint16(idx))
	key = binary.BigEndian.AppendUint16(key, uint16(nonce))
	if l.master != nil {
		key = append(key, ":master:"...)
		key = binary.BigEndian.AppendUint16(key, uint16(l.master.Idx))
	}
	return crypto_util.Scramble(l.parent.Data(), key)[:l.parent.ByteLen()]
}

func debugCollision(reg *subseed.Registry, parentID, lastID seed.ID) bool {
	prefix := lastID[:debugSIDLen]
	if prefix == parentID[:debugSIDLen] {
		return true
	}
	for _, id := range reg.IDs() {
		if id[:debugSIDLen] == prefix {
			return true
		}
	}
	return false
}

func (l *List) Parent() *seed.Seed { return l.parent }

func (l *List) Count() int { return l.count }

func (l *List) IDStr() string { return l.idStr }

// Master 返回主份额，未使用主份额时为 nil
func (l *List) Master() *MasterShare { return l.master }

func (l *List) masterIdx() int {
	if l.master == nil {
		return 0
	}
	return l.master.Idx
}

// ShareByIndex 返回第 idx 份 (1 起始)。使用主份额时第 1 份为主份额的派生贡献。
func (l *List) ShareByIndex(idx int) (*Share, error) {
	if idx < 1 || idx > l.count {
		return nil, fmt.Errorf("share index %d: not in range 1-%d: %w", idx, l.count, errno.ErrInvalidIndex)
	}
	e := l.reg.At(idx - 1)
	switch {
	case idx == l.count:
		return &Share{Seed: l.last, Idx: idx, Nonce: e.Nonce}, nil
	case idx == 1 && l.master != nil:
		return &Share{Seed: l.master.Derived, Idx: idx, Nonce: l.master.Nonce}, nil
	}
	s, err := seed.FromBytes(l.shareBytes(idx, e.Nonce))
	if err != nil {
		return nil, err
	}
	if s.ID() != e.ID {
		return nil, fmt.Errorf("share %d: %s != %s: %w", idx, s.ID(), e.ID, errno.ErrSeedIDMismatch)
	}
	return &Share{Seed: s, Idx: idx, Nonce: e.Nonce}, nil
}

// ShareBySeedID 按 Seed ID 查找份额，主份额按其基础 Seed ID 匹配。未找到时返回 nil, nil。
func (l *List) ShareBySeedID(id seed.ID) (*Share, error) {
	e, ok := l.reg.Get(id)
	if !ok {
		return nil, nil
	}
	return l.ShareByIndex(e.Idx)
}

// Shares 按顺序返回全部份额
func (l *List) Shares() ([]*Share, error) {
	out := make([]*Share, 0, l.count)
	for i := 1; i <= l.count; i++ {
		s, err := l.ShareByIndex(i)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Tag 返回第 idx 份的标识，使用主份额时第 1 份的 Seed ID 为主份额本身的 ID。
func (l *List) Tag(idx int) (Tag, error) {
	if idx < 1 || idx > l.count {
		return Tag{}, fmt.Errorf("share index %d: not in range 1-%d: %w", idx, l.count, errno.ErrInvalidIndex)
	}
	return Tag{
		ParentID:  l.parent.ID(),
		IDStr:     l.idStr,
		Idx:       idx,
		Count:     l.count,
		MasterIdx: l.masterIdx(),
		ID:        l.reg.At(idx - 1).ID,
	}, nil
}

// Join 重组全部份额
func (l *List) Join() (*seed.Seed, error) {
	shares, err := l.Shares()
	if err != nil {
		return nil, err
	}
	seeds := make([]*seed.Seed, len(shares))
	for i, s := range shares {
		seeds[i] = s.Seed
	}
	return JoinShares(seeds, 0, "")
}

// Format 以文本列出拆分参数及各份额 Seed ID
func (l *List) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "    Seed: %s (%d bits)\n", l.parent.ID(), l.parent.BitLen())
	ms := ""
	if l.master != nil {
		ms = fmt.Sprintf(" with master share #%d (%s)", l.master.Idx, l.master.ID())
	}
	fmt.Fprintf(&b, "    Split Type: %d-of-%d (XOR)%s\n", l.count, l.count, ms)
	fmt.Fprintf(&b, "    ID String: %s\n\n", l.idStr)
	b.WriteString("    Shares\n")
	b.WriteString("    ------\n")
	for i, id := range l.reg.IDs() {
		note := ""
		if i == 0 && l.master != nil {
			note = fmt.Sprintf(" (master share #%d)", l.master.Idx)
		}
		fmt.Fprintf(&b, "%5d: %s%s\n", i+1, id, note)
	}
	return b.String()
}

// JoinShares 异或全部份额还原种子。
// masterIdx > 0 时 shares[0] 为主份额的基础种子，按 (idStr, 份额总数) 重新派生其贡献。
func JoinShares(shares []*seed.Seed, masterIdx int, idStr string) (*seed.Seed, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("no shares: %w", errno.ErrBadArgs)
	}
	rest := shares
	if masterIdx > 0 {
		rest = shares[1:]
	}

	byteLen := shares[0].ByteLen()
	acc := make([]byte, byteLen)
	count := 0
	add := func(s *seed.Seed) error {
		if s.ByteLen() != byteLen {
			return fmt.Errorf("seed length mismatch: %d != %d: %w", s.ByteLen(), byteLen, errno.ErrInvalidSeedLength)
		}
		xorInto(acc, s.Data())
		count++
		return nil
	}

	for _, s := range rest {
		if err := add(s); err != nil {
			return nil, err
		}
	}
	if masterIdx > 0 {
		if masterIdx > MaxMasterIdx {
			return nil, fmt.Errorf("master share index %d: %w", masterIdx, errno.ErrInvalidIndex)
		}
		if idStr == "" {
			idStr = DefaultIDStr
		}
		if err := ValidateIDStr(idStr); err != nil {
			return nil, err
		}
		ms, err := newMaster(shares[0], "", masterIdx, 0, idStr, count+1)
		if err != nil {
			return nil, err
		}
		if err := add(ms.Derived); err != nil {
			return nil, err
		}
	}
	if count < MinShareCount || count > MaxShareCount {
		return nil, fmt.Errorf("share count %d: not in range %d-%d: %w", count, MinShareCount, MaxShareCount, errno.ErrInvalidIndex)
	}
	return seed.FromBytes(acc)
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
