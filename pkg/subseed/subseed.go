package subseed

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/monitor"
	"wallet-seed/pkg/seed"
)

const (
	MinIndex = 1
	MaxIndex = 1000000

	// DefaultListLen 是按 Seed ID 查找时默认的搜索上限
	DefaultListLen = 100

	// ShortByteLen 短子种子固定为 128 位，与父种子长度无关
	ShortByteLen = 16
)

// Length 区分长短两种子种子
type Length int

const (
	Long Length = iota
	Short
)

func (l Length) String() string {
	if l == Short {
		return "short"
	}
	return "long"
}

// Letter 返回序号字符串中使用的后缀字母
func (l Length) Letter() string {
	if l == Short {
		return "S"
	}
	return "L"
}

// Idx 是子种子序号，如 "10L" 或 "2S"
type Idx struct {
	Idx    int
	Length Length
}

// ParseIdx 解析 "<n>"、"<n>L" 或 "<n>S" (字母大小写均可，缺省为长子种子)。
func ParseIdx(s string) (Idx, error) {
	if s == "" {
		return Idx{}, fmt.Errorf("subseed index: empty string: %w", errno.ErrBadArgs)
	}
	num, length := s, Long
	switch s[len(s)-1] {
	case 'S', 's':
		num, length = s[:len(s)-1], Short
	case 'L', 'l':
		num = s[:len(s)-1]
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return Idx{}, fmt.Errorf("subseed index %q: valid format is an integer plus optional letter 'S' or 'L': %w", s, errno.ErrBadArgs)
	}
	if n < MinIndex || n > MaxIndex {
		return Idx{}, fmt.Errorf("subseed index %d: %w", n, errno.ErrInvalidIndex)
	}
	return Idx{Idx: n, Length: length}, nil
}

func (i Idx) String() string {
	return strconv.Itoa(i.Idx) + i.Length.Letter()
}

// Subseed 是由父种子按序号派生的子种子
type Subseed struct {
	*seed.Seed
	Index Idx
	Nonce int
}

// DeriveBytes 计算子种子数据。
// scramble key 为 idx(4 字节大端) || nonce(2 字节大端) || short(1 字节)。
func DeriveBytes(parent *seed.Seed, idx, nonce int, length Length) []byte {
	key := make([]byte, 7)
	binary.BigEndian.PutUint32(key[0:4], uint32(idx))
	binary.BigEndian.PutUint16(key[4:6], uint16(nonce))
	n := parent.ByteLen()
	if length == Short {
		key[6] = 1
		n = ShortByteLen
	}
	return crypto_util.Scramble(parent.Data(), key)[:n]
}

// List 是一个父种子的子种子列表，长短两张记录表只追加、从不改写。
type List struct {
	parent *seed.Seed
	length int
	long   *Registry
	short  *Registry
}

// NewList 创建子种子列表，length 为按 Seed ID 查找时的默认搜索上限 (<=0 时为 DefaultListLen)。
// 列表创建时不做任何派生。
func NewList(parent *seed.Seed, length int) *List {
	if length <= 0 {
		length = DefaultListLen
	}
	return &List{
		parent: parent,
		length: length,
		long:   NewRegistry(),
		short:  NewRegistry(),
	}
}

func (l *List) Parent() *seed.Seed { return l.parent }

// Len 返回已派生的序号数量
func (l *List) Len() int { return l.long.Len() }

func (l *List) taken(id seed.ID) bool {
	return l.long.Contains(id) || l.short.Contains(id) || id == l.parent.ID()
}

// Extend 将列表派生到 last (含)，已有记录保持不变。
func (l *List) Extend(last int) error {
	_, err := l.extend(last, "")
	return err
}

// extend 逐个序号派生长短子种子，target 非空时派生到该 Seed ID 出现为止。
func (l *List) extend(last int, target seed.ID) (bool, error) {
	if last > MaxIndex {
		return false, fmt.Errorf("subseed index %d: %w", last, errno.ErrInvalidIndex)
	}
	defer monitor.Derivation.Observe("subseed", time.Now())

	for idx := l.Len() + 1; idx <= last; idx++ {
		long, err := SearchNonce("subseed", 0, func(nonce int) []byte {
			return DeriveBytes(l.parent, idx, nonce, Long)
		}, l.taken)
		if err != nil {
			return false, fmt.Errorf("subseed %dL: %w", idx, err)
		}
		short, err := SearchNonce("subseed", 0, func(nonce int) []byte {
			return DeriveBytes(l.parent, idx, nonce, Short)
		}, func(id seed.ID) bool {
			return id == long.ID || l.taken(id)
		})
		if err != nil {
			return false, fmt.Errorf("subseed %dS: %w", idx, err)
		}

		// 同一序号的长短记录一起提交
		l.long.Add(Entry{ID: long.ID, Idx: idx, Nonce: long.Nonce})
		l.short.Add(Entry{ID: short.ID, Idx: idx, Nonce: short.Nonce})

		if target != "" && (long.ID == target || short.ID == target) {
			return true, nil
		}
	}
	return false, nil
}

func (l *List) registry(length Length) *Registry {
	if length == Short {
		return l.short
	}
	return l.long
}

// ByIndex 返回指定序号的子种子，必要时先扩展列表。
func (l *List) ByIndex(i Idx) (*Subseed, error) {
	if i.Idx < MinIndex || i.Idx > MaxIndex {
		return nil, fmt.Errorf("subseed index %d: %w", i.Idx, errno.ErrInvalidIndex)
	}
	if i.Idx > l.Len() {
		if err := l.Extend(i.Idx); err != nil {
			return nil, err
		}
	}
	e := l.registry(i.Length).At(i.Idx - 1)
	if e.Idx != i.Idx {
		return nil, fmt.Errorf("subseed %s: registry position holds index %d: %w", i, e.Idx, errno.InternalError)
	}
	return l.materialize(e, i.Length)
}

// ByIndexString 解析并返回形如 "10L" 的子种子。
func (l *List) ByIndexString(s string) (*Subseed, error) {
	i, err := ParseIdx(s)
	if err != nil {
		return nil, err
	}
	return l.ByIndex(i)
}

// BySeedID 按 Seed ID 查找子种子，最多派生到 lastIdx (<=0 时使用列表默认长度)。
// 未找到时返回 nil, nil。
func (l *List) BySeedID(id seed.ID, lastIdx int) (*Subseed, error) {
	if lastIdx <= 0 {
		lastIdx = l.length
	}
	if ss, err := l.existing(id); ss != nil || err != nil {
		return ss, err
	}
	if l.Len() >= lastIdx {
		return nil, nil
	}
	found, err := l.extend(lastIdx, id)
	if err != nil || !found {
		return nil, err
	}
	return l.existing(id)
}

func (l *List) existing(id seed.ID) (*Subseed, error) {
	for _, length := range []Length{Long, Short} {
		if e, ok := l.registry(length).Get(id); ok {
			return l.materialize(e, length)
		}
	}
	return nil, nil
}

// materialize 按记录重新计算子种子并核对 Seed ID。
func (l *List) materialize(e Entry, length Length) (*Subseed, error) {
	s, err := seed.FromBytes(DeriveBytes(l.parent, e.Idx, e.Nonce, length))
	if err != nil {
		return nil, err
	}
	if s.ID() != e.ID {
		return nil, fmt.Errorf("%s != %s: %w", s.ID(), e.ID, errno.ErrSeedIDMismatch)
	}
	return &Subseed{Seed: s, Index: Idx{Idx: e.Idx, Length: length}, Nonce: e.Nonce}, nil
}

// Format 以表格列出 first 到 last 的长短子种子 Seed ID。
func (l *List) Format(first, last int) (string, error) {
	if first < MinIndex || last > MaxIndex || first > last {
		return "", fmt.Errorf("subseed range %d-%d: %w", first, last, errno.ErrInvalidIndex)
	}
	if l.Len() < last {
		if err := l.Extend(last); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "    Parent Seed: %s (%d bits)\n\n", l.parent.ID(), l.parent.BitLen())
	fmt.Fprintf(&b, "%18s %18s\n", "Long Subseeds", "Short Subseeds")
	fmt.Fprintf(&b, "%18s %18s\n", "-------------", "--------------")
	for n := first; n <= last; n++ {
		fmt.Fprintf(&b, "%7dL: %-8s %7dS: %-8s\n", n, l.long.At(n-1).ID, n, l.short.At(n-1).ID)
	}
	return b.String(), nil
}
