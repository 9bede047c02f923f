package derive

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"wallet-seed/pkg/errno"
)

const (
	MinAddrIdx = 1
	MaxAddrIdx = 9999999

	// MaxIdxListLen 是单次请求允许的最大序号数量
	MaxIdxListLen = 1000000
)

// IdxList 是升序、无重复的地址序号列表
type IdxList []int

// ParseIdxList 解析形如 "1,3-5,7" 的序号列表，结果排序并去重。
func ParseIdxList(s string) (IdxList, error) {
	var idxs []int
	for _, part := range strings.Split(s, ",") {
		bounds := strings.Split(strings.TrimSpace(part), "-")
		switch len(bounds) {
		case 1:
			n, err := strconv.Atoi(bounds[0])
			if err != nil {
				return nil, fmt.Errorf("address index %q: %w", part, errno.ErrBadArgs)
			}
			idxs = append(idxs, n)
		case 2:
			lo, err1 := strconv.Atoi(bounds[0])
			hi, err2 := strconv.Atoi(bounds[1])
			if err1 != nil || err2 != nil || lo > hi {
				return nil, fmt.Errorf("%s: invalid range: %w", part, errno.ErrBadArgs)
			}
			if hi-lo+1 > MaxIdxListLen {
				return nil, fmt.Errorf("%s: range longer than %d: %w", part, MaxIdxListLen, errno.ErrInvalidIndex)
			}
			for n := lo; n <= hi; n++ {
				idxs = append(idxs, n)
			}
		default:
			return nil, fmt.Errorf("%s: invalid range: %w", part, errno.ErrBadArgs)
		}
	}
	return NewIdxList(idxs)
}

// NewIdxList 校验每个序号并返回排序去重后的列表。
func NewIdxList(idxs []int) (IdxList, error) {
	set := make(map[int]struct{}, len(idxs))
	for _, n := range idxs {
		if n < MinAddrIdx || n > MaxAddrIdx {
			return nil, fmt.Errorf("address index %d: %w", n, errno.ErrInvalidIndex)
		}
		set[n] = struct{}{}
	}
	if len(set) > MaxIdxListLen {
		return nil, fmt.Errorf("%d indices: list longer than %d: %w", len(set), MaxIdxListLen, errno.ErrInvalidIndex)
	}
	out := make(IdxList, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}

// IDString 将列表压缩为区间形式，如 "1,3-5,7"。
func (l IdxList) IDString() string {
	if len(l) == 0 {
		return ""
	}
	var b strings.Builder
	start := l[0]
	prev := l[0]
	flush := func() {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(start))
		if prev != start {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(prev))
		}
	}
	for _, n := range l[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		flush()
		start, prev = n, n
	}
	flush()
	return b.String()
}
