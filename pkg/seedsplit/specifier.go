package seedsplit

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"wallet-seed/pkg/errno"
)

const (
	SplitType = "N-of-N"

	MinShareCount = 2
	MaxShareCount = 1024
	MaxShareIdx   = 1024
	MaxMasterIdx  = 1024

	DefaultIDStr = "default"
	MaxIDStrLen  = 256
)

// ValidateIDStr 检查拆分 ID 字符串: 1-256 个可打印字符，不含冒号、空格或反斜杠。
func ValidateIDStr(s string) error {
	n := utf8.RuneCountInString(s)
	if n == 0 || n > MaxIDStrLen {
		return fmt.Errorf("split ID string: length %d not in range 1-%d: %w", n, MaxIDStrLen, errno.ErrBadArgs)
	}
	if strings.ContainsAny(s, ": \\") {
		return fmt.Errorf("split ID string %q: contains forbidden character: %w", s, errno.ErrBadArgs)
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return fmt.Errorf("split ID string %q: contains non-printable character: %w", s, errno.ErrBadArgs)
		}
	}
	return nil
}

// Specifier 描述一份拆分份额: "[id:]idx:count"
type Specifier struct {
	ID    string
	Idx   int
	Count int
}

// ParseSpecifier 解析 "[id:]idx:count"，缺省 ID 为 "default"。
func ParseSpecifier(s string) (Specifier, error) {
	parts := strings.SplitN(s, ":", 3)
	var sp Specifier
	var idx, count string
	switch len(parts) {
	case 3:
		sp.ID, idx, count = parts[0], parts[1], parts[2]
	case 2:
		sp.ID, idx, count = DefaultIDStr, parts[0], parts[1]
	default:
		return sp, fmt.Errorf("seed split specifier %q cannot be parsed: %w", s, errno.ErrBadArgs)
	}
	if err := ValidateIDStr(sp.ID); err != nil {
		return sp, err
	}

	var err error
	if sp.Idx, err = parseRange(idx, 1, MaxShareIdx, "share index"); err != nil {
		return sp, err
	}
	if sp.Count, err = parseRange(count, MinShareCount, MaxShareCount, "share count"); err != nil {
		return sp, err
	}
	if sp.Idx > sp.Count {
		return sp, fmt.Errorf("seed split specifier %q: share index greater than share count: %w", s, errno.ErrBadArgs)
	}
	return sp, nil
}

func (sp Specifier) String() string {
	return fmt.Sprintf("%s:%d:%d", sp.ID, sp.Idx, sp.Count)
}

func parseRange(s string, lo, hi int, desc string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s %q: not an integer: %w", desc, s, errno.ErrBadArgs)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%s %d: not in range %d-%d: %w", desc, n, lo, hi, errno.ErrInvalidIndex)
	}
	return n, nil
}
