package seedsplit

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/seed"
)

func parentSeed(t *testing.T, n int) *seed.Seed {
	t.Helper()
	s, err := seed.FromBytes(bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 8)[:n])
	require.NoError(t, err)
	return s
}

func shareSeeds(t *testing.T, l *List) []*seed.Seed {
	t.Helper()
	shares, err := l.Shares()
	require.NoError(t, err)
	out := make([]*seed.Seed, len(shares))
	for i, s := range shares {
		out[i] = s.Seed
	}
	return out
}

func TestSplitJoinRoundTrip(t *testing.T) {
	for _, n := range []int{16, 24, 32} {
		for _, count := range []int{2, 3, 7, 64} {
			t.Run(fmt.Sprintf("%dbytes-%dshares", n, count), func(t *testing.T) {
				parent := parentSeed(t, n)
				l, err := Split(parent, count, Options{Verify: true})
				require.NoError(t, err)

				joined, err := JoinShares(shareSeeds(t, l), 0, "")
				require.NoError(t, err)
				assert.True(t, parent.Equal(joined))
				assert.Equal(t, parent.ID(), joined.ID())
			})
		}
	}
}

func TestSplitMaxShareCount(t *testing.T) {
	parent := parentSeed(t, 16)
	l, err := Split(parent, MaxShareCount, Options{IDStr: "big"})
	require.NoError(t, err)

	joined, err := l.Join()
	require.NoError(t, err)
	assert.True(t, parent.Equal(joined))

	seen := map[seed.ID]bool{parent.ID(): true}
	for _, id := range l.reg.IDs() {
		assert.False(t, seen[id], "duplicate seed ID %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, MaxShareCount+1)
}

func TestSplitIsDeterministic(t *testing.T) {
	parent := parentSeed(t, 32)
	a, err := Split(parent, 5, Options{IDStr: "alice"})
	require.NoError(t, err)
	b, err := Split(parent, 5, Options{IDStr: "alice"})
	require.NoError(t, err)
	c, err := Split(parent, 5, Options{IDStr: "bob"})
	require.NoError(t, err)

	assert.Equal(t, a.reg.IDs(), b.reg.IDs())
	assert.NotEqual(t, a.reg.IDs()[0], c.reg.IDs()[0])
}

func TestSplitWithMasterShare(t *testing.T) {
	parent := parentSeed(t, 32)
	l, err := Split(parent, 4, Options{IDStr: "vault", MasterIdx: 3, Verify: true})
	require.NoError(t, err)
	require.NotNil(t, l.Master())

	first, err := l.ShareByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, l.Master().Derived.ID(), first.ID())

	// 用户持有的是主份额本身
	seeds := shareSeeds(t, l)
	seeds[0] = l.Master().Seed
	joined, err := JoinShares(seeds, 3, "vault")
	require.NoError(t, err)
	assert.True(t, parent.Equal(joined))

	// 错误的 ID 字符串无法还原
	wrong, err := JoinShares(seeds, 3, "other")
	require.NoError(t, err)
	assert.False(t, parent.Equal(wrong))
}

func TestMasterShareReuse(t *testing.T) {
	parent := parentSeed(t, 24)
	a, err := Split(parent, 2, Options{IDStr: "one", MasterIdx: 1})
	require.NoError(t, err)
	b, err := Split(parent, 3, Options{IDStr: "two", MasterIdx: 1})
	require.NoError(t, err)

	// 同一主份额参与不同拆分，贡献各不相同
	assert.Equal(t, a.Master().ID(), b.Master().ID())
	assert.NotEqual(t, a.Master().Derived.ID(), b.Master().Derived.ID())

	for _, l := range []*List{a, b} {
		seeds := shareSeeds(t, l)
		seeds[0] = l.Master().Seed
		joined, err := JoinShares(seeds, 1, l.IDStr())
		require.NoError(t, err)
		assert.True(t, parent.Equal(joined))
	}
}

func TestSplitDebugLastShare(t *testing.T) {
	parent := parentSeed(t, 32)
	l, err := Split(parent, 9, Options{DebugLastShare: true, Verify: true})
	require.NoError(t, err)

	ids := l.reg.IDs()
	last := ids[len(ids)-1]
	for _, id := range append(ids[:len(ids)-1:len(ids)-1], parent.ID()) {
		assert.NotEqual(t, id[:debugSIDLen], last[:debugSIDLen])
	}
}

func TestShareLookup(t *testing.T) {
	parent := parentSeed(t, 32)
	l, err := Split(parent, 3, Options{})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		s, err := l.ShareByIndex(i)
		require.NoError(t, err)
		assert.Equal(t, i, s.Idx)

		byID, err := l.ShareBySeedID(s.ID())
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, i, byID.Idx)
	}

	none, err := l.ShareBySeedID("00000000")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = l.ShareByIndex(4)
	assert.True(t, errors.Is(err, errno.ErrInvalidIndex))
}

func TestTagAndFormat(t *testing.T) {
	parent := parentSeed(t, 32)
	l, err := Split(parent, 3, Options{IDStr: "alice", MasterIdx: 2})
	require.NoError(t, err)

	tag, err := l.Tag(2)
	require.NoError(t, err)
	share, err := l.ShareByIndex(2)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("4710FBF0-alice-2of3_with_master2[%s]", share.ID()), tag.FnStem())
	assert.Equal(t, "share 2 of 3 of 4710FBF0, split id 'alice', with master share #2", tag.Desc())
	assert.Equal(t, fmt.Sprintf("4710FBF0-MASTER2[%s]", l.Master().ID()), l.Master().FnStem())

	out := l.Format()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "    Seed: 4710FBF0 (256 bits)", lines[0])
	assert.Equal(t, fmt.Sprintf("    Split Type: 3-of-3 (XOR) with master share #2 (%s)", l.Master().ID()), lines[1])
	assert.Equal(t, "    ID String: alice", lines[2])
	assert.Equal(t, fmt.Sprintf("    1: %s (master share #2)", l.Master().ID()), lines[6])
	assert.Equal(t, fmt.Sprintf("    2: %s", share.ID()), lines[7])
}

func TestSplitInvalidArgs(t *testing.T) {
	parent := parentSeed(t, 16)

	_, err := Split(parent, 1, Options{})
	assert.True(t, errors.Is(err, errno.ErrInvalidIndex))
	_, err = Split(parent, 1025, Options{})
	assert.True(t, errors.Is(err, errno.ErrInvalidIndex))
	_, err = Split(parent, 2, Options{IDStr: "a:b"})
	assert.True(t, errors.Is(err, errno.ErrBadArgs))
	_, err = Split(parent, 2, Options{MasterIdx: 1025})
	assert.True(t, errors.Is(err, errno.ErrInvalidIndex))
}

func TestJoinSharesErrors(t *testing.T) {
	a := parentSeed(t, 16)
	b := parentSeed(t, 32)

	_, err := JoinShares([]*seed.Seed{a, b}, 0, "")
	assert.True(t, errors.Is(err, errno.ErrInvalidSeedLength))

	_, err = JoinShares([]*seed.Seed{a}, 0, "")
	assert.True(t, errors.Is(err, errno.ErrInvalidIndex))

	_, err = JoinShares(nil, 0, "")
	assert.True(t, errors.Is(err, errno.ErrBadArgs))
}

func TestParseSpecifier(t *testing.T) {
	tests := []struct {
		in      string
		want    Specifier
		wantErr bool
	}{
		{"1:2", Specifier{"default", 1, 2}, false},
		{"alice:3:5", Specifier{"alice", 3, 5}, false},
		{"x:1024:1024", Specifier{"x", 1024, 1024}, false},
		{"3:2", Specifier{}, true},
		{"1:1", Specifier{}, true},
		{"1:1025", Specifier{}, true},
		{"0:2", Specifier{}, true},
		{"a b:1:2", Specifier{}, true},
		{"a\\b:1:2", Specifier{}, true},
		{"1", Specifier{}, true},
		{"a:b:1:2", Specifier{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpecifier(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateIDStr(t *testing.T) {
	assert.NoError(t, ValidateIDStr("default"))
	assert.NoError(t, ValidateIDStr(strings.Repeat("x", MaxIDStrLen)))
	assert.NoError(t, ValidateIDStr("钱包"))
	assert.Error(t, ValidateIDStr(""))
	assert.Error(t, ValidateIDStr(strings.Repeat("x", MaxIDStrLen+1)))
	assert.Error(t, ValidateIDStr("tab\there"))
}
