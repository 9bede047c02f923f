package seed

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-seed/pkg/errno"
)

var deadbeef = bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 8)

func TestSeedID(t *testing.T) {
	tests := []struct {
		byteLen int
		want    ID
	}{
		{32, "4710FBF0"},
		{24, "9D07ABBD"},
		{16, "43670520"},
	}

	for _, tt := range tests {
		s, err := FromBytes(deadbeef[:tt.byteLen])
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.ID())
		assert.Equal(t, tt.byteLen*8, s.BitLen())
	}
}

func TestFromBytes_InvalidLength(t *testing.T) {
	for _, n := range []int{0, 15, 20, 33, 64} {
		_, err := FromBytes(make([]byte, n))
		if !errors.Is(err, errno.ErrInvalidSeedLength) {
			t.Errorf("%d 字节: 期望 ErrInvalidSeedLength, 得到 %v", n, err)
		}
	}
}

func TestSeedIsImmutable(t *testing.T) {
	buf := bytes.Clone(deadbeef)
	s, err := FromBytes(buf)
	require.NoError(t, err)

	buf[0] ^= 0xff
	out := s.Data()
	out[1] ^= 0xff

	assert.Equal(t, deadbeef, s.Data())
	assert.Equal(t, ID("4710FBF0"), s.ID())
}

func TestFromHex(t *testing.T) {
	s, err := FromHex("deadbeefdeadbeefdeadbeefdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, ID("43670520"), s.ID())
	assert.Equal(t, "43670520 (128 bits)", s.String())

	_, err = FromHex("zz")
	assert.Error(t, err)
}

func TestMnemonicRoundTrip(t *testing.T) {
	s, err := FromBytes(deadbeef[:24])
	require.NoError(t, err)

	words, err := s.Mnemonic()
	require.NoError(t, err)

	back, err := FromMnemonic(words)
	require.NoError(t, err)
	assert.True(t, s.Equal(back))
}

func TestNew(t *testing.T) {
	for _, bits := range SupportedBitLens {
		s, err := New(bits)
		require.NoError(t, err)
		assert.Equal(t, bits, s.BitLen())
	}
	_, err := New(160)
	assert.True(t, errors.Is(err, errno.ErrInvalidSeedLength))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("4710fbf0")
	require.NoError(t, err)
	assert.Equal(t, ID("4710FBF0"), id)

	for _, bad := range []string{"", "4710FBF", "4710FBFG", "4710FBF00"} {
		_, err := ParseID(bad)
		assert.True(t, errors.Is(err, errno.ErrInvalidSeedID), bad)
	}
}
