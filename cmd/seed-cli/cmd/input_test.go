package cmd

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"wallet-seed/pkg/errno"
)

func TestLoadSeed(t *testing.T) {
	defer func() { seedHex, seedWords = "", "" }()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		_, err := loadSeed()
		assert.True(t, errors.Is(err, errno.ErrBadArgs))
	}

	seedHex = "deadbeefdeadbeefdeadbeefdeadbeef"
	s, err := loadSeed()
	require.NoError(t, err)
	assert.Equal(t, "43670520", s.ID().String())

	seedWords = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	_, err = loadSeed()
	assert.True(t, errors.Is(err, errno.ErrBadArgs))

	seedHex = ""
	s, err = loadSeed()
	require.NoError(t, err)
	assert.Equal(t, 128, s.BitLen())
}

func TestParseSubseedRange(t *testing.T) {
	first, last, err := parseSubseedRange("3-7")
	require.NoError(t, err)
	assert.Equal(t, 3, first)
	assert.Equal(t, 7, last)

	first, last, err = parseSubseedRange("5")
	require.NoError(t, err)
	assert.Equal(t, 5, first)
	assert.Equal(t, 5, last)

	_, _, err = parseSubseedRange("a-b")
	assert.True(t, errors.Is(err, errno.ErrBadArgs))
}

func TestParseSeedInput(t *testing.T) {
	s, err := parseSeedInput("  deadbeefdeadbeefdeadbeefdeadbeef\n")
	require.NoError(t, err)
	assert.Equal(t, "43670520", s.ID().String())

	s, err = parseSeedInput("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), s.Data())
}
