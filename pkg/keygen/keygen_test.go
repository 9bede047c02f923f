package keygen

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/monitor"
	"wallet-seed/pkg/protocol"
)

const secpG = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func one(littleEndian bool) []byte {
	k := make([]byte, 32)
	if littleEndian {
		k[0] = 1
	} else {
		k[31] = 1
	}
	return k
}

func TestBackends(t *testing.T) {
	c := NewBackendCatalog(CatalogOptions{})

	names, err := c.Backends(protocol.PubKeyStd)
	require.NoError(t, err)
	assert.Equal(t, []string{"libsecp256k1", "btcec"}, names)

	names, err = c.Backends(protocol.PubKeyMonero)
	require.NoError(t, err)
	assert.Equal(t, []string{"edwards25519", "dcrd-edwards"}, names)

	_, err = c.Backends(protocol.PubKeyPassword)
	assert.True(t, errors.Is(err, errno.ErrInvalidAddressType))
}

func TestSecp256k1Backends(t *testing.T) {
	for _, g := range []KeyGenerator{newBtcec(), newLibsecp256k1()} {
		t.Run(g.Name(), func(t *testing.T) {
			data, err := g.GenData(one(false), true)
			require.NoError(t, err)
			assert.Equal(t, secpG, hex.EncodeToString(data.Pubkey))
			assert.Equal(t, protocol.PubKeyStd, data.Kind)
			assert.True(t, data.Compressed)
			assert.Nil(t, data.ViewKey)

			data, err = g.GenData(one(false), false)
			require.NoError(t, err)
			assert.Len(t, data.Pubkey, 65)
			assert.Equal(t, byte(0x04), data.Pubkey[0])

			_, err = g.GenData(make([]byte, 32), true)
			assert.True(t, errors.Is(err, errno.ErrInvalidKey))
			_, err = g.GenData(make([]byte, 31), true)
			assert.True(t, errors.Is(err, errno.ErrInvalidKey))
		})
	}
}

func TestSecp256k1BackendsAgree(t *testing.T) {
	for i := 1; i < 16; i++ {
		key := bytes.Repeat([]byte{byte(i * 7)}, 32)
		a, err := newBtcec().GenData(key, i%2 == 0)
		require.NoError(t, err)
		b, err := newLibsecp256k1().GenData(key, i%2 == 0)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestMoneroBackends(t *testing.T) {
	base := "5866666666666666666666666666666666666666666666666666666666666666"
	for _, g := range []KeyGenerator{newEdwards25519(), newDcrdEdwards()} {
		t.Run(g.Name(), func(t *testing.T) {
			data, err := g.GenData(one(true), false)
			require.NoError(t, err)
			require.Len(t, data.Pubkey, 64)
			assert.Equal(t, base, hex.EncodeToString(data.Pubkey[:32]))

			view, err := moneroViewKey(one(true))
			require.NoError(t, err)
			assert.Equal(t, view, data.ViewKey)
			assert.Equal(t, protocol.PubKeyMonero, data.Kind)
		})
	}
}

func TestMoneroBackendsAgree(t *testing.T) {
	for i := 1; i < 8; i++ {
		key := bytes.Repeat([]byte{byte(i * 13)}, 32)
		key[31] &= 0x0f
		a, err := newEdwards25519().GenData(key, false)
		require.NoError(t, err)
		b, err := newDcrdEdwards().GenData(key, false)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestMoneroRejectsUnreducedKey(t *testing.T) {
	_, err := newEdwards25519().GenData(bytes.Repeat([]byte{0xff}, 32), false)
	assert.True(t, errors.Is(err, errno.ErrInvalidKey))
}

func TestZcashBackend(t *testing.T) {
	key := bytes.Repeat([]byte{0x0a}, 32)
	data, err := newX25519().GenData(key, false)
	require.NoError(t, err)
	require.Len(t, data.Pubkey, 64)
	require.Len(t, data.ViewKey, 64)

	apk, err := zhash256(key, 0)
	require.NoError(t, err)
	assert.Equal(t, apk, data.Pubkey[:32])
	assert.Equal(t, apk, data.ViewKey[:32])
	assert.Equal(t, byte(0), data.ViewKey[32]&0x07)
	assert.Equal(t, byte(0x40), data.ViewKey[63]&0xc0)
	assert.Equal(t, protocol.PubKeyZcashZ, data.Kind)

	// 输入不同的 t 得到不同的结果
	skenc, err := zhash256(key, 1)
	require.NoError(t, err)
	assert.NotEqual(t, apk, skenc)
}

func TestKeyGeneratorSelection(t *testing.T) {
	c := NewBackendCatalog(CatalogOptions{})

	g, err := c.KeyGenerator(protocol.PubKeyStd, 2)
	require.NoError(t, err)
	assert.Equal(t, "btcec", g.Name())

	g, err = c.KeyGenerator(protocol.PubKeyMonero, 0)
	require.NoError(t, err)
	assert.Equal(t, "edwards25519", g.Name())

	g, err = c.KeyGenerator(protocol.PubKeyZcashZ, 0)
	require.NoError(t, err)
	assert.Equal(t, "x25519", g.Name())

	_, err = c.KeyGenerator(protocol.PubKeyStd, 3)
	assert.True(t, errors.Is(err, errno.ErrBackendUnavailable))

	_, err = c.KeyGenerator(protocol.PubKeyPassword, 0)
	assert.True(t, errors.Is(err, errno.ErrInvalidAddressType))
}

func TestDefaultBackendsPassSelfTest(t *testing.T) {
	for kind, list := range defaultTable() {
		for _, b := range list {
			if b.name == "libsecp256k1" && !libsecp256k1Linked {
				continue
			}
			t.Run(string(kind)+"/"+b.name, func(t *testing.T) {
				assert.NoError(t, b.probe())
			})
		}
	}
}

func TestMoneroSelectionWithoutFallback(t *testing.T) {
	saved := monitor.Derivation
	monitor.Derivation = monitor.NewDerivationMetrics(prometheus.NewRegistry())
	defer func() { monitor.Derivation = saved }()

	c := NewBackendCatalog(CatalogOptions{})
	g, err := c.KeyGenerator(protocol.PubKeyMonero, 0)
	require.NoError(t, err)
	assert.Equal(t, "edwards25519", g.Name())
	assert.False(t, c.warned[protocol.PubKeyMonero])
	assert.Equal(t, 0.0, testutil.ToFloat64(monitor.Derivation.KeygenFallback.WithLabelValues("monero", "edwards25519")))
}

func TestUnsafeBackendNeedsTestMode(t *testing.T) {
	_, err := NewBackendCatalog(CatalogOptions{}).KeyGenerator(protocol.PubKeyMonero, 2)
	assert.True(t, errors.Is(err, errno.ErrUnsafeBackend))

	g, err := NewBackendCatalog(CatalogOptions{AllowUnsafe: true}).KeyGenerator(protocol.PubKeyMonero, 2)
	require.NoError(t, err)
	assert.Equal(t, "dcrd-edwards", g.Name())
}

func TestFallback(t *testing.T) {
	saved := monitor.Derivation
	monitor.Derivation = monitor.NewDerivationMetrics(prometheus.NewRegistry())
	defer func() { monitor.Derivation = saved }()

	probes := 0
	broken := backend{
		name:           "broken",
		productionSafe: true,
		probe:          func() error { probes++; return errors.New("not linked") },
		build:          newLibsecp256k1,
	}
	table := map[protocol.PubKeyKind][]backend{
		protocol.PubKeyStd: {broken, {name: "btcec", productionSafe: true, probe: probeWith(protocol.PubKeyStd, newBtcec), build: newBtcec}},
	}
	c := newCatalog(CatalogOptions{}, table)

	for i := 0; i < 3; i++ {
		g, err := c.KeyGenerator(protocol.PubKeyStd, 0)
		require.NoError(t, err)
		assert.Equal(t, "btcec", g.Name())
	}
	assert.True(t, c.warned[protocol.PubKeyStd])
	assert.Equal(t, 1, probes, "probe result is cached")
	assert.Equal(t, 3.0, testutil.ToFloat64(monitor.Derivation.KeygenFallback.WithLabelValues("std", "broken")))

	table[protocol.PubKeyStd] = []backend{broken}
	_, err := c.KeyGenerator(protocol.PubKeyStd, 0)
	assert.True(t, errors.Is(err, errno.ErrBackendUnavailable))
}
