package keygen

import (
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/logger"
	"wallet-seed/pkg/monitor"
	"wallet-seed/pkg/protocol"
)

type backend struct {
	name           string
	productionSafe bool
	// probe 返回 nil 表示后端可用
	probe func() error
	build func() KeyGenerator
}

func defaultTable() map[protocol.PubKeyKind][]backend {
	return map[protocol.PubKeyKind][]backend{
		protocol.PubKeyStd: {
			{name: "libsecp256k1", productionSafe: true, probe: probeLibsecp256k1, build: newLibsecp256k1},
			{name: "btcec", productionSafe: true, probe: probeWith(protocol.PubKeyStd, newBtcec), build: newBtcec},
		},
		protocol.PubKeyMonero: {
			{name: "edwards25519", productionSafe: true, probe: probeWith(protocol.PubKeyMonero, newEdwards25519), build: newEdwards25519},
			{name: "dcrd-edwards", productionSafe: false, probe: probeWith(protocol.PubKeyMonero, newDcrdEdwards), build: newDcrdEdwards},
		},
		protocol.PubKeyZcashZ: {
			{name: "x25519", productionSafe: true, probe: probeWith(protocol.PubKeyZcashZ, newX25519), build: newX25519},
		},
	}
}

// probeWith 以该公钥类型规范化后的 probeKey 做自检
func probeWith(kind protocol.PubKeyKind, build func() KeyGenerator) func() error {
	return func() error {
		key, err := protocol.PreprocessKey(probeKey, kind)
		if err != nil {
			return err
		}
		_, err = build().GenData(key, true)
		return err
	}
}

// probeTTL 内不重复探测同一后端，过期后重新探测以便恢复暂时失败的后端
const probeTTL = 10 * time.Minute

type CatalogOptions struct {
	// AllowUnsafe 允许使用非常数时间的后端，仅用于测试
	AllowUnsafe bool
}

// BackendCatalog 按公钥类型维护排好序的密钥生成后端，可在多个 goroutine 间共享。
type BackendCatalog struct {
	opts  CatalogOptions
	table map[protocol.PubKeyKind][]backend

	// probes 缓存各后端的探测结果 (error 或 nil)
	probes *gocache.Cache

	mu     sync.Mutex
	warned map[protocol.PubKeyKind]bool
}

func NewBackendCatalog(opts CatalogOptions) *BackendCatalog {
	return newCatalog(opts, defaultTable())
}

func newCatalog(opts CatalogOptions, table map[protocol.PubKeyKind][]backend) *BackendCatalog {
	return &BackendCatalog{
		opts:   opts,
		table:  table,
		probes: gocache.New(probeTTL, 2*probeTTL),
		warned: make(map[protocol.PubKeyKind]bool),
	}
}

// Backends 返回某公钥类型的后端名称，最快的在前
func (c *BackendCatalog) Backends(kind protocol.PubKeyKind) ([]string, error) {
	list, ok := c.table[kind]
	if !ok {
		return nil, fmt.Errorf("pubkey type %q: %w", kind, errno.ErrInvalidAddressType)
	}
	names := make([]string, len(list))
	for i, b := range list {
		names[i] = b.name
	}
	return names, nil
}

// KeyGenerator 实例化密钥生成器。preferred 为从 1 开始的后端序号，0 表示自动选择。
// 探测失败时依次回退到下一个后端，每种公钥类型只提示一次。
func (c *BackendCatalog) KeyGenerator(kind protocol.PubKeyKind, preferred int) (KeyGenerator, error) {
	list, ok := c.table[kind]
	if !ok {
		return nil, fmt.Errorf("pubkey type %q: %w", kind, errno.ErrInvalidAddressType)
	}
	if preferred < 0 || preferred > len(list) {
		return nil, fmt.Errorf("%d: backend number out of range (1-%d) for %s: %w",
			preferred, len(list), kind, errno.ErrBackendUnavailable)
	}

	start := 0
	if preferred > 0 {
		start = preferred - 1
	}

	var lastErr error
	for _, b := range list[start:] {
		if !b.productionSafe && !c.opts.AllowUnsafe {
			return nil, fmt.Errorf("backend %q: %w", b.name, errno.ErrUnsafeBackend)
		}
		if err := c.probe(kind, b); err != nil {
			lastErr = err
			c.advise(kind, b.name, err)
			continue
		}
		logger.Debug("keygen backend selected", zap.String("pubkey_type", string(kind)), zap.String("backend", b.name))
		return b.build(), nil
	}
	return nil, fmt.Errorf("no usable backend for %s (last error: %v): %w", kind, lastErr, errno.ErrBackendUnavailable)
}

func (c *BackendCatalog) probe(kind protocol.PubKeyKind, b backend) error {
	key := string(kind) + "/" + b.name
	if v, found := c.probes.Get(key); found {
		if v == nil {
			return nil
		}
		return v.(error)
	}
	err := b.probe()
	c.probes.SetDefault(key, err)
	return err
}

func (c *BackendCatalog) advise(kind protocol.PubKeyKind, name string, err error) {
	monitor.Derivation.Fallback(string(kind), name)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.warned[kind] {
		return
	}
	c.warned[kind] = true
	logger.Warn("keygen backend unavailable, falling back to slower implementation",
		zap.String("pubkey_type", string(kind)),
		zap.String("backend", name),
		zap.Error(err))
}
