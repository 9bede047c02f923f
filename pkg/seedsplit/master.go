package seedsplit

import (
	"encoding/binary"
	"fmt"

	"wallet-seed/pkg/crypto_util"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/seed"
	"wallet-seed/pkg/subseed"
)

// MasterShare 是与具体拆分无关、可重复使用的主份额。
// 参与某次拆分时贡献的是以 (ID 字符串, 份额数) 再次派生的 Derived。
type MasterShare struct {
	*seed.Seed
	Idx      int
	Nonce    int
	Derived  *seed.Seed
	parentID seed.ID
}

// NewMasterShare 派生父种子的第 idx 号主份额，nonce 仅用于避开父种子的 Seed ID。
func NewMasterShare(parent *seed.Seed, idx int, idStr string, count int) (*MasterShare, error) {
	if idx < 1 || idx > MaxMasterIdx {
		return nil, fmt.Errorf("master share index %d: %w", idx, errno.ErrInvalidIndex)
	}
	found, err := subseed.SearchNonce("master_share", 0, func(nonce int) []byte {
		return masterBaseBytes(parent, idx, nonce)
	}, func(id seed.ID) bool {
		return id == parent.ID()
	})
	if err != nil {
		return nil, err
	}
	base, err := seed.FromBytes(found.Data)
	if err != nil {
		return nil, err
	}
	return newMaster(base, parent.ID(), idx, found.Nonce, idStr, count)
}

func newMaster(base *seed.Seed, parentID seed.ID, idx, nonce int, idStr string, count int) (*MasterShare, error) {
	derived, err := seed.FromBytes(masterDerivedBytes(base, idStr, count))
	if err != nil {
		return nil, err
	}
	return &MasterShare{
		Seed:     base,
		Idx:      idx,
		Nonce:    nonce,
		Derived:  derived,
		parentID: parentID,
	}, nil
}

// FnStem 返回主份额文件名主干，如 "4710FBF0-MASTER1[ABCD1234]"
func (m *MasterShare) FnStem() string {
	return fmt.Sprintf("%s-MASTER%d[%s]", m.parentID, m.Idx, m.ID())
}

func (m *MasterShare) Desc() string {
	return fmt.Sprintf("master share #%d of %s", m.Idx, m.parentID)
}

// masterBaseBytes: scramble key 为 "master_share:" || idx(2) || nonce(2)
func masterBaseBytes(parent *seed.Seed, idx, nonce int) []byte {
	key := []byte("master_share:")
	key = binary.BigEndian.AppendUint16(key, uint16(idx))
	key = binary.BigEndian.AppendUint16(key, uint16(nonce))
	return crypto_util.Scramble(parent.Data(), key)[:parent.ByteLen()]
}

// masterDerivedBytes: scramble key 为 idStr || ":" || count(2)。
// 派生结果的 Seed ID 不对用户展示，因此不做碰撞检测。
func masterDerivedBytes(base *seed.Seed, idStr string, count int) []byte {
	key := append([]byte(idStr), ':')
	key = binary.BigEndian.AppendUint16(key, uint16(count))
	return crypto_util.Scramble(base.Data(), key)[:base.ByteLen()]
}
