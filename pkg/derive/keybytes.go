package derive

import (
	"crypto/sha256"
	"crypto/sha512"
)

// PrivKeyBytes 是某个序号的原始私钥材料，Pos 为其在请求中的位置 (1 起始)。
type PrivKeyBytes struct {
	Idx  int
	Pos  int
	Data [32]byte
}

// KeyDeriver 沿哈希链按序输出请求序号的私钥材料。
// 链状态初始为 (已打乱的) 种子数据，第 r 轮为 SHA512(上一轮状态)；
// 第 r 轮命中序号时输出 SHA256(SHA256(状态))。
type KeyDeriver struct {
	state []byte
	round int
	idxs  IdxList
	pos   int
}

// NewKeyDeriver 要求 idxs 已排序且无重复 (由 IdxList 保证)。
func NewKeyDeriver(seedBytes []byte, idxs IdxList) *KeyDeriver {
	state := make([]byte, len(seedBytes))
	copy(state, seedBytes)
	return &KeyDeriver{state: state, idxs: idxs}
}

// Next 返回下一个请求序号的私钥材料，全部输出后返回 false。
func (d *KeyDeriver) Next() (PrivKeyBytes, bool) {
	if d.pos >= len(d.idxs) {
		return PrivKeyBytes{}, false
	}
	target := d.idxs[d.pos]
	for d.round < target {
		sum := sha512.Sum512(d.state)
		d.state = sum[:]
		d.round++
	}
	d.pos++
	first := sha256.Sum256(d.state)
	return PrivKeyBytes{Idx: target, Pos: d.pos, Data: sha256.Sum256(first[:])}, true
}

// Remaining 返回尚未输出的序号数
func (d *KeyDeriver) Remaining() int { return len(d.idxs) - d.pos }

// All 一次性派生全部序号
func All(seedBytes []byte, idxs IdxList) []PrivKeyBytes {
	d := NewKeyDeriver(seedBytes, idxs)
	out := make([]PrivKeyBytes, 0, len(idxs))
	for {
		pk, ok := d.Next()
		if !ok {
			return out
		}
		out = append(out, pk)
	}
}
