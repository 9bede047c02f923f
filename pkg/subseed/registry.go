package subseed

import (
	"wallet-seed/pkg/seed"
)

// Entry 记录一个已分配的派生种子: Seed ID、序号以及解决碰撞时使用的 nonce。
type Entry struct {
	ID    seed.ID
	Idx   int
	Nonce int
}

// Registry 是只追加的派生记录表。
// entries 按插入顺序保存，pos 为 Seed ID 到位置的索引。
type Registry struct {
	entries []Entry
	pos     map[seed.ID]int
}

func NewRegistry() *Registry {
	return &Registry{pos: make(map[seed.ID]int)}
}

func (r *Registry) Len() int { return len(r.entries) }

// Add 追加一条记录，重复的 Seed ID 属于调用方的逻辑错误。
func (r *Registry) Add(e Entry) {
	if _, ok := r.pos[e.ID]; ok {
		panic("subseed: duplicate seed ID " + string(e.ID))
	}
	r.pos[e.ID] = len(r.entries)
	r.entries = append(r.entries, e)
}

func (r *Registry) Get(id seed.ID) (Entry, bool) {
	i, ok := r.pos[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

func (r *Registry) Contains(id seed.ID) bool {
	_, ok := r.pos[id]
	return ok
}

// At 返回第 i 条记录 (0 起始)。
func (r *Registry) At(i int) Entry { return r.entries[i] }

// IDs 按插入顺序返回所有 Seed ID。
func (r *Registry) IDs() []seed.ID {
	out := make([]seed.ID, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.ID
	}
	return out
}
