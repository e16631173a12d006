package ecs

import "iter"

// Handle 是池内槽位的句柄
// 低 32 位为槽位索引，高 32 位为代数（generation）。
// 槽位被释放时代数递增，旧句柄随之失效。零值句柄永远无效。
type Handle uint64

func newHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

// Index 返回槽位索引
func (h Handle) Index() uint32 { return uint32(h) }

// Generation 返回句柄代数
func (h Handle) Generation() uint32 { return uint32(h >> 32) }

// IsZero 判断是否为零值句柄
func (h Handle) IsZero() bool { return h == 0 }

// Pool 固定容量的对象池（arena）
//
// 所有槽位在创建时一次性分配，Acquire/Free 只移动空闲链表，
// 运行期间不产生新的分配。池独占实体内存，外部只持有 Handle。
type Pool[T any] struct {
	items       []T
	generations []uint32
	used        []bool
	freeList    []uint32
	live        int
}

// NewPool 创建容量为 capacity 的对象池
func NewPool[T any](capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool[T]{
		items:       make([]T, capacity),
		generations: make([]uint32, capacity),
		used:        make([]bool, capacity),
		freeList:    make([]uint32, 0, capacity),
	}
	// 逆序压栈，使首次分配从索引 0 开始（调用方不得依赖该顺序）
	for i := capacity - 1; i >= 0; i-- {
		p.generations[i] = 1 // 代数从 1 开始，0 保留给零值句柄
		p.freeList = append(p.freeList, uint32(i))
	}
	return p
}

// Acquire 取出一个空闲槽位并写入初始状态
// 池已满时返回 (0, false)，这不是错误，由调用方决定是否丢弃
func (p *Pool[T]) Acquire(init T) (Handle, bool) {
	if len(p.freeList) == 0 {
		return 0, false
	}
	idx := p.freeList[len(p.freeList)-1]
	p.freeList = p.freeList[:len(p.freeList)-1]

	p.items[idx] = init
	p.used[idx] = true
	p.live++
	return newHandle(idx, p.generations[idx]), true
}

// Free 释放句柄对应的槽位
//
// 对已释放或过期的句柄调用是空操作（返回 false），
// 即使该槽位已被新实体复用也不会受影响。
func (p *Pool[T]) Free(h Handle) bool {
	if !p.Valid(h) {
		return false
	}
	idx := h.Index()
	var zero T
	p.items[idx] = zero
	p.used[idx] = false
	p.generations[idx]++
	if p.generations[idx] == 0 {
		p.generations[idx] = 1
	}
	p.freeList = append(p.freeList, idx)
	p.live--
	return true
}

// Valid 判断句柄是否仍指向存活的槽位
func (p *Pool[T]) Valid(h Handle) bool {
	idx := h.Index()
	if int(idx) >= len(p.items) {
		return false
	}
	return p.used[idx] && p.generations[idx] == h.Generation()
}

// Get 返回句柄对应实体的指针
// 指针只在当前 tick 内有效，不得跨 tick 保存
func (p *Pool[T]) Get(h Handle) (*T, bool) {
	if !p.Valid(h) {
		return nil, false
	}
	return &p.items[h.Index()], true
}

// Len 返回已占用的槽位数
func (p *Pool[T]) Len() int { return p.live }

// Cap 返回池容量
func (p *Pool[T]) Cap() int { return len(p.items) }

// All 返回占用槽位的惰性序列
// 每次调用都重新计算，可重复遍历。遍历期间不要 Acquire/Free，需要修改时先 Snapshot。
func (p *Pool[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range p.items {
			if !p.used[i] {
				continue
			}
			if !yield(newHandle(uint32(i), p.generations[i]), &p.items[i]) {
				return
			}
		}
	}
}

// Snapshot 把当前占用槽位的句柄追加到 dst[:0] 并返回
// 复用调用方的缓冲区，避免每帧分配
func (p *Pool[T]) Snapshot(dst []Handle) []Handle {
	dst = dst[:0]
	for h := range p.All() {
		dst = append(dst, h)
	}
	return dst
}

// Clear 释放所有占用槽位，释放前对每个实体调用 fn（fn 可为 nil）
func (p *Pool[T]) Clear(fn func(Handle, *T)) {
	for i := range p.items {
		if !p.used[i] {
			continue
		}
		h := newHandle(uint32(i), p.generations[i])
		if fn != nil {
			fn(h, &p.items[i])
		}
		p.Free(h)
	}
}
