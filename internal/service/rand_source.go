package service

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandSource 维度抽样与兜底模板共用的随机源，测试中可注入固定种子
type RandSource interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// lockedRand 让同一个 *rand.Rand 可被并发请求共享
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewLockedRand(r *rand.Rand) RandSource {
	return &lockedRand{r: r}
}

// NewDefaultRand 以当前时间为种子
func NewDefaultRand() RandSource {
	seed := uint64(time.Now().UnixNano())
	return NewLockedRand(rand.New(rand.NewPCG(seed, seed>>1|1)))
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}
