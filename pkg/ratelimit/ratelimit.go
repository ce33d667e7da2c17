package ratelimit

import (
	"sync"
	"time"
)

// Store абстракция хранилища счетчиков rate limit.
// Для single-instance развертывания используется LocalStore,
// для multi-instance подставляется реализация поверх общего хранилища.
type Store interface {
	// Allow сообщает, разрешен ли запрос для данного ключа
	Allow(key string) bool
}

// LocalStore token bucket в памяти процесса.
// Подходит только для развертывания в один экземпляр.
type LocalStore struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // пополнение токенов в секунду
	capacity float64
	now      func() time.Time
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// NewLocalStore создает локальный token bucket.
// requestsPerMinute задает и скорость пополнения, и емкость корзины.
func NewLocalStore(requestsPerMinute int) *LocalStore {
	capacity := float64(requestsPerMinute)
	return &LocalStore{
		buckets:  make(map[string]*bucket),
		rate:     capacity / 60.0,
		capacity: capacity,
		now:      time.Now,
	}
}

// Allow списывает один токен для ключа, если он доступен
func (s *LocalStore) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: s.capacity, lastFill: now}
		s.buckets[key] = b
	}

	elapsed := now.Sub(b.lastFill).Seconds()
	b.tokens += elapsed * s.rate
	if b.tokens > s.capacity {
		b.tokens = s.capacity
	}
	b.lastFill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
