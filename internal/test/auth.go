package test

import (
	"errors"
	"fmt"
	"sync"
	"time"

	pkgAuth "github.com/polkiloo/salonbook/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// TokenGeneratorStub hands out token-1, token-2, ... unless Err is set.
type TokenGeneratorStub struct {
	Err  error
	mu   sync.Mutex
	next int
}

// NewToken returns the next sequential token.
func (g *TokenGeneratorStub) NewToken() (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("token-%d", g.next), nil
}

// ManualClock is a settable time source.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock starts the clock at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.TokenGenerator = (*TokenGeneratorStub)(nil)
