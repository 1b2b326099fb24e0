package test

import (
	"math/rand"
	"sync"
	"time"
)

const (
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomString returns a string of length n drawn from alphabet.
func RandomString(alphabet string, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[randomIntn(len(alphabet))]
	}
	return string(buf)
}

// RandomEmail returns a syntactically valid, likely unique email address.
func RandomEmail() string {
	return RandomString(lowerLetters, 6+randomIntn(6)) + "@" + RandomString(lowerLetters, 5) + ".example"
}

// RandomPassword returns a password satisfying the strength rules.
func RandomPassword() string {
	return RandomString(upperLetters, 2) + RandomString(lowerLetters, 6+randomIntn(8)) + RandomString(digits, 2)
}

// RandomPhone returns a ten digit phone number.
func RandomPhone() string {
	return "555" + RandomString(digits, 7)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
