package activation

import (
	"sync"
	"testing"
)

func TestCounter_Monotonic(t *testing.T) {
	var c Counter
	if c.IsCurrent(0) {
		t.Fatal("zero token must never be current")
	}

	a := c.Next()
	b := c.Next()
	if b <= a {
		t.Fatalf("tokens not increasing: %d then %d", a, b)
	}
	if c.IsCurrent(a) {
		t.Error("older token reported as current")
	}
	if !c.IsCurrent(b) {
		t.Error("latest token not reported as current")
	}
}

func TestCounter_Concurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	seen := make(chan Token, 100)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- c.Next()
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[Token]bool{}
	for tok := range seen {
		if unique[tok] {
			t.Fatalf("token %d issued twice", tok)
		}
		unique[tok] = true
	}
	if c.Current() != 100 {
		t.Errorf("current = %d, want 100", c.Current())
	}
}
