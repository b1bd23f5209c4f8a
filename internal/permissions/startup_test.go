package permissions

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPrimerRunsEnsureOnce(t *testing.T) {
	p := newFakeProvider()
	p.granted[Microphone] = true
	primer := NewPrimer(NewManager(p), 0)

	primer.InitOnce()

	select {
	case <-primer.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("prime did not complete")
	}

	checks, _ := p.counts()
	require.Equal(t, 1, checks)
}

func TestPrimerInitOnceConcurrent(t *testing.T) {
	p := newFakeProvider()
	p.granted[Microphone] = true
	primer := NewPrimer(NewManager(p), 0)

	const n = 32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			primer.InitOnce()
		}()
	}
	wg.Wait()

	select {
	case <-primer.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("prime did not complete")
	}

	checks, requests := p.counts()
	require.Equal(t, 1, checks, "exactly one background prime regardless of callers")
	require.Zero(t, requests)
}

func TestPrimerLaterCallsAreNoops(t *testing.T) {
	p := newFakeProvider()
	p.granted[Microphone] = true
	primer := NewPrimer(NewManager(p), 0)

	primer.InitOnce()
	<-primer.Done()
	primer.InitOnce()
	primer.InitOnce()

	checks, _ := p.counts()
	require.Equal(t, 1, checks)
}

func TestPrimerNeverBlocksCaller(t *testing.T) {
	p := newFakeProvider()
	primer := NewPrimer(NewManager(p), time.Hour)

	start := time.Now()
	primer.InitOnce()
	require.Less(t, time.Since(start), time.Second, "InitOnce must be fire-and-forget")
}
