package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsEveryTask(t *testing.T) {
	ctx := context.Background()
	p := NewPool(3, 0)
	out := p.Run(ctx)

	var ran atomic.Int32
	go func() {
		for i := 0; i < 10; i++ {
			key := fmt.Sprintf("k%d", i)
			p.Submit(key, func(context.Context) error {
				ran.Add(1)
				if key == "k3" {
					return errors.New("boom")
				}
				return nil
			})
		}
		p.Close()
	}()

	failed := map[string]bool{}
	n := 0
	for r := range out {
		n++
		if r.Err != nil {
			failed[r.Key] = true
		}
	}
	assert.Equal(t, 10, n)
	assert.Equal(t, int32(10), ran.Load())
	assert.Equal(t, map[string]bool{"k3": true}, failed)
}

func TestPoolStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPool(1, 1)
	out := p.Run(ctx)

	started := make(chan struct{})
	p.Submit("slow", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	<-started
	cancel()

	select {
	case _, ok := <-out:
		for ok {
			_, ok = <-out
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not stop")
	}
}

func TestPoolRateLimit(t *testing.T) {
	ctx := context.Background()
	p := NewPool(4, 4)
	p.SetRateLimit(50)
	out := p.Run(ctx)

	start := time.Now()
	for i := 0; i < 4; i++ {
		p.Submit("", func(context.Context) error { return nil })
	}
	p.Close()
	for range out {
	}
	require.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
