package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	dom "Bookshop/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls   atomic.Int32
	release chan struct{}
}

func (p *countingProvider) Current(_ context.Context, city string) (dom.Weather, error) {
	p.calls.Add(1)
	if p.release != nil {
		<-p.release
	}
	return dom.Weather{City: city, Temperature: 10}, nil
}

func TestWeatherService_DefaultCity(t *testing.T) {
	p := &countingProvider{}
	svc := NewWeatherService(p, "London")

	city, w, err := svc.Current(context.Background(), "  ")
	require.NoError(t, err)
	require.Equal(t, "London", city)
	require.Equal(t, "London", w.City)
}

func TestWeatherService_CoalescesConcurrentLookups(t *testing.T) {
	p := &countingProvider{release: make(chan struct{})}
	svc := NewWeatherService(p, "London")

	const callers = 5
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, w, err := svc.Current(context.Background(), "Paris")
			assert.NoError(t, err)
			assert.Equal(t, "Paris", w.City)
		}()
	}

	require.Eventually(t, func() bool { return p.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(p.release)
	wg.Wait()

	require.Equal(t, int32(1), p.calls.Load())
}

func TestWeatherService_DoesNotCacheResults(t *testing.T) {
	p := &countingProvider{}
	svc := NewWeatherService(p, "London")

	for i := 0; i < 3; i++ {
		_, _, err := svc.Current(context.Background(), "Rome")
		require.NoError(t, err)
	}
	require.Equal(t, int32(3), p.calls.Load())
}
