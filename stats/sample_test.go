package stats

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"math/rand"
)

func TestSampleBounds(x *testing.T) {
	t := assert.New(x)
	rng := rand.New(rand.NewSource(7))
	for _, c := range []struct{ size, pop int }{
		{0, 10}, {1, 1}, {3, 10}, {10, 10}, {25, 10}, {999, 1000}, {5, 0},
	} {
		s := Sample(rng, c.size, c.pop)
		want := c.size
		if c.pop < want {
			want = c.pop
		}
		t.Equal(want, len(s), "size %d pop %d", c.size, c.pop)
		seen := make(map[int]bool)
		for _, i := range s {
			t.True(i >= 0 && i < c.pop, "%d out of range", i)
			t.False(seen[i], "%d sampled twice", i)
			seen[i] = true
		}
	}
}

func TestSampleReproducible(x *testing.T) {
	t := assert.New(x)
	a := Sample(rand.New(rand.NewSource(42)), 20, 1000)
	b := Sample(rand.New(rand.NewSource(42)), 20, 1000)
	t.Equal(a, b)
}

func TestSparseSampleMatchesShuffle(x *testing.T) {
	t := assert.New(x)
	for _, seed := range []int64{1, 2, 3, 99} {
		rng := rand.New(rand.NewSource(seed))
		items := Srange(1000)
		for i := 0; i < 50; i++ {
			j := i + rng.Intn(1000-i)
			items[i], items[j] = items[j], items[i]
		}
		t.Equal(items[:50], Sample(rand.New(rand.NewSource(seed)), 50, 1000))
	}
}

func TestSampleCostFollowsSize(x *testing.T) {
	t := assert.New(x)
	rng := rand.New(rand.NewSource(5))
	var s []int
	allocs := testing.AllocsPerRun(20, func() {
		s = Sample(rng, 10, 1000000)
	})
	t.Equal(10, len(s))
	t.True(allocs <= 10, "%v allocations to sample 10 of 1e6", allocs)
}

func TestSampleFrom(x *testing.T) {
	t := assert.New(x)
	rng := rand.New(rand.NewSource(3))
	pop := []int{4, 8, 15, 16, 23, 42}
	s := SampleFrom(rng, 4, pop)
	t.Equal(4, len(s))
	seen := make(map[int]bool)
	for _, v := range s {
		t.Contains(pop, v)
		t.False(seen[v])
		seen[v] = true
	}
	t.ElementsMatch(pop, SampleFrom(rng, 100, pop))
}

func TestSrange(x *testing.T) {
	t := assert.New(x)
	t.Equal([]int{0, 1, 2, 3}, Srange(4))
	t.Equal(0, len(Srange(0)))
}

func TestZScore(x *testing.T) {
	t := assert.New(x)
	z, ok := ZScore(.95)
	t.True(ok)
	t.Equal(1.96, z)
	z, ok = ZScore(.99)
	t.True(ok)
	t.InDelta(2.576, z, 1e-9)
	_, ok = ZScore(.42)
	t.False(ok)
}

func TestMarginBounds(x *testing.T) {
	t := assert.New(x)
	t.Equal(0.0, Margin(0, 100, 1.96))
	t.Equal(0.0, Margin(1, 100, 1.96))
	t.Equal(0.0, Margin(.5, 0, 1.96))
	peak := Margin(.5, 100, 1.96)
	t.InDelta(1.96*.05, peak, 1e-12)
	for p := 0.0; p <= 1.0; p += .01 {
		m := Margin(p, 100, 1.96)
		t.True(m >= 0, "margin %v < 0 at p %v", m, p)
		t.True(m <= peak+1e-12, "margin %v > peak %v at p %v", m, peak, p)
	}
	t.True(Margin(.3, 1000, 1.96) < Margin(.3, 10, 1.96))
	t.InDelta(.5+peak, UpperBound(.5, 100, 1.96), 1e-12)
}
