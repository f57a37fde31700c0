package stats

import (
	"encoding/binary"
	"math/rand"
	"os"
	"time"
)

// Seed reads a seed from /dev/urandom, falling back on the clock.
func Seed() int64 {
	if urandom, err := os.Open("/dev/urandom"); err == nil {
		defer urandom.Close()
		seed := make([]byte, 8)
		if _, err := urandom.Read(seed); err == nil {
			return int64(binary.BigEndian.Uint64(seed))
		}
	}
	return time.Now().UnixNano()
}

func Srange(size int) []int {
	sample := make([]int, 0, size)
	for i := 0; i < size; i++ {
		sample = append(sample, i)
	}
	return sample
}

// Sample draws size distinct positions from [0, populationSize) without
// replacement (partial Fisher-Yates). When size >= populationSize every
// position is returned. Small samples of large populations track only the
// swapped positions so a draw costs O(size).
func Sample(rng *rand.Rand, size, populationSize int) (sample []int) {
	if size <= 0 {
		return []int{}
	} else if size >= populationSize {
		return Srange(populationSize)
	} else if size*4 < populationSize {
		return sparseSample(rng, size, populationSize)
	}
	items := Srange(populationSize)
	for i := 0; i < size; i++ {
		j := i + rng.Intn(populationSize-i)
		items[i], items[j] = items[j], items[i]
	}
	return items[:size]
}

// sparseSample is the same shuffle as Sample with the permutation held in a
// map of position ==> value for the positions that moved.
func sparseSample(rng *rand.Rand, size, populationSize int) []int {
	moved := make(map[int]int, 2*size)
	at := func(i int) int {
		if v, has := moved[i]; has {
			return v
		}
		return i
	}
	sample := make([]int, 0, size)
	for i := 0; i < size; i++ {
		j := i + rng.Intn(populationSize-i)
		vi, vj := at(i), at(j)
		moved[j] = vi
		sample = append(sample, vj)
	}
	return sample
}

// SampleFrom draws min(size, len(population)) distinct elements of
// population without replacement.
func SampleFrom(rng *rand.Rand, size int, population []int) []int {
	idxs := Sample(rng, size, len(population))
	sample := make([]int, 0, len(idxs))
	for _, i := range idxs {
		sample = append(sample, population[i])
	}
	return sample
}
