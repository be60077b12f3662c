package upmixer

import (
	"math/rand"
	"testing"
)

func benchmarkDecode(b *testing.B, setup ChannelSetup, blockSize int) {
	d, err := New(setup, blockSize)
	if err != nil {
		b.Fatal(err)
	}

	rng := rand.New(rand.NewSource(1))
	block := make([]float64, 2*blockSize)
	for i := range block {
		block[i] = rng.Float64()*2 - 1
	}

	b.SetBytes(int64(2 * blockSize * 8))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := d.Decode(block); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode5Point1_2048(b *testing.B) { benchmarkDecode(b, FivePointOne, 2048) }

func BenchmarkDecode5Point1_4096(b *testing.B) { benchmarkDecode(b, FivePointOne, 4096) }

func BenchmarkDecode7Point1_4096(b *testing.B) { benchmarkDecode(b, SevenPointOne, 4096) }

func BenchmarkDecode16Point1_4096(b *testing.B) { benchmarkDecode(b, SixteenPointOne, 4096) }
