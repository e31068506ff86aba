package texpack

import (
	"image"
	"math/rand/v2"
	"testing"
)

func benchImages(n int) []*image.RGBA {
	rng := rand.New(rand.NewPCG(7, 11))
	imgs := make([]*image.RGBA, n)
	for i := range imgs {
		imgs[i] = image.NewRGBA(image.Rect(0, 0, 4+rng.IntN(60), 4+rng.IntN(60)))
	}
	return imgs
}

func BenchmarkTexturePacker_Add(b *testing.B) {
	imgs := benchImages(256)
	b.ReportAllocs()
	for b.Loop() {
		p := NewTexturePacker()
		for _, img := range imgs {
			p.AddOwn(img)
		}
	}
}

func BenchmarkSortingTexturePacker_Pack(b *testing.B) {
	imgs := benchImages(256)
	b.ReportAllocs()
	for b.Loop() {
		p := NewSortingTexturePacker()
		for _, img := range imgs {
			p.AddOwn(img)
		}
		p.Pack()
	}
}
