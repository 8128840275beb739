package hmap_test

import (
	"testing"

	"github.com/sghaida/typereg/hmap"
)

func BenchmarkSet(b *testing.B) {
	m := hmap.New()
	for i := 0; i < b.N; i++ {
		hmap.Set(m, port(i))
	}
}

func BenchmarkGet_Hit(b *testing.B) {
	m := hmap.New()
	hmap.Set(m, config{Host: "localhost", Port: 8080})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = hmap.Get[config](m)
	}
}

func BenchmarkGet_Miss(b *testing.B) {
	m := hmap.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = hmap.Get[config](m)
	}
}

func BenchmarkGetMut(b *testing.B) {
	m := hmap.New()
	hmap.Set(m, config{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, _ := hmap.GetMut[config](m)
		p.Port = i
	}
}
