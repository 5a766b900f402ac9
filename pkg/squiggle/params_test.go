package squiggle

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMapToRange(t *testing.T) {
	tests := []struct {
		b        byte
		min, max int
		want     int
	}{
		{0, 4, 15, 4},
		{255, 4, 15, 15},
		{128, 4, 15, 9},
		{1, 10, 80, 10},
		{52, 10, 80, 24},
		{127, 20, 100, 59},
		{255, 100, 600, 600},
		{239, 100, 600, 568},
	}

	for _, tt := range tests {
		if got := MapToRange(tt.b, tt.min, tt.max); got != tt.want {
			t.Errorf("MapToRange(%d, %d, %d) = %d, want %d", tt.b, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestDeriveParamsZeroSeed(t *testing.T) {
	got := DeriveParams(Seed{})
	want := Params{
		Oscillations: 4,
		StrokeWidth:  10,
		GradientID:   0,
		XOffsets:     []int{20, 20, 20, 20},
		YOffsets:     []int{-100, 100, -100, 100},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DeriveParams(zero) mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveParamsMaxSeed(t *testing.T) {
	var seed Seed
	for i := range seed {
		seed[i] = 0xFF
	}
	p := DeriveParams(seed)

	if p.Oscillations != 15 {
		t.Errorf("Oscillations = %d, want 15", p.Oscillations)
	}
	if p.StrokeWidth != 80 {
		t.Errorf("StrokeWidth = %d, want 80", p.StrokeWidth)
	}
	if p.GradientID != 0 {
		t.Errorf("GradientID = %d, want 0 (255 mod 3)", p.GradientID)
	}
	for i, x := range p.XOffsets {
		if x != 100 {
			t.Errorf("XOffsets[%d] = %d, want 100", i, x)
		}
	}
	for i, y := range p.YOffsets {
		want := 600
		if i%2 == 0 {
			want = -600
		}
		if y != want {
			t.Errorf("YOffsets[%d] = %d, want %d", i, y, want)
		}
	}
}

func TestDeriveParamsReferenceSeed(t *testing.T) {
	seed := MustParseSeed("1234592349abcdef1234567890abcdef0001567890abcdef1234567890abcdef")
	got := DeriveParams(seed)
	want := Params{
		Oscillations: 4,
		StrokeWidth:  24,
		GradientID:   GradientOcean,
		XOffsets:     []int{30, 42, 73, 84},
		YOffsets:     []int{-568, 100, -101, 268},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DeriveParams mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveParamsSharedBytes(t *testing.T) {
	// 15 oscillations: periods read bytes 3..17, amplitudes read 15..29.
	var seed Seed
	seed[0] = 0xFF
	seed[15] = 0xFF // x[12] and y[0]
	seed[16] = 0x00 // x[13] and y[1]
	seed[17] = 0xFF // x[14] and y[2]

	p := DeriveParams(seed)
	if p.Oscillations != 15 {
		t.Fatalf("Oscillations = %d, want 15", p.Oscillations)
	}

	checks := []struct {
		name      string
		got, want int
	}{
		{"x[12]", p.XOffsets[12], MaxPeriod},
		{"y[0]", p.YOffsets[0], -MaxAmplitude},
		{"x[13]", p.XOffsets[13], MinPeriod},
		{"y[1]", p.YOffsets[1], MinAmplitude},
		{"x[14]", p.XOffsets[14], MaxPeriod},
		{"y[2]", p.YOffsets[2], -MaxAmplitude},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
}

func TestDeriveParamsInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42^0xdeadbeef))

	for range 2000 {
		var seed Seed
		for i := range seed {
			seed[i] = byte(rng.UintN(256))
		}
		p := DeriveParams(seed)

		if p.Oscillations < MinOscillations || p.Oscillations > MaxOscillations {
			t.Fatalf("seed %s: Oscillations = %d out of range", seed, p.Oscillations)
		}
		if p.StrokeWidth < MinStrokeWidth || p.StrokeWidth > MaxStrokeWidth {
			t.Fatalf("seed %s: StrokeWidth = %d out of range", seed, p.StrokeWidth)
		}
		if p.GradientID < 0 || p.GradientID >= GradientCount {
			t.Fatalf("seed %s: GradientID = %d out of range", seed, p.GradientID)
		}
		if len(p.XOffsets) != p.Oscillations || len(p.YOffsets) != p.Oscillations {
			t.Fatalf("seed %s: offsets len = %d/%d, want %d", seed, len(p.XOffsets), len(p.YOffsets), p.Oscillations)
		}
		if p.YOffsets[0] >= 0 {
			t.Fatalf("seed %s: YOffsets[0] = %d, want negative", seed, p.YOffsets[0])
		}
		for i := range p.Oscillations {
			if x := p.XOffsets[i]; x < MinPeriod || x > MaxPeriod {
				t.Fatalf("seed %s: XOffsets[%d] = %d out of range", seed, i, x)
			}
			y := p.YOffsets[i]
			if (i%2 == 0) != (y < 0) {
				t.Fatalf("seed %s: YOffsets[%d] = %d has wrong sign", seed, i, y)
			}
			if y < 0 {
				y = -y
			}
			if y < MinAmplitude || y > MaxAmplitude {
				t.Fatalf("seed %s: |YOffsets[%d]| = %d out of range", seed, i, y)
			}
		}
	}
}
