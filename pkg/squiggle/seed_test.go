package squiggle

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseSeed(t *testing.T) {
	valid := "1234592349abcdef1234567890abcdef0001567890abcdef1234567890abcdef"

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", valid, false},
		{"0x prefix", "0x" + valid, false},
		{"uppercase", strings.ToUpper(valid), false},
		{"surrounding space", "  " + valid + "\n", false},
		{"too short", valid[:62], true},
		{"too long", valid + "00", true},
		{"not hex", strings.Repeat("zz", 32), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := ParseSeed(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeed(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && seed.String() != valid {
				t.Errorf("ParseSeed(%q).String() = %q, want %q", tt.input, seed.String(), valid)
			}
		})
	}
}

func TestSeedJSON(t *testing.T) {
	seed := MustParseSeed(strings.Repeat("ab", 32))

	data, err := json.Marshal(struct {
		Seed Seed `json:"seed"`
	}{seed})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"seed":"` + strings.Repeat("ab", 32) + `"}`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var out struct {
		Seed Seed `json:"seed"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Seed != seed {
		t.Errorf("Unmarshal seed = %s, want %s", out.Seed, seed)
	}
}

func TestRandomSeed(t *testing.T) {
	a, err := RandomSeed()
	if err != nil {
		t.Fatalf("RandomSeed: %v", err)
	}
	b, err := RandomSeed()
	if err != nil {
		t.Fatalf("RandomSeed: %v", err)
	}
	if a == b {
		t.Error("two random seeds should differ")
	}
	if !(Seed{}).IsZero() {
		t.Error("zero seed should report IsZero")
	}
	if a.IsZero() {
		t.Error("random seed should not be zero")
	}
}
