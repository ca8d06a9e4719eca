package profile

import "testing"

func TestDefaultRoster(t *testing.T) {
	table := Default()
	cases := []struct {
		name       string
		id         int
		multiplier float64
	}{
		{"まりぴ", 1, 0.8},
		{"のんたん", 2, 1.2},
		{"ななほまる", 3, 0.9},
	}
	for _, tc := range cases {
		p, ok := table.Lookup(tc.name)
		if !ok {
			t.Fatalf("missing profile %q", tc.name)
		}
		if p.ID != tc.id {
			t.Errorf("%s: ID = %d, want %d", tc.name, p.ID, tc.id)
		}
		if p.ScoreMultiplier != tc.multiplier {
			t.Errorf("%s: multiplier = %v, want %v", tc.name, p.ScoreMultiplier, tc.multiplier)
		}
		if len(p.ExampleUtterances) == 0 {
			t.Errorf("%s: expected example utterances", tc.name)
		}
	}
}

func TestLookupUnknownName(t *testing.T) {
	if _, ok := Default().Lookup("だれか"); ok {
		t.Fatal("unknown name must not resolve")
	}
}
