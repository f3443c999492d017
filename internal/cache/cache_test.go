package cache

import "testing"

func TestStats_HitRate(t *testing.T) {
	tests := []struct {
		stats Stats
		want  float64
	}{
		{Stats{}, 0},
		{Stats{Hits: 1, Misses: 1}, 50},
		{Stats{Hits: 3, Misses: 1}, 75},
		{Stats{Misses: 4}, 0},
	}

	for _, tt := range tests {
		if got := tt.stats.HitRate(); got != tt.want {
			t.Errorf("%+v.HitRate() = %v, want %v", tt.stats, got, tt.want)
		}
	}
}
