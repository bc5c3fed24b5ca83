package components

import "testing"

func TestSparkline(t *testing.T) {
	data := []float64{0, 25, 50, 75, 100, 50, 25, 0}
	result := Sparkline(data, 8)
	if len([]rune(result)) != 8 {
		t.Errorf("expected 8 chars, got %d", len([]rune(result)))
	}
}

func TestSparklineEmpty(t *testing.T) {
	result := Sparkline(nil, 8)
	if result != "        " {
		t.Errorf("expected 8 spaces for empty data, got %q", result)
	}
}

func TestSparklineSingleValue(t *testing.T) {
	result := Sparkline([]float64{50}, 4)
	if len([]rune(result)) != 4 {
		t.Errorf("expected 4 chars, got %d", len([]rune(result)))
	}
}

func TestFormatLatency(t *testing.T) {
	tests := []struct {
		ms       float64
		expected string
	}{
		{0.4, "0.4ms"},
		{9.95, "9.9ms"},
		{12.5, "12ms"}, // %.0f rounds half to even
		{12.6, "13ms"},
		{120, "120ms"},
		{1500, "1.50s"},
	}
	for _, tt := range tests {
		got := FormatLatency(tt.ms)
		if got != tt.expected {
			t.Errorf("FormatLatency(%f) = %q, want %q", tt.ms, got, tt.expected)
		}
	}
}
