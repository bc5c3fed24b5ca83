package styles

import (
	"sort"
	"testing"
)

func TestGetThemeByName(t *testing.T) {
	theme := GetThemeByName("solarized-dark")
	if theme == nil {
		t.Fatal("GetThemeByName('solarized-dark') returned nil")
	}
	if theme.Name != "Solarized Dark" {
		t.Errorf("expected name 'Solarized Dark', got %q", theme.Name)
	}
}

func TestGetThemeByNameMissing(t *testing.T) {
	theme := GetThemeByName("nonexistent")
	if theme != nil {
		t.Error("expected nil for nonexistent theme")
	}
}

func TestListThemesSorted(t *testing.T) {
	themes := ListThemes()
	if len(themes) < 8 {
		t.Errorf("expected at least 8 themes, got %d", len(themes))
	}
	if !sort.StringsAreSorted(themes) {
		t.Error("ListThemes() is not sorted")
	}
}

func TestThemeCount(t *testing.T) {
	if got, want := GetThemeCount(), len(ListThemes()); got != want {
		t.Errorf("GetThemeCount() = %d, want %d", got, want)
	}
}

func TestGetThemeByIndex(t *testing.T) {
	theme := GetThemeByIndex(0)
	if theme == nil {
		t.Fatal("GetThemeByIndex(0) returned nil")
	}
	if GetThemeByIndex(-1) != nil || GetThemeByIndex(GetThemeCount()) != nil {
		t.Error("out-of-range index should return nil")
	}
}

func TestGetThemeIndexRoundTrip(t *testing.T) {
	idx := GetThemeIndex("solarized-dark")
	if idx < 0 {
		t.Fatal("GetThemeIndex('solarized-dark') = -1")
	}
	theme := GetThemeByIndex(idx)
	if theme == nil || theme.Name != "Solarized Dark" {
		t.Errorf("index round trip failed: %+v", theme)
	}
}
