package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}

	h.Append(d1, "replaced")
	if got, _ := h.Get(d1); h.Len() != 2 || got != "replaced" {
		t.Errorf("Append on an existing day must replace, got %q (len %d)", got, h.Len())
	}
}

func TestHistoryLookup(t *testing.T) {
	h := new(History[float64])
	h.Append(MustParse("2024-01-03"), 3).Append(MustParse("2024-01-05"), 5).Append(MustParse("2024-01-02"), 2)

	if _, ok := h.Get(MustParse("2024-01-04")); ok {
		t.Errorf("Get(2024-01-04) found a value on a missing day")
	}
	if v, ok := h.Get(MustParse("2024-01-05")); !ok || v != 5 {
		t.Errorf("Get(2024-01-05) = %v, %v", v, ok)
	}

	on, v, ok := h.ValueAsOf(MustParse("2024-01-04"))
	if !ok || v != 3 || on != MustParse("2024-01-03") {
		t.Errorf("ValueAsOf(2024-01-04) = %v, %v, %v", on, v, ok)
	}
	if _, _, ok := h.ValueAsOf(MustParse("2024-01-01")); ok {
		t.Errorf("ValueAsOf(2024-01-01) found a value before the first day")
	}

	for day, want := range map[string]int{"2024-01-01": 0, "2024-01-02": 1, "2024-01-04": 2, "2024-01-05": 3, "2024-02-01": 3} {
		if got := h.Upto(MustParse(day)); got != want {
			t.Errorf("Upto(%s) = %d, want %d", day, got, want)
		}
	}

	if i, ok := h.Index(MustParse("2024-01-03")); !ok || i != 1 {
		t.Errorf("Index(2024-01-03) = %d, %v, want 1, true", i, ok)
	}
	if _, ok := h.Index(MustParse("2024-01-04")); ok {
		t.Errorf("Index(2024-01-04) found a missing day")
	}

	if day, v := h.Latest(); day != MustParse("2024-01-05") || v != 5 {
		t.Errorf("Latest() = %v, %v", day, v)
	}
}
