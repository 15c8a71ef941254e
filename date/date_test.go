package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
	if d1 != d2 {
		t.Errorf("New(2025, 7, 31) != New(2025, 7, 31)")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-01-02", want: New(2024, time.January, 2)},
		{in: "2024-02-29", want: New(2024, time.February, 29)},
		{in: "2000-02-29", want: New(2000, time.February, 29)},
		{in: "2023-02-29", wantErr: true}, // not a leap year
		{in: "1900-02-29", wantErr: true}, // divisible by 100, not by 400
		{in: "2024-13-01", wantErr: true},
		{in: "2024-00-10", wantErr: true},
		{in: "2024-04-31", wantErr: true},
		{in: "2024-1-2", wantErr: true},
		{in: "2024/01/02", wantErr: true},
		{in: "20a4-01-02", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) = %v, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
			if got.String() != tc.in {
				t.Errorf("Parse(%q).String() = %q", tc.in, got.String())
			}
		})
	}
}

func TestIsLeap(t *testing.T) {
	for year, want := range map[int]bool{1900: false, 2000: true, 2023: false, 2024: true, 2100: false, 2400: true} {
		if got := IsLeap(year); got != want {
			t.Errorf("IsLeap(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestCompare(t *testing.T) {
	a, b := MustParse("2024-01-31"), MustParse("2024-02-01")
	if !a.Before(b) || a.After(b) || a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("inconsistent ordering between %v and %v", a, b)
	}
	if MustParse("2023-12-31").After(MustParse("2024-01-01")) {
		t.Errorf("year must dominate the ordering")
	}
}

func TestAddMonths(t *testing.T) {
	testCases := []struct {
		in   string
		n    int
		want string
	}{
		{"2024-01-15", 1, "2024-02-15"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2025-01-31", 1, "2025-02-28"},
		{"2024-03-31", 1, "2024-04-30"},
		{"2024-12-31", 1, "2025-01-31"},
		{"2024-11-30", 14, "2026-01-30"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-01-10", -13, "2022-12-10"},
	}
	for _, tc := range testCases {
		if got := MustParse(tc.in).AddMonths(tc.n); got.String() != tc.want {
			t.Errorf("%s.AddMonths(%d) = %v, want %v", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestAddYears(t *testing.T) {
	if got := MustParse("2024-02-29").AddYears(1); got != MustParse("2025-02-28") {
		t.Errorf("2024-02-29 + 1 year = %v, want 2025-02-28", got)
	}
	if got := MustParse("2024-02-29").AddYears(4); got != MustParse("2028-02-29") {
		t.Errorf("2024-02-29 + 4 year = %v, want 2028-02-29", got)
	}
}

func TestJSON(t *testing.T) {
	in := struct {
		On Date `json:"on"`
	}{MustParse("2024-05-06")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"on":"2024-05-06"}` {
		t.Errorf("json.Marshal() = %s", data)
	}
	var out struct {
		On Date `json:"on"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.On != in.On {
		t.Errorf("json round trip = %v, want %v", out.On, in.On)
	}
}
