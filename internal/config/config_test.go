package config

import "testing"

func TestParseAdminIDs(t *testing.T) {
	cases := []struct {
		in   string
		want []int64
	}{
		{"", nil},
		{"123", []int64{123}},
		{"123,456, 789", []int64{123, 456, 789}},
		{"123,oops,456", []int64{123, 456}},
	}
	for _, tc := range cases {
		got := parseAdminIDs(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("parseAdminIDs(%q) = %v, want %v", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("parseAdminIDs(%q) = %v, want %v", tc.in, got, tc.want)
			}
		}
	}
}

func TestIsAdminID(t *testing.T) {
	cfg := &Config{AdminIDs: []int64{1, 2}}
	if !cfg.IsAdminID(2) {
		t.Fatal("configured admin rejected")
	}
	if cfg.IsAdminID(3) {
		t.Fatal("unknown id accepted as admin")
	}
}
