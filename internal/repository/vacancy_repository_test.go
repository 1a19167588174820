package repository

import "testing"

func TestClampHistoryLimit(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero gets the default page size", 0, 50},
		{"negative gets the default page size", -5, 50},
		{"within bounds is kept", 120, 120},
		{"above the cap is capped, not reset", 500, 200},
		{"exactly the cap is kept", 200, 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampHistoryLimit(tc.limit); got != tc.want {
				t.Fatalf("clampHistoryLimit(%d) = %d, want %d", tc.limit, got, tc.want)
			}
		})
	}
}
