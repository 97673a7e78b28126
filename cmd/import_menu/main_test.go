package main

import "testing"

func TestParseMenuLine(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		want  menuItem
		found bool
	}{
		{
			name:  "dot leader",
			line:  "Negroni ........ 18.00",
			want:  menuItem{Name: "Negroni", Price: "18.00"},
			found: true,
		},
		{
			name:  "currency prefix",
			line:  "Truffle fries  $12.5",
			want:  menuItem{Name: "Truffle fries", Price: "12.50"},
			found: true,
		},
		{
			name:  "whole dollars",
			line:  "House pour - 14",
			want:  menuItem{Name: "House pour", Price: "14.00"},
			found: true,
		},
		{
			name:  "heading without price",
			line:  "SIGNATURE COCKTAILS",
			found: false,
		},
		{
			name:  "price only",
			line:  "18.00",
			found: false,
		},
		{
			name:  "blank",
			line:  "   ",
			found: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseMenuLine(tc.line)
			if ok != tc.found {
				t.Fatalf("parseMenuLine(%q) found = %v, want %v", tc.line, ok, tc.found)
			}
			if ok && got != tc.want {
				t.Fatalf("parseMenuLine(%q) = %+v, want %+v", tc.line, got, tc.want)
			}
		})
	}
}
