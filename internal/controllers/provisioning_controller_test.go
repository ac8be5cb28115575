package controllers

import "testing"

func TestNormalizeHandle(t *testing.T) {
	cases := []struct {
		uid  string
		want string
	}{
		{"AB-12!", "ab12"},
		{"T-72 (old)", "t72old"},
		{"plain", "plain"},
		{"  M113  ", "m113"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := NormalizeHandle(tc.uid); got != tc.want {
			t.Errorf("NormalizeHandle(%q) = %q, want %q", tc.uid, got, tc.want)
		}
	}
}
