package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Jonas Jonaitis", "Jonas Jonaitis"},
		{"leading and trailing", "  Jonas  ", "Jonas"},
		{"internal runs", "Jonas \t\n Jonaitis", "Jonas Jonaitis"},
		{"empty", "", ""},
		{"only whitespace", " \t ", ""},
		{"diacritics preserved", "  Rūta  Žemaitė ", "Rūta Žemaitė"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TrimAndNormalize(tc.input); got != tc.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTrimAndNormalize_Idempotent(t *testing.T) {
	input := "  Jonas \t Jonaitis  "
	once := TrimAndNormalize(input)
	twice := TrimAndNormalize(once)
	if once != twice {
		t.Errorf("not idempotent: %q vs %q", once, twice)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"national mobile", "860012345", "+37060012345"},
		{"international", "+37060012345", "+37060012345"},
		{"spaced", " +370 600 12345 ", "+37060012345"},
		{"empty", "", ""},
		{"garbage", "not-a-phone", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePhone(tc.input); got != tc.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Jonas@Example.LT "); got != "jonas@example.lt" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestNormalizeAddOnIDs(t *testing.T) {
	cases := []struct {
		name  string
		input []string
		want  []string
	}{
		{"dedupe", []string{"painting", "acala", "painting"}, []string{"painting", "acala"}},
		{"case and space", []string{" Painting ", "ACALA"}, []string{"painting", "acala"}},
		{"drops empties", []string{"", "  ", "painting"}, []string{"painting"}},
		{"nil", nil, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeAddOnIDs(tc.input); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("NormalizeAddOnIDs(%v) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
