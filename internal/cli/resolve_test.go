package cli

import (
	"strings"
	"testing"
)

func TestResolveID(t *testing.T) {
	ids := []string{"3f2a9c10-aaaa", "3f2b0000-bbbb", "77c1d2e3-cccc", "77"}

	tests := []struct {
		name    string
		prefix  string
		want    string
		wantErr string
	}{
		{"exact", "77", "77", ""},
		{"unique prefix", "3f2a", "3f2a9c10-aaaa", ""},
		{"full id", "77c1d2e3-cccc", "77c1d2e3-cccc", ""},
		{"ambiguous", "3f2", "", "ambiguous"},
		{"missing", "zz", "", "not found"},
		{"empty", "  ", "", "cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveID("course", tt.prefix, ids)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ResolveID(%q) error = %v, want %q", tt.prefix, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveID(%q) error: %v", tt.prefix, err)
			}
			if got != tt.want {
				t.Errorf("ResolveID(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789"); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	bar := ProgressBar(50, 10)
	if strings.Count(bar, "█") != 5 || strings.Count(bar, "░") != 5 {
		t.Errorf("ProgressBar(50, 10) = %q", bar)
	}
	if strings.Count(ProgressBar(150, 4), "█") != 4 {
		t.Error("ProgressBar should clamp above 100")
	}
}
