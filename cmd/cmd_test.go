package cmd

import "testing"

func TestParseTimeSpent(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"300", 300, false},
		{"25m", 1500, false},
		{"1h5m3s", 3903, false},
		{"1.5s", 1, false},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := parseTimeSpent(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTimeSpent(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTimeSpent(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
