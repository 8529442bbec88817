package model

import "testing"

func TestBuildingDisplayName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"DANA HALL", "Dana Hall"},
		{"Science Center", "Science Center"},
		{"  ", ""},
		{"101", "101"},
		{" ADM ", "Adm"},
	}
	for _, tt := range tests {
		b := Building{Code: "X", Description: tt.in}
		if got := b.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if b.Description != tt.in {
			t.Errorf("DisplayName modified Description to %q", b.Description)
		}
	}
}
