package models

import "testing"

func TestEnabledAuthMethods(t *testing.T) {
	if n := len(EnabledAuthMethods(true)); n != 2 {
		t.Errorf("with google: %d methods, want 2", n)
	}

	without := EnabledAuthMethods(false)
	if len(without) != 1 || without[0].Value != AuthPassword {
		t.Errorf("without google: got %+v", without)
	}
}

func TestIsValidAuthMethod(t *testing.T) {
	tests := []struct {
		method string
		want   bool
	}{
		{AuthPassword, true},
		{AuthGoogle, true},
		{"trust", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidAuthMethod(tt.method); got != tt.want {
			t.Errorf("IsValidAuthMethod(%q) = %v, want %v", tt.method, got, tt.want)
		}
	}
}
