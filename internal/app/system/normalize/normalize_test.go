package normalize

import (
	"reflect"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Yann Le Gall", "Yann Le Gall"},
		{"  Yann   Le Gall  ", "Yann Le Gall"},
		{"", ""},
		{"   ", ""},
		{"ÉLODIE", "ÉLODIE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUsername(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ylegall", "ylegall"},
		{"  YLeGall ", "ylegall"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Username(tt.input); got != tt.want {
				t.Errorf("Username(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	if got := Email("  Coach@Plougastel-FC.fr "); got != "coach@plougastel-fc.fr" {
		t.Errorf("Email() = %q", got)
	}
}

func TestRoleAndStatus(t *testing.T) {
	if got := Role(" Staff "); got != "staff" {
		t.Errorf("Role() = %q, want staff", got)
	}
	if got := Status("INACTIVE"); got != "inactive" {
		t.Errorf("Status() = %q, want inactive", got)
	}
}

func TestQueryParam(t *testing.T) {
	if got := QueryParam("  Match 3 "); got != "Match 3" {
		t.Errorf("QueryParam() = %q, want %q", got, "Match 3")
	}
}

func TestUserList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"u1,u2", []string{"u1", "u2"}},
		{" u1 , , u2 ,", []string{"u1", "u2"}},
		{"", nil},
		{" , ,", nil},
		{"staff", []string{"staff"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := UserList(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UserList(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}
