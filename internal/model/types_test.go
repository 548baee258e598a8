package model

import "testing"

func TestParseRole_KnownRoles(t *testing.T) {
	cases := map[string]Role{
		"user":      RoleUser,
		"moderator": RoleModerator,
		"co-owner":  RoleCoOwner,
		"owner":     RoleOwner,
	}
	for raw, want := range cases {
		if got := ParseRole(raw); got != want {
			t.Errorf("ParseRole(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseRole_UnknownFallsBackToUser(t *testing.T) {
	for _, raw := range []string{"", "admin", "OWNER", "superuser"} {
		if got := ParseRole(raw); got != RoleUser {
			t.Errorf("ParseRole(%q) = %q, want %q", raw, got, RoleUser)
		}
	}
}

func TestRole_CanModerate(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleUser, false},
		{RoleModerator, true},
		{RoleCoOwner, true},
		{RoleOwner, true},
	}
	for _, tc := range cases {
		if got := tc.role.CanModerate(); got != tc.want {
			t.Errorf("%q.CanModerate() = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestNormalizeUsername(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  nyx ", "nyx"},
		{"identity on plain ascii", "lynni", "lynni"},
		// "e" + combining acute composes to a single code point under NFC.
		{"composes decomposed forms", "ne\u0301o", "n\u00e9o"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeUsername(tc.in); got != tc.want {
				t.Errorf("NormalizeUsername(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
