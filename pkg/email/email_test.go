package email

import "testing"

func TestDeriveNameFromEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		wantFirst string
		wantLast  string
	}{
		{
			name:      "dotted local part",
			email:     "john.doe@rescueops.org",
			wantFirst: "John",
			wantLast:  "Doe",
		},
		{
			name:      "underscore separator",
			email:     "maria_santos@rescueops.org",
			wantFirst: "Maria",
			wantLast:  "Santos",
		},
		{
			name:      "bare local part falls back for last name",
			email:     "dispatch@rescueops.org",
			wantFirst: "Dispatch",
			wantLast:  "User",
		},
		{
			name:      "plus tag treated as separator",
			email:     "ana+volunteer@rescueops.org",
			wantFirst: "Ana",
			wantLast:  "Volunteer",
		},
		{
			name:      "middle pieces are skipped",
			email:     "j.random.hacker@rescueops.org",
			wantFirst: "J",
			wantLast:  "Hacker",
		},
		{
			name:      "no address at all",
			email:     "",
			wantFirst: "User",
			wantLast:  "User",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := DeriveNameFromEmail(tt.email)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("DeriveNameFromEmail(%q) = (%q, %q), want (%q, %q)",
					tt.email, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}
