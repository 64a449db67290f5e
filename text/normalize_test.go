package text

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"ascii", []byte("abc\n"), "abc\n"},
		{"crlf", []byte("a\r\nb\r\n"), "a\nb\n"},
		{"windows-1252", []byte{'K', 0xF4, 'k', 'u', 'a'}, "Kôkua"},
		{"nfc", []byte("Kōkua"), "Kōkua"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if err != nil {
				t.Fatalf("Normalize() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_KeepsColumns(t *testing.T) {
	got, err := Normalize([]byte("Kōkua  1.00"))
	if err != nil {
		t.Fatal(err)
	}
	if w := Width(got); w != 11 {
		t.Errorf("Width() = %d, want 11", w)
	}
}

func TestRuler(t *testing.T) {
	tens, units := Ruler(12)
	if tens != "000000000011" {
		t.Errorf("tens = %q", tens)
	}
	if units != "012345678901" {
		t.Errorf("units = %q", units)
	}

	if tens, units := Ruler(0); tens != "" || units != "" {
		t.Errorf("Ruler(0) = %q, %q", tens, units)
	}
}

func TestAnnotate(t *testing.T) {
	got := Annotate("ab")
	if got != "00\n01\nab" {
		t.Errorf("Annotate() = %q", got)
	}
}
