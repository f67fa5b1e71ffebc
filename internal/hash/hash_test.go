package hash

import "testing"

func TestTruncatedSHA256(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "collection name", input: "Theme Buddy"},
		{name: "token path", input: "color/primary/500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatedSHA256(tt.input)
			if len(got) != IDLength {
				t.Errorf("TruncatedSHA256(%q) length = %d, want %d", tt.input, len(got), IDLength)
			}
			if again := TruncatedSHA256(tt.input); again != got {
				t.Errorf("TruncatedSHA256(%q) not stable: %q then %q", tt.input, got, again)
			}
		})
	}
}

func TestID(t *testing.T) {
	a := ID("collection", "Theme Buddy")
	if a != TruncatedSHA256("collection:Theme Buddy") {
		t.Errorf("ID did not join parts with ':'")
	}
	if ID("collection", "Other") == a {
		t.Errorf("different parts produced the same ID")
	}
}
