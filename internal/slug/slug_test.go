package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Science Fiction", "science-fiction"},
		{"Crime & Punishment", "crime-punishment"},
		{"Sci-Fi/Fantasy", "sci-fi-fantasy"},
		{"Les Misérables", "les-miserables"},
		{"  The   Hobbit  ", "the-hobbit"},
		{"UPPERCASE", "uppercase"},
		{"1984", "1984"},
		{"--leading--", "leading"},
		{"🐉 Dragons!", "dragons"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := Make(tt.input); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWithSuffix(t *testing.T) {
	if got := WithSuffix("new-book", 0); got != "new-book" {
		t.Errorf("counter 0 should return base, got %q", got)
	}
	if got := WithSuffix("new-book", 1); got != "new-book-2" {
		t.Errorf("first collision should append -2, got %q", got)
	}
	if got := WithSuffix("new-book", 5); got != "new-book-6" {
		t.Errorf("fifth collision should append -6, got %q", got)
	}
}
