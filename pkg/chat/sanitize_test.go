package chat

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello", want: "hello"},
		{name: "whitespace", in: "  hello \n", want: "hello"},
		{name: "quoted", in: `"hello"`, want: "hello"},
		{name: "nested quotes", in: `" "hello" "`, want: "hello"},
		{name: "inner quotes kept", in: `say "hello" now`, want: `say "hello" now`},
		{name: "empty", in: "", want: ""},
		{name: "lone quote", in: `"`, want: `"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
