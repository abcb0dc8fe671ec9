package transition

import "testing"

func TestCorrectWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "extra indentation",
			in:   "\n        func test() {\n          return 1\n        }\n  ",
			want: "func test() {\n  return 1\n}",
		},
		{
			name: "no extra indentation",
			in:   "func test() {\n  return 1\n}",
			want: "func test() {\n  return 1\n}",
		},
		{
			name: "empty lines left alone",
			in:   "\n    a()\n\n    b()\n",
			want: "a()\n\nb()",
		},
		{
			name: "minimum indentation",
			in:   "\n    func test() {\n  return 1\n    }\n    ",
			want: "  func test() {\nreturn 1\n  }",
		},
		{
			name: "tabs",
			in:   "\n\t\tx\n\t\t\ty\n",
			want: "x\n\ty",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CorrectWhitespace(tt.in); got != tt.want {
				t.Errorf("CorrectWhitespace() = %q, want %q", got, tt.want)
			}
		})
	}
}
