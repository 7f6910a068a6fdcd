package fiscus

import "testing"

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fenced json with tag",
			in:   "Here you go:\n```json\n{\"a\": 1}\n```\nanything else",
			want: `{"a": 1}`,
		},
		{
			name: "fenced without tag",
			in:   "```\ndate,amount\n2024-01-02,10.50\n```",
			want: "date,amount\n2024-01-02,10.50",
		},
		{
			name: "no fence returns trimmed input",
			in:   "  {\"a\": 1}  \n",
			want: `{"a": 1}`,
		},
		{
			name: "unclosed fence takes the rest",
			in:   "```csv\na,b\n1,2",
			want: "a,b\n1,2",
		},
		{
			name: "first of several fences wins",
			in:   "```\nfirst\n```\n```\nsecond\n```",
			want: "first",
		},
		{
			name: "fence with no newline returns whole input",
			in:   "```",
			want: "```",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCode(tt.in); got != tt.want {
				t.Errorf("ExtractCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
