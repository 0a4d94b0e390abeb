package llm

import "testing"

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain object untouched",
			input: `{"intent":"balance_query","params":{}}`,
			want:  `{"intent":"balance_query","params":{}}`,
		},
		{
			name:  "json code fence",
			input: "```json\n{\"intent\":\"unknown\",\"params\":{}}\n```",
			want:  `{"intent":"unknown","params":{}}`,
		},
		{
			name:  "bare code fence",
			input: "```\n{\"a\":1}\n```",
			want:  `{"a":1}`,
		},
		{
			name:  "prose around the object",
			input: "Here is the classification: {\"intent\":\"general\",\"params\":{}} Hope that helps!",
			want:  `{"intent":"general","params":{}}`,
		},
		{
			name:  "array payload",
			input: "```json\n[{\"a\":1},{\"a\":2}]\n```",
			want:  `[{"a":1},{"a":2}]`,
		},
		{
			name:  "surrounding whitespace",
			input: "\n\n  {\"a\":1}  \n",
			want:  `{"a":1}`,
		},
		{
			name:  "no json at all passes through",
			input: "I cannot classify that.",
			want:  "I cannot classify that.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSON(tt.input); got != tt.want {
				t.Errorf("CleanJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
