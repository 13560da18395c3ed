package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleaner_CleanJobDescription(t *testing.T) {
	cleaner := NewCleaner()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text is only trimmed",
			input: "  Backend engineer.\n\nGo, PostgreSQL, 5 years < 10 years  ",
			want:  "Backend engineer.\n\nGo, PostgreSQL, 5 years < 10 years",
		},
		{
			name: "paragraphs and list items",
			input: `<html><head><style>p{}</style></head><body>
				<nav>Home | Jobs</nav>
				<h2>Senior Go Engineer</h2>
				<p>We build   payment
				infrastructure.</p>
				<ul><li>Go</li><li><p>Kafka</p></li></ul>
				<script>track()</script>
			</body></html>`,
			want: "Home | Jobs\nSenior Go Engineer\nWe build payment infrastructure.\n- Go\n- Kafka",
		},
		{
			name:  "text outside paragraphs is kept",
			input: "We need a senior Go engineer with Kubernetes.<p>Nice to have: Rust</p><div>Must know PostgreSQL</div>",
			want:  "We need a senior Go engineer with Kubernetes.\nNice to have: Rust\nMust know PostgreSQL",
		},
		{
			name:  "inline markup before a list",
			input: "Requirements <b>Go</b>, <b>SQL</b>\n<ul><li>5 years</li></ul>",
			want:  "Requirements Go, SQL\n- 5 years",
		},
		{
			name:  "line breaks and nested divs",
			input: `<div class="job-description"><div>Own the API<br>Mentor engineers</div><!-- tracking --><footer>Remote friendly</footer></div>`,
			want:  "Own the API\nMentor engineers\nRemote friendly",
		},
		{
			name:  "inline markup only",
			input: `Must know <strong>Go</strong> and <em>SQL</em>`,
			want:  "Must know Go and SQL",
		},
		{
			name:  "markup without text",
			input: `<div><p> </p><script>x()</script></div>`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleaner.CleanJobDescription(tt.input))
		})
	}
}
