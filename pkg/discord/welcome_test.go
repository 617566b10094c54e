package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatWelcome(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "all placeholders",
			template: "Welcome {user} to {server}! You are member #{memberCount}.",
			want:     "Welcome <@1> to Testland! You are member #42.",
		},
		{
			name:     "repeated placeholder",
			template: "{user} {user}",
			want:     "<@1> <@1>",
		},
		{
			name:     "no placeholders",
			template: "Hello there",
			want:     "Hello there",
		},
		{
			name:     "unknown placeholder left alone",
			template: "Hi {username}",
			want:     "Hi {username}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatWelcome(tt.template, "<@1>", "Testland", 42)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMention(t *testing.T) {
	tests := []struct {
		arg    string
		wantID string
		ok     bool
	}{
		{"<@123456789>", "123456789", true},
		{"<@!123456789>", "123456789", true},
		{"123456789", "123456789", true},
		{"<@abc>", "", false},
		{"<@>", "", false},
		{"notanid", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		id, ok := parseMention(tt.arg)
		assert.Equal(t, tt.ok, ok, "arg %q", tt.arg)
		assert.Equal(t, tt.wantID, id, "arg %q", tt.arg)
	}
}

func TestParseChannelMention(t *testing.T) {
	tests := []struct {
		arg    string
		wantID string
		ok     bool
	}{
		{"<#987654321>", "987654321", true},
		{"987654321", "987654321", true},
		{"<#nope>", "", false},
		{"general", "", false},
	}

	for _, tt := range tests {
		id, ok := parseChannelMention(tt.arg)
		assert.Equal(t, tt.ok, ok, "arg %q", tt.arg)
		assert.Equal(t, tt.wantID, id, "arg %q", tt.arg)
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("250")
	assert.NoError(t, err)
	assert.Equal(t, int64(250), amount)

	for _, bad := range []string{"0", "-5", "ten", "1.5", ""} {
		_, err := parseAmount(bad)
		assert.Error(t, err, "arg %q", bad)
	}
}

func TestCountEmojis(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"no emojis here", 0},
		{"hi 😀", 1},
		{"😀😀😀", 3},
		{"custom <:blob:123456> and animated <a:party:654321>", 2},
		{"mixed 🎉 <:blob:123456>", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, countEmojis(tt.content), "content %q", tt.content)
	}
}
