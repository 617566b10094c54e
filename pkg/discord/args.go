package discord

import (
	"strconv"
	"strings"

	"github.com/darkangel/imperialbot/internal/types"
)

// parseMention extracts a user ID from a <@id> or <@!id> mention, or accepts
// a bare numeric ID
func parseMention(arg string) (string, bool) {
	if strings.HasPrefix(arg, "<@") && strings.HasSuffix(arg, ">") {
		id := strings.TrimSuffix(strings.TrimPrefix(arg, "<@"), ">")
		id = strings.TrimPrefix(id, "!")
		if isSnowflake(id) {
			return id, true
		}
		return "", false
	}
	if isSnowflake(arg) {
		return arg, true
	}
	return "", false
}

// parseChannelMention extracts a channel ID from a <#id> mention or a bare ID
func parseChannelMention(arg string) (string, bool) {
	if strings.HasPrefix(arg, "<#") && strings.HasSuffix(arg, ">") {
		id := strings.TrimSuffix(strings.TrimPrefix(arg, "<#"), ">")
		if isSnowflake(id) {
			return id, true
		}
		return "", false
	}
	if isSnowflake(arg) {
		return arg, true
	}
	return "", false
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseAmount parses a positive coin amount
func parseAmount(arg string) (int64, error) {
	amount, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || amount <= 0 {
		return 0, types.NewCommandError(types.ErrInvalidArgument, "Amount must be a positive number.")
	}
	return amount, nil
}

func usageError(prefix, usage string) error {
	return types.NewCommandError(types.ErrInvalidArgument, "Usage: `"+prefix+usage+"`")
}
