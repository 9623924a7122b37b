package model

import "strings"

var channelKeywords = map[Platform][]string{
	PlatformMeta:   {"facebook", "meta", "instagram", "fb"},
	PlatformGoogle: {"google", "gads", "adwords", "busca paga", "paid search"},
}

// PlatformForChannel maps a free-text lead source channel to an advertising
// platform by keyword match. The second return is false when the channel
// matches no platform; such leads count only toward overall totals.
func PlatformForChannel(channel string) (Platform, bool) {
	lower := strings.ToLower(channel)
	for _, platform := range Platforms() {
		for _, kw := range channelKeywords[platform] {
			if strings.Contains(lower, kw) {
				return platform, true
			}
		}
	}
	return "", false
}
