package tui

import "github.com/andy/facturier/internal/domain"

// truncateStr truncates a string to the specified number of runes with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// fieldTitle names a field unambiguously, prefixing the party it belongs to
func fieldTitle(lang domain.Language, f domain.Field) string {
	text := lang.Text()
	switch {
	case f.IsSender():
		return text.From + " " + lang.Caption(f)
	case f.IsReceiver():
		return text.BilledTo + " " + lang.Caption(f)
	default:
		return lang.Caption(f)
	}
}
