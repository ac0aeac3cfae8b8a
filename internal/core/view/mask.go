package view

// MaskToken replaces hidden characters.
const MaskToken = "••••••••"

// Mask shows the first visible characters of s followed by MaskToken. Strings
// no longer than visible are masked entirely.
func Mask(s string, visible int) string {
	r := []rune(s)
	if len(r) <= visible {
		return MaskToken
	}
	if visible < 0 {
		visible = 0
	}
	return string(r[:visible]) + MaskToken
}

// Reveal returns s when shown is true and its masked form otherwise.
func Reveal(s string, visible int, shown bool) string {
	if shown {
		return s
	}
	return Mask(s, visible)
}
