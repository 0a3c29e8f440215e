package todo

import (
	"strings"
	"unicode/utf8"
)

// MaxTextLen is the maximum length of a todo text, in runes, after whitespace normalization.
const MaxTextLen = 255

var escaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	"№", "&#8470;",
	"%", "&#37;",
	":", "&#58;",
	"?", "&#63;",
	"*", "&#42;",
	`"`, "&quot;",
)

var unescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&#x2F;", "/",
	"&#8470;", "№",
	"&#37;", "%",
	"&#58;", ":",
	"&#63;", "?",
	"&#42;", "*",
	"&quot;", `"`,
)

// Normalize collapses runs of whitespace into a single space and trims both ends.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Escape replaces the characters that are unsafe to interpolate into markup with
// character references. The output never contains an escapable character, so
// escaping twice yields the same string.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape. Other entities are left untouched.
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// Sanitize turns raw user input into stored todo text: normalized, truncated to
// MaxTextLen runes and escaped. The length cap applies to the plain text, so
// already sanitized input (stored text sent back by a client) comes out
// unchanged. An empty result means the input must be ignored.
func Sanitize(raw string) string {
	plain := truncate(Normalize(Unescape(raw)), MaxTextLen)
	// A cut can land right after a space.
	return Escape(strings.TrimRight(plain, " "))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
