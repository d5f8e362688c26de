package core

import "strings"

// Normalize canonicalizes a stored correct-answer string for comparison:
// the substring before the first '.', then the substring before the first
// '(' of that, then surrounding whitespace trimmed. This strips trailing
// sentence fragments and parenthetical hints so free-form user input can
// match the core of the answer.
func Normalize(answer string) string {
	if i := strings.IndexByte(answer, '.'); i >= 0 {
		answer = answer[:i]
	}
	if i := strings.IndexByte(answer, '('); i >= 0 {
		answer = answer[:i]
	}
	return strings.TrimSpace(answer)
}

// Matches reports whether a user's free-form text counts as a correct
// answer for the stored one: case-insensitive containment of the user text
// in Normalize(stored). The user need not reproduce the answer verbatim.
// Known weakness carried over from the source behavior: a short or common
// answer ("а") matches almost any input containing that substring.
func Matches(userText, storedAnswer string) bool {
	user := strings.ToLower(strings.TrimSpace(userText))
	if user == "" {
		return false
	}
	return strings.Contains(strings.ToLower(Normalize(storedAnswer)), user)
}
