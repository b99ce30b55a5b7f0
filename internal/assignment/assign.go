// Package assignment derives a participant's gift recipient from their email.
//
// The result is a cosmetic placeholder for a real draw: it is deterministic, never stored,
// and two emails may well land on the same name.
package assignment

import "unicode/utf16"

// DefaultRoster is the ordered list of candidate recipients.
// The order is part of the contract: changing it changes every participant's recipient.
var DefaultRoster = []string{
	"María", "Juan", "Lucía", "Carlos", "Sofía", "Diego",
	"Elena", "Pablo", "Carmen", "Javier", "Ana", "Miguel",
	"Laura", "Daniel", "Paula", "Alejandro", "Marta", "David",
}

// Checksum sums the UTF-16 code units of s, the same numbers a browser's charCodeAt returns.
func Checksum(s string) int {
	sum := 0
	for _, unit := range utf16.Encode([]rune(s)) {
		sum += int(unit)
	}
	return sum
}

// Assign returns roster[Checksum(email) mod len(roster)].
// An empty roster has nobody to assign and yields "".
func Assign(email string, roster []string) string {
	if len(roster) == 0 {
		return ""
	}
	return roster[Checksum(email)%len(roster)]
}
