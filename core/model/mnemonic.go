package model

import (
	"strconv"
	"strings"
)

// NoPhrase is returned when no mnemonic is known for a pair of counts.
const NoPhrase = "No phrase"

type ratio struct{ a, b string }

var phrases = map[ratio]string{
	{"3", "4"}: "Pass - the - bread - and - but-ter",
	{"4", "5"}: "I'm - look-ing - for - a - home - to - buy",
	{"2", "3"}: "Not - diff-i-cult",
	{"3", "5"}: "I - am - eat-ing - but-ter - now",
}

// Mnemonic returns a spoken phrase that helps count the a:b polyrhythm.
// Order does not matter. Inputs are compared as entered (trimmed), so "03"
// does not match "3".
func Mnemonic(a, b string) string {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if p, ok := phrases[ratio{a, b}]; ok {
		return p
	}
	if p, ok := phrases[ratio{b, a}]; ok {
		return p
	}
	return NoPhrase
}

func MnemonicFor(a, b int) string {
	return Mnemonic(strconv.Itoa(a), strconv.Itoa(b))
}
