package model

import (
	"fmt"
	"strings"
)

// Sound selects the pair of audio resources tracks 1 and 2 play.
type Sound int

const (
	Click Sound = iota
	Drums1
	Drums2
)

// Sounds lists every selectable set in menu order.
var Sounds = []Sound{Click, Drums1, Drums2}

func (s Sound) String() string {
	switch s {
	case Click:
		return "Click"
	case Drums1:
		return "Drums 1"
	case Drums2:
		return "Drums 2"
	default:
		return "Click"
	}
}

// Resource names the audio resource for a 1-based track, e.g. "Drums 1_2".
func (s Sound) Resource(track int) string {
	return fmt.Sprintf("%s_%d", s, track)
}

// ParseSound accepts display names loosely ("drums1", "Drums 1", "DRUMS-1").
// Unknown names fall back to Click.
func ParseSound(name string) Sound {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(name))
	switch key {
	case "drums1":
		return Drums1
	case "drums2":
		return Drums2
	default:
		return Click
	}
}
