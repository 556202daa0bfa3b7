package model

import "sync"

// Settings is the shared, explicitly owned user settings object. Pages and
// sinks hold a pointer to it rather than reading a global.
type Settings struct {
	mu        sync.RWMutex
	sound     Sound
	listeners []func(Sound)
}

func NewSettings(s Sound) *Settings {
	return &Settings{sound: s}
}

func (s *Settings) Sound() Sound {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sound
}

// SetSound updates the selection and notifies subscribers when it changes.
func (s *Settings) SetSound(v Sound) {
	s.mu.Lock()
	if s.sound == v {
		s.mu.Unlock()
		return
	}
	s.sound = v
	ls := append([]func(Sound){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range ls {
		fn(v)
	}
}

// Subscribe registers fn to be called after every change.
func (s *Settings) Subscribe(fn func(Sound)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}
