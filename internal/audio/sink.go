package audio

import (
	"github.com/ingyamilmolinar/rhythmlab/core/engine"
	"github.com/ingyamilmolinar/rhythmlab/core/model"
	game_log "github.com/ingyamilmolinar/rhythmlab/internal/log"
)

// Sink plays the current sound set on every hit. Track n plays on mixer
// channel n, so a fast track cuts off its own previous sound only.
type Sink struct {
	lib      *Library
	out      Trigger
	settings *model.Settings
	logger   *game_log.Logger
}

func NewSink(lib *Library, out Trigger, settings *model.Settings, logger *game_log.Logger) *Sink {
	if logger == nil {
		logger = game_log.Nop()
	}
	if settings == nil {
		settings = model.NewSettings(model.Click)
	}
	return &Sink{lib: lib, out: out, settings: settings, logger: logger}
}

func (s *Sink) OnTick(t engine.Tick) {
	if !t.Hit || s.out == nil {
		return
	}
	inst, err := s.lib.Lookup(s.settings.Sound(), int(t.Track))
	if err != nil {
		s.logger.Debugf("[AUDIO] track %d: %v", t.Track, err)
		return
	}
	s.out.Trigger(int(t.Track), inst.NewVoice(SampleRate))
}

func (s *Sink) OnRotate(float64) {}
