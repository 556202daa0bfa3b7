package config

import (
	"math"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/ingyamilmolinar/rhythmlab/core/engine"
	"github.com/ingyamilmolinar/rhythmlab/core/model"
)

var envVars = []string{
	"SPEED", "BEATS", "BPM", "LENGTHS", "PATTERNS", "SOUND",
	"SOUNDS_DIR", "MUTE", "LOG_LEVEL", "FOR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(EnvPrefix+k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.Speed != 3 {
		t.Errorf("Speed = %d, want 3", cfg.Speed)
	}
	if len(cfg.Beats) != 2 || cfg.Beats[0] != "4" || cfg.Beats[1] != "3" {
		t.Errorf("Beats = %v, want [4 3]", cfg.Beats)
	}
	if cfg.BPM != 180 {
		t.Errorf("BPM = %v, want 180", cfg.BPM)
	}
	if len(cfg.Lengths) != 2 || cfg.Lengths[0] != 5 || cfg.Lengths[1] != 4 {
		t.Errorf("Lengths = %v, want [5 4]", cfg.Lengths)
	}
	ps := cfg.PatternValues()
	if ps[0].String() != "{1,3,4}" || ps[1].String() != "{1}" {
		t.Errorf("Patterns = %v", cfg.Patterns)
	}
	if cfg.SoundValue() != model.Click {
		t.Errorf("Sound = %q, want Click", cfg.Sound)
	}
	if cfg.LogLevel != "INFO" || cfg.Mute || cfg.Duration != 0 || cfg.SoundsDir != "" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("RHYTHMLAB_SPEED", "5")
	t.Setenv("RHYTHMLAB_BEATS", "3, 2")
	t.Setenv("RHYTHMLAB_BPM", "200")
	t.Setenv("RHYTHMLAB_LENGTHS", "3,7")
	t.Setenv("RHYTHMLAB_PATTERNS", "1,2;3")
	t.Setenv("RHYTHMLAB_SOUND", "drums 2")
	t.Setenv("RHYTHMLAB_MUTE", "true")
	t.Setenv("RHYTHMLAB_FOR", "1500ms")

	cfg := Load()
	if cfg.Speed != 5 || cfg.Beats[0] != "3" || cfg.Beats[1] != "2" {
		t.Errorf("polyrhythm env not applied: %+v", cfg)
	}
	if cfg.BPM != 200 || cfg.Lengths[0] != 3 || cfg.Lengths[1] != 7 {
		t.Errorf("polymeter env not applied: %+v", cfg)
	}
	if cfg.Patterns[0] != "1,2" || cfg.Patterns[1] != "3" {
		t.Errorf("Patterns = %q", cfg.Patterns)
	}
	if cfg.SoundValue() != model.Drums2 || !cfg.Mute || cfg.Duration != 1500*time.Millisecond {
		t.Errorf("audio env not applied: %+v", cfg)
	}
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("RHYTHMLAB_SPEED", "fast")
	t.Setenv("RHYTHMLAB_LENGTHS", "5,x")
	t.Setenv("RHYTHMLAB_FOR", "soon")
	cfg := Load()
	if cfg.Speed != 3 || cfg.Lengths[0] != 5 || cfg.Lengths[1] != 4 || cfg.Duration != 0 {
		t.Errorf("malformed env should keep defaults: %+v", cfg)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("RHYTHMLAB_BPM", "200")
	t.Setenv("RHYTHMLAB_SPEED", "2")
	cfg := Load()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse([]string{"--bpm", "150", "--beats", "5,4", "--pattern", "1,2", "--pattern", "4", "--sound", "Drums 1"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.BPM != 150 {
		t.Errorf("flag should win over env, BPM = %v", cfg.BPM)
	}
	if cfg.Speed != 2 {
		t.Errorf("unset flag should keep env value, Speed = %d", cfg.Speed)
	}
	if cfg.Beats[0] != "5" || cfg.Beats[1] != "4" {
		t.Errorf("Beats = %v", cfg.Beats)
	}
	if len(cfg.Patterns) != 2 || cfg.Patterns[0] != "1,2" || cfg.Patterns[1] != "4" {
		t.Errorf("Patterns = %q", cfg.Patterns)
	}
	if cfg.SoundValue() != model.Drums1 {
		t.Errorf("Sound = %q", cfg.Sound)
	}
}

func TestNormalizeClamps(t *testing.T) {
	cfg := Config{
		Speed:    9,
		Beats:    []string{"abc"},
		BPM:      math.NaN(),
		Lengths:  []int{0, 12, 3},
		Patterns: []string{"1"},
		Sound:    "kazoo",
		LogLevel: "chatty",
		Duration: -time.Second,
	}
	cfg.Normalize()

	if cfg.Speed != engine.MaxSpeed {
		t.Errorf("Speed = %d", cfg.Speed)
	}
	if len(cfg.Beats) != 2 || cfg.Beats[0] != "1" || cfg.Beats[1] != "3" {
		t.Errorf("Beats = %v, want [1 3]", cfg.Beats)
	}
	if cfg.BPM != engine.DefaultBPM {
		t.Errorf("NaN BPM should reset to default, got %v", cfg.BPM)
	}
	if cfg.Lengths[0] != 1 || cfg.Lengths[1] != engine.MaxLength || cfg.Lengths[2] != 3 {
		t.Errorf("Lengths = %v", cfg.Lengths)
	}
	if len(cfg.Patterns) != 3 || cfg.Patterns[2] != "" {
		t.Errorf("Patterns should be padded per line: %q", cfg.Patterns)
	}
	// a line left out keeps its default pattern
	if pv := cfg.PatternValues(); !pv[1].Contains(1) || pv[1].Len() != 1 || pv[0].Len() != 1 {
		t.Errorf("PatternValues = %v, want [{1} {1} {}]", pv)
	}
	if cfg.Sound != "Click" || cfg.LogLevel != "DEBUG" || cfg.Duration != 0 {
		t.Errorf("unexpected normalized values %+v", cfg)
	}

	cfg.BPM = 10
	cfg.Beats = []string{"400", "3.0"}
	cfg.Normalize()
	if cfg.BPM != engine.MinBPM || cfg.Beats[0] != "40" || cfg.Beats[1] != "3" {
		t.Errorf("second pass: BPM=%v Beats=%v", cfg.BPM, cfg.Beats)
	}
}

func TestOptionsBuildEngines(t *testing.T) {
	cfg := Default()
	cfg.Speed = 5
	cfg.Lengths = []int{3, 2}
	cfg.Patterns = []string{"2", "1,2"}
	cfg.Normalize()

	r := engine.NewRhythmEngine(nil, nil, cfg.RhythmOptions(nil)...)
	if r.Speed() != 5 || r.BeatCount(1) != 4 {
		t.Fatalf("rhythm engine not configured: speed %d beats %d", r.Speed(), r.BeatCount(1))
	}
	m := engine.NewMeterEngine(nil, nil, cfg.MeterOptions(nil)...)
	if m.Length(1) != 3 || m.Pattern(2).String() != "{1,2}" {
		t.Fatalf("meter engine not configured: length %d pattern %s", m.Length(1), m.Pattern(2))
	}
}
