package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/ingyamilmolinar/rhythmlab/core/beat"
	"github.com/ingyamilmolinar/rhythmlab/core/engine"
	"github.com/ingyamilmolinar/rhythmlab/core/model"
	game_log "github.com/ingyamilmolinar/rhythmlab/internal/log"
)

// EnvPrefix is prepended to every environment override, e.g. RHYTHMLAB_BPM.
const EnvPrefix = "RHYTHMLAB_"

// Config holds every runtime option. Precedence is defaults, then
// environment, then command line flags.
type Config struct {
	// Polyrhythm
	Speed int      // 1..5, higher is faster
	Beats []string // beat count text per track

	// Polymeter
	BPM      float64
	Lengths  []int
	Patterns []string // comma separated indices per line, e.g. "1,3,4"

	// Audio
	Sound     string
	SoundsDir string // directory of <sound>_<track> files loaded at startup
	Mute      bool

	LogLevel string
	Duration time.Duration // headless run time, 0 = until interrupted
}

func Default() Config {
	return Config{
		Speed:    engine.DefaultSpeed,
		Beats:    append([]string(nil), engine.DefaultBeats...),
		BPM:      engine.DefaultBPM,
		Lengths:  append([]int(nil), engine.DefaultLengths...),
		Patterns: []string{"1,3,4", "1"},
		Sound:    model.Click.String(),
		LogLevel: game_log.LevelInfo.String(),
	}
}

// Load returns the defaults with RHYTHMLAB_* environment overrides applied.
func Load() Config {
	c := Default()
	c.Speed = envInt("SPEED", c.Speed)
	c.Beats = envList("BEATS", ",", c.Beats)
	c.BPM = envFloat("BPM", c.BPM)
	c.Lengths = envInts("LENGTHS", c.Lengths)
	c.Patterns = envList("PATTERNS", ";", c.Patterns)
	c.Sound = envStr("SOUND", c.Sound)
	c.SoundsDir = envStr("SOUNDS_DIR", c.SoundsDir)
	c.Mute = envBool("MUTE", c.Mute)
	c.LogLevel = envStr("LOG_LEVEL", c.LogLevel)
	c.Duration = envDuration("FOR", c.Duration)
	return c
}

// BindFlags registers flags whose defaults are the current values of c, so
// calling it after Load keeps environment overrides unless a flag is set.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.Speed, "speed", c.Speed, "polyrhythm speed, 1 (slow) to 5 (fast)")
	fs.StringSliceVar(&c.Beats, "beats", c.Beats, "beats per polyrhythm track, e.g. 4,3")
	fs.Float64Var(&c.BPM, "bpm", c.BPM, "polymeter tempo, 120 to 240")
	fs.IntSliceVar(&c.Lengths, "lengths", c.Lengths, "polymeter line lengths, 1 to 8 each")
	fs.StringArrayVar(&c.Patterns, "pattern", c.Patterns, "active indices of a polymeter line, repeat per line, e.g. --pattern 1,3,4 --pattern 1")
	fs.StringVar(&c.Sound, "sound", c.Sound, "sound set: Click, Drums 1, Drums 2")
	fs.StringVar(&c.SoundsDir, "sounds-dir", c.SoundsDir, "directory of <sound>_<track> audio files")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "do not open the audio device")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "DEBUG, INFO, ERROR or NONE")
	fs.DurationVar(&c.Duration, "for", c.Duration, "stop headless playback after this long (0 runs until interrupted)")
}

// Normalize applies the engines' clamp and default policy so every value is
// in range. Bad beat text becomes "1", large counts become "40".
func (c *Config) Normalize() {
	if c.Speed < engine.MinSpeed {
		c.Speed = engine.MinSpeed
	}
	if c.Speed > engine.MaxSpeed {
		c.Speed = engine.MaxSpeed
	}

	for len(c.Beats) < len(engine.DefaultBeats) {
		c.Beats = append(c.Beats, engine.DefaultBeats[len(c.Beats)])
	}
	for i, b := range c.Beats {
		c.Beats[i] = strconv.Itoa(beat.ParseBeatCount(b))
	}

	switch {
	case math.IsNaN(c.BPM):
		c.BPM = engine.DefaultBPM
	case c.BPM < engine.MinBPM:
		c.BPM = engine.MinBPM
	case c.BPM > engine.MaxBPM:
		c.BPM = engine.MaxBPM
	}

	for len(c.Lengths) < len(engine.DefaultLengths) {
		c.Lengths = append(c.Lengths, engine.DefaultLengths[len(c.Lengths)])
	}
	for i, n := range c.Lengths {
		if n < 1 {
			n = 1
		}
		if n > engine.MaxLength {
			n = engine.MaxLength
		}
		c.Lengths[i] = n
	}
	for i := len(c.Patterns); i < len(c.Lengths); i++ {
		p := ""
		if i < len(engine.DefaultPatterns) {
			p = engine.DefaultPatterns[i].String()
		}
		c.Patterns = append(c.Patterns, p)
	}
	c.Patterns = c.Patterns[:len(c.Lengths)]

	c.Sound = model.ParseSound(c.Sound).String()
	c.LogLevel = game_log.LevelFromString(c.LogLevel).String()
	if c.Duration < 0 {
		c.Duration = 0
	}
}

func (c Config) SoundValue() model.Sound { return model.ParseSound(c.Sound) }

func (c Config) Level() game_log.Level { return game_log.LevelFromString(c.LogLevel) }

func (c Config) PatternValues() []beat.Pattern {
	out := make([]beat.Pattern, len(c.Patterns))
	for i, p := range c.Patterns {
		out[i] = beat.ParsePattern(p)
	}
	return out
}

func (c Config) RhythmOptions(l *game_log.Logger) []engine.RhythmOption {
	return []engine.RhythmOption{
		engine.WithSpeed(c.Speed),
		engine.WithBeats(c.Beats...),
		engine.WithRhythmLogger(l),
	}
}

func (c Config) MeterOptions(l *game_log.Logger) []engine.MeterOption {
	return []engine.MeterOption{
		engine.WithBPM(c.BPM),
		engine.WithLengths(c.Lengths...),
		engine.WithPatterns(c.PatternValues()...),
		engine.WithMeterLogger(l),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key, sep string, fallback []string) []string {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func envInts(key string, fallback []int) []int {
	parts := envList(key, ",", nil)
	if parts == nil {
		return fallback
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return fallback
		}
		out = append(out, n)
	}
	return out
}
