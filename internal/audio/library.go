package audio

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"

	"github.com/ingyamilmolinar/rhythmlab/core/model"
)

// Built-in instrument ids.
const (
	IDClickHigh = "click-high"
	IDClickLow  = "click-low"
	IDKick      = "kick"
	IDSnare     = "snare"
	IDHiHat     = "hihat"
	IDTom       = "tom"
	IDClap      = "clap"
)

// resampleQuality is passed to beep.Resample; 4 is a good speed/quality mix.
const resampleQuality = 4

// defaultAliases maps the resource names of the built-in sound sets to
// synthesized instruments.
var defaultAliases = map[string]string{
	"Click_1":   IDClickHigh,
	"Click_2":   IDClickLow,
	"Drums 1_1": IDKick,
	"Drums 1_2": IDSnare,
	"Drums 2_1": IDTom,
	"Drums 2_2": IDHiHat,
}

// Library resolves resource names to instruments. Registered names take
// precedence over aliases, so a loaded "Click_1.wav" replaces the built-in
// click for track 1.
type Library struct {
	mu          sync.RWMutex
	instruments map[string]Instrument
	aliases     map[string]string
}

// NewLibrary returns a library holding the synthesized instruments and the
// aliases for every built-in sound set.
func NewLibrary() *Library {
	l := &Library{
		instruments: map[string]Instrument{},
		aliases:     map[string]string{},
	}
	l.Register(IDClickHigh, ClickHigh)
	l.Register(IDClickLow, ClickLow)
	l.Register(IDKick, Kick{})
	l.Register(IDSnare, Snare{})
	l.Register(IDHiHat, HiHat{})
	l.Register(IDTom, Tom{})
	l.Register(IDClap, Clap{})
	for name, id := range defaultAliases {
		l.aliases[name] = id
	}
	return l
}

// Register adds or replaces an instrument.
func (l *Library) Register(id string, inst Instrument) {
	l.mu.Lock()
	l.instruments[id] = inst
	l.mu.Unlock()
}

// Get returns the instrument registered under id or, failing that, the one
// its alias points to.
func (l *Library) Get(id string) (Instrument, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if inst, ok := l.instruments[id]; ok {
		return inst, nil
	}
	if target, ok := l.aliases[id]; ok {
		if inst, ok := l.instruments[target]; ok {
			return inst, nil
		}
	}
	return nil, fault.New("unknown instrument "+id,
		ftag.With(ftag.NotFound),
		fmsg.WithDesc("instrument not found", "No sound named \""+id+"\" is loaded."))
}

// Lookup resolves the resource a sound set plays on a 1-based track. Sets
// carry two resources; tracks beyond the second alternate between them.
func (l *Library) Lookup(s model.Sound, track int) (Instrument, error) {
	if track < 1 {
		track = 1
	}
	return l.Get(s.Resource((track-1)%2 + 1))
}

// Names lists every resolvable id and alias, sorted.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seen := map[string]struct{}{}
	for id := range l.instruments {
		seen[id] = struct{}{}
	}
	for name, target := range l.aliases {
		if _, ok := l.instruments[target]; ok {
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LoadWAV decodes an audio file (wav, mp3 or flac) and registers it as a
// sample instrument under id.
func (l *Library) LoadWAV(id, path string) error {
	if strings.TrimSpace(id) == "" {
		return fault.New("empty instrument id", ftag.With(ftag.InvalidArgument))
	}
	buf, err := decodeFile(path)
	if err != nil {
		return fault.Wrap(err, fmsg.With("load "+path))
	}
	l.Register(id, Sample{data: buf})
	return nil
}

// LoadDir registers every supported audio file in dir under its base name
// without extension, e.g. "Drums 1_1.wav" becomes "Drums 1_1". It returns the
// ids it loaded. Files that fail to decode are skipped; the first such error
// is returned alongside the ids that did load.
func (l *Library) LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fault.Wrap(err,
			ftag.With(ftag.NotFound),
			fmsg.With("read sounds dir "+dir))
	}
	var (
		ids      []string
		firstErr error
	)
	for _, e := range entries {
		if e.IsDir() || !supported(e.Name()) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if err := l.LoadWAV(id, filepath.Join(dir, e.Name())); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		ids = append(ids, id)
	}
	return ids, firstErr
}

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav", ".mp3", ".flac":
		return true
	}
	return false
}

// decodeFile reads a whole file into mono float32 samples at SampleRate.
func decodeFile(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fault.Wrap(err, ftag.With(ftag.NotFound))
	}
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, fault.New("unsupported file type "+filepath.Ext(path), ftag.With(ftag.InvalidArgument))
	}
	if err != nil {
		_ = f.Close()
		return nil, fault.Wrap(err, ftag.With(ftag.InvalidArgument))
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != beep.SampleRate(SampleRate) {
		src = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(SampleRate), streamer)
	}
	var out []float32
	chunk := make([][2]float64, 512)
	for {
		n, ok := src.Stream(chunk)
		for _, s := range chunk[:n] {
			out = append(out, float32((s[0]+s[1])/2))
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fault.Wrap(err, ftag.With(ftag.InvalidArgument))
	}
	if len(out) == 0 {
		return nil, fault.New("no audio frames", ftag.With(ftag.InvalidArgument))
	}
	return out, nil
}
