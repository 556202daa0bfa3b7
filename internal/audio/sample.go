package audio

import (
	"errors"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/ncruces/zenity"
)

// Sample represents a preloaded PCM buffer.
type Sample struct{ data []float32 }

// NewSample wraps mono samples already at SampleRate.
func NewSample(data []float32) Sample { return Sample{data: data} }

func (s Sample) Len() int { return len(s.data) }

// NewVoice returns a voice that plays the sample once. Sample buffers are
// shared between voices and never written to.
func (s Sample) NewVoice(int) Voice {
	return &bufferVoice{buf: s.data}
}

// ErrCanceled is returned by the dialog helpers when the user backs out.
var ErrCanceled = zenity.ErrCanceled

// LoadDirDialog asks for a directory of <sound>_<track> files and loads it.
func LoadDirDialog(l *Library) ([]string, error) {
	dir, err := zenity.SelectFile(
		zenity.Title("Load sounds"),
		zenity.Directory(),
	)
	if err != nil {
		return nil, dialogErr(err)
	}
	return l.LoadDir(dir)
}

// LoadFileDialog opens a file selector, asks for a short name, and registers
// the chosen file under it.
func LoadFileDialog(l *Library) (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Open sound"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		return "", dialogErr(err)
	}
	if !supported(path) {
		return "", fault.New("not an audio file: "+path, ftag.With(ftag.InvalidArgument))
	}
	name, err := zenity.Entry("Resource name? (e.g. Click_1)", zenity.Title("Resource name"))
	if err != nil {
		return "", dialogErr(err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fault.New("resource name is required", ftag.With(ftag.InvalidArgument))
	}
	if err := l.LoadWAV(name, path); err != nil {
		return "", err
	}
	return name, nil
}

func dialogErr(err error) error {
	if errors.Is(err, zenity.ErrCanceled) {
		return err
	}
	return fault.Wrap(err, fmsg.With("dialog"))
}
