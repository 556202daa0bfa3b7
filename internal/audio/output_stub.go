//go:build test

package audio

import (
	"io"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/ftag"
)

// Output is a stand-in used during tests so no sound device is opened.
type Output struct{}

// OpenOutput always fails in test builds; callers fall back to silence.
func OpenOutput(io.Reader) (*Output, error) {
	return nil, fault.New("no audio device in test builds", ftag.With(ftag.NotFound))
}

func (o *Output) Close() error { return nil }
