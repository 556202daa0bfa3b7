//go:build !test

package audio

import (
	"io"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/ebitengine/oto/v3"
)

// Output streams a PCM source to the default sound device.
type Output struct {
	ctx    *oto.Context
	player *oto.Player
}

// OpenOutput opens an oto context for 16-bit mono audio at SampleRate and
// starts playing src. oto allows one context per process.
func OpenOutput(src io.Reader) (*Output, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   10 * time.Millisecond,
	})
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("open audio device"))
	}
	<-ready
	p := ctx.NewPlayer(src)
	p.SetBufferSize(bufferSizeBytes10ms)
	p.Play()
	return &Output{ctx: ctx, player: p}, nil
}

// Close pauses playback. The device context stays open for the life of the
// process.
func (o *Output) Close() error {
	if o == nil || o.player == nil {
		return nil
	}
	o.player.Pause()
	err := o.player.Err()
	o.player = nil
	return err
}
