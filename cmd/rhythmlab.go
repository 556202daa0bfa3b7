package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/spf13/cobra"

	"github.com/ingyamilmolinar/rhythmlab/core/beat"
	"github.com/ingyamilmolinar/rhythmlab/core/engine"
	"github.com/ingyamilmolinar/rhythmlab/core/model"
	"github.com/ingyamilmolinar/rhythmlab/internal/audio"
	"github.com/ingyamilmolinar/rhythmlab/internal/config"
	game_log "github.com/ingyamilmolinar/rhythmlab/internal/log"
	"github.com/ingyamilmolinar/rhythmlab/internal/ui"
)

var Version = "dev"

// app holds what every subcommand shares once flags are parsed.
type app struct {
	cfg      config.Config
	logger   *game_log.Logger
	lib      *audio.Library
	settings *model.Settings
	loaded   []string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rhythmlab:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Load()}
	root := &cobra.Command{
		Use:   "rhythmlab",
		Short: "Learn to hear and play polyrhythms and polymeters",
		Long: `rhythmlab plays polyrhythms (several beat counts sharing one cycle) and
polymeters (patterns of different lengths sharing one beat).

Without a subcommand it opens the interactive window.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		RunE: a.runUI,
	}
	a.cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "ui",
			Short: "Open the interactive window",
			Args:  cobra.NoArgs,
			RunE:  a.runUI,
		},
		&cobra.Command{
			Use:   "poly",
			Short: "Play a polyrhythm in the terminal",
			Long:  "Play a polyrhythm, printing every beat. Use --beats to pick the counts, e.g. --beats 4,3.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runHeadless(cmd, func(s beat.Scheduler, sink engine.Sink) player {
					return engine.NewRhythmEngine(s, sink, a.cfg.RhythmOptions(a.logger)...)
				})
			},
		},
		&cobra.Command{
			Use:   "meter",
			Short: "Play a polymeter in the terminal",
			Long:  "Play a polymeter, printing every hit. Use --lengths and --pattern to shape the lines.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runHeadless(cmd, func(s beat.Scheduler, sink engine.Sink) player {
					return engine.NewMeterEngine(s, sink, a.cfg.MeterOptions(a.logger)...)
				})
			},
		},
		&cobra.Command{
			Use:   "mnemonic A B",
			Short: "Print the counting phrase for an A:B polyrhythm",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), model.Mnemonic(args[0], args[1]))
				return nil
			},
		},
		a.soundsCmd(),
	)
	return root
}

func (a *app) setup(stderr io.Writer) error {
	a.cfg.Normalize()
	a.logger = game_log.New(stderr, a.cfg.Level())
	a.lib = audio.NewLibrary()
	a.settings = model.NewSettings(a.cfg.SoundValue())
	if a.cfg.SoundsDir == "" {
		return nil
	}
	ids, err := a.lib.LoadDir(a.cfg.SoundsDir)
	if err != nil {
		if len(ids) == 0 {
			return fault.Wrap(err, fmsg.With("load sounds"))
		}
		a.logger.Warnf("[CLI] some sounds failed to load: %v", err)
	}
	a.loaded = ids
	a.logger.Infof("[CLI] loaded %d sounds from %s", len(ids), a.cfg.SoundsDir)
	return nil
}

// openAudio returns a sink that plays hits on the default device, or nil
// when muted. A device that cannot be opened leaves the app silent.
func (a *app) openAudio() (engine.Sink, func()) {
	if a.cfg.Mute {
		return nil, func() {}
	}
	mixer := audio.NewMixer()
	out, err := audio.OpenOutput(mixer)
	if err != nil {
		a.logger.Warnf("[CLI] audio disabled: %v", err)
		return nil, func() {}
	}
	return audio.NewSink(a.lib, mixer, a.settings, a.logger), func() { _ = out.Close() }
}

func (a *app) runUI(*cobra.Command, []string) error {
	opts := []ui.Option{ui.WithConfig(a.cfg)}
	sink, closeAudio := a.openAudio()
	defer closeAudio()
	if sink != nil {
		opts = append(opts, ui.WithAudio(a.lib, sink))
	}
	g := ui.New(a.settings, a.logger, opts...)
	if err := ui.Run(g); err != nil {
		return fault.Wrap(err, fmsg.With("run window"))
	}
	return nil
}

// player is what the headless commands drive.
type player interface {
	Start()
	Close()
}

func (a *app) runHeadless(cmd *cobra.Command, build func(beat.Scheduler, engine.Sink) player) error {
	a.logger = a.logger.With("cmd", cmd.Name())
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if a.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Duration)
		defer cancel()
	}

	events := engine.NewChanSink(64)
	sinks := engine.Fanout{events}
	audioSink, closeAudio := a.openAudio()
	defer closeAudio()
	if audioSink != nil {
		sinks = append(sinks, audioSink)
	}

	loop := beat.NewLoop(context.Background(), beat.NewClock(), 0)
	defer loop.Close()

	var p player
	loop.Do(func() {
		p = build(loop.Scheduler(), sinks)
		p.Start()
	})

	printed := make(chan struct{})
	go func() {
		defer close(printed)
		printTicks(cmd.OutOrStdout(), events.C)
	}()

	<-ctx.Done()
	loop.Do(p.Close)
	close(events.C)
	<-printed
	return nil
}

// printTicks writes one line per hit until ch is closed.
func printTicks(w io.Writer, ch <-chan engine.Event) {
	for ev := range ch {
		if ev.Kind != engine.EventTick || !ev.Tick.Hit {
			continue
		}
		indent := strings.Repeat("      ", int(ev.Tick.Track)-1)
		fmt.Fprintf(w, "%s%d:%d\n", indent, ev.Tick.Track, ev.Tick.Index)
	}
}

func (a *app) soundsCmd() *cobra.Command {
	var play string
	cmd := &cobra.Command{
		Use:   "sounds",
		Short: "List the sound sets and loaded sounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if play != "" {
				return a.playOnce(play)
			}
			w := cmd.OutOrStdout()
			for _, s := range model.Sounds {
				mark := " "
				if s == a.settings.Sound() {
					mark = "*"
				}
				fmt.Fprintf(w, "%s %s:", mark, s)
				for track := 1; track <= 2; track++ {
					res := s.Resource(track)
					state := "ok"
					if _, err := a.lib.Get(res); err != nil {
						state = "missing"
					}
					fmt.Fprintf(w, " %s (%s)", res, state)
				}
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, "available:", strings.Join(a.lib.Names(), ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&play, "play", "", "play one sound by name and exit")
	return cmd
}

// playOnce plays an instrument through a fresh mixer until it finishes.
func (a *app) playOnce(id string) error {
	inst, err := a.lib.Get(id)
	if err != nil {
		return err
	}
	mixer := audio.NewMixer()
	out, err := audio.OpenOutput(mixer)
	if err != nil {
		return err
	}
	defer out.Close()
	mixer.Trigger(1, inst.NewVoice(audio.SampleRate))
	for mixer.Active(1) {
		time.Sleep(10 * time.Millisecond)
	}
	// let the device drain its buffer
	time.Sleep(100 * time.Millisecond)
	return nil
}
