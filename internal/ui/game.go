package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/rhythmlab/core/beat"
	"github.com/ingyamilmolinar/rhythmlab/core/engine"
	"github.com/ingyamilmolinar/rhythmlab/core/model"
	"github.com/ingyamilmolinar/rhythmlab/internal/audio"
	"github.com/ingyamilmolinar/rhythmlab/internal/config"
	game_log "github.com/ingyamilmolinar/rhythmlab/internal/log"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

// The native dialogs are overridden in tests.
var (
	loadDirDialog  = audio.LoadDirDialog
	loadFileDialog = audio.LoadFileDialog
)

type PageKind int

const (
	PageMenu PageKind = iota
	PagePolyrhythm
	PagePolymeter
)

func (k PageKind) String() string {
	switch k {
	case PagePolyrhythm:
		return "Polyrhythms"
	case PagePolymeter:
		return "Polymeters"
	default:
		return "Menu"
	}
}

// page is one screen of the app. Close must cancel everything the page
// scheduled.
type page interface {
	Update() error
	Draw(dst *ebiten.Image)
	Layout(w, h int)
	Close()
}

type dialogResult struct {
	ids []string
	err error
}

// Game hosts the menu and the two exercise pages. Every engine runs on the
// Game's clock, which Update polls once per frame, so engine callbacks and
// input handling share one goroutine.
type Game struct {
	clock    *beat.Clock
	settings *model.Settings
	lib      *audio.Library
	audio    engine.Sink
	cfg      config.Config
	logger   *game_log.Logger

	kind PageKind
	page page

	dialogs    chan dialogResult
	dialogOpen bool
	status     string

	frame      int64
	winW, winH int
}

type Option func(*Game)

// WithClock replaces the wall clock, e.g. with a manual clock in tests.
func WithClock(c *beat.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithAudio sets the sink that plays hits; without it the app is silent.
func WithAudio(lib *audio.Library, sink engine.Sink) Option {
	return func(g *Game) {
		g.lib = lib
		g.audio = sink
	}
}

// WithConfig seeds the pages' initial settings.
func WithConfig(cfg config.Config) Option {
	return func(g *Game) { g.cfg = cfg }
}

func New(settings *model.Settings, logger *game_log.Logger, opts ...Option) *Game {
	if logger == nil {
		logger = game_log.Nop()
	}
	if settings == nil {
		settings = model.NewSettings(model.Click)
	}
	g := &Game{
		settings: settings,
		logger:   logger,
		cfg:      config.Default(),
		dialogs:  make(chan dialogResult, 1),
		winW:     DefaultWidth,
		winH:     DefaultHeight,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.clock == nil {
		g.clock = beat.NewClock()
	}
	if g.lib == nil {
		g.lib = audio.NewLibrary()
	}
	g.cfg.Normalize()
	g.Show(PageMenu)
	return g
}

func (g *Game) Page() PageKind { return g.kind }

func (g *Game) Settings() *model.Settings { return g.settings }

// Status is the last message shown on the menu, e.g. a load result.
func (g *Game) Status() string { return g.status }

// Show switches pages. The previous page is closed first so none of its
// timers outlive it.
func (g *Game) Show(k PageKind) {
	if g.page != nil {
		g.page.Close()
	}
	g.logger.Infof("[UI] show %s (pending timers: %d)", k, g.clock.Pending())
	g.kind = k
	switch k {
	case PagePolyrhythm:
		g.page = newRhythmPage(g)
	case PagePolymeter:
		g.page = newMeterPage(g)
	default:
		g.page = newMenuPage(g)
	}
	g.page.Layout(g.winW, g.winH)
}

// sink combines a page's view with the audio output.
func (g *Game) sink(v engine.Sink) engine.Sink {
	if g.audio == nil {
		return v
	}
	return engine.Fanout{v, g.audio}
}

func (g *Game) Update() error {
	g.frame++
	if err := g.page.Update(); err != nil {
		return err
	}
	g.clock.Poll()
	g.drainDialogs()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawGradient(screen, colBGTop, colBGBottom)
	g.page.Draw(screen)
}

func (g *Game) Layout(w, h int) (int, int) {
	if w != g.winW || h != g.winH {
		g.winW, g.winH = w, h
		g.page.Layout(w, h)
	}
	return w, h
}

// Close shuts down the current page.
func (g *Game) Close() {
	if g.page != nil {
		g.page.Close()
	}
}

// loadSounds loads a whole directory of <sound>_<track> files.
func (g *Game) loadSounds() {
	g.openDialog("Choose a folder of sound files...", func() ([]string, error) {
		return loadDirDialog(g.lib)
	})
}

// loadSound loads one file under a name the user types.
func (g *Game) loadSound() {
	g.openDialog("Choose a sound file...", func() ([]string, error) {
		id, err := loadFileDialog(g.lib)
		if err != nil {
			return nil, err
		}
		return []string{id}, nil
	})
}

// openDialog runs a blocking native dialog off the game loop; the result is
// picked up by a later Update. One dialog at a time.
func (g *Game) openDialog(prompt string, run func() ([]string, error)) {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	g.status = prompt
	go func() {
		ids, err := run()
		g.dialogs <- dialogResult{ids: ids, err: err}
	}()
}

func (g *Game) drainDialogs() {
	select {
	case res := <-g.dialogs:
		g.dialogOpen = false
		switch {
		case errors.Is(res.err, audio.ErrCanceled):
			g.status = ""
		case res.err != nil && len(res.ids) == 0:
			g.logger.Errorf("[UI] load sounds: %v", res.err)
			g.status = "Could not load sounds: " + res.err.Error()
		default:
			if res.err != nil {
				g.logger.Warnf("[UI] load sounds: %v", res.err)
			}
			g.logger.Infof("[UI] loaded sounds %v", res.ids)
			if len(res.ids) == 1 {
				g.status = "Loaded " + res.ids[0]
			} else {
				g.status = fmt.Sprintf("%d sounds loaded", len(res.ids))
			}
		}
	default:
	}
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowTitle("rhythmlab")
	ebiten.SetWindowSize(g.winW, g.winH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer g.Close()
	return ebiten.RunGame(g)
}

func drawGradient(dst *ebiten.Image, top, bottom color.RGBA) {
	b := dst.Bounds()
	const bands = 32
	for i := 0; i < bands; i++ {
		t := float64(i) / (bands - 1)
		c := mix(top, bottom, t)
		y0 := b.Min.Y + b.Dy()*i/bands
		y1 := b.Min.Y + b.Dy()*(i+1)/bands
		drawRect(dst, image.Rect(b.Min.X, y0, b.Max.X, y1), c, true)
	}
}
