package term

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vstack/internal/autoupdate"
	"github.com/dshills/vstack/internal/config"
	"github.com/dshills/vstack/internal/event"
	"github.com/dshills/vstack/internal/items"
	"github.com/dshills/vstack/internal/logging"
	"github.com/dshills/vstack/internal/loop"
	"github.com/dshills/vstack/internal/stack"
	"github.com/dshills/vstack/internal/template"
	"github.com/dshills/vstack/internal/tracker"
)

// AppOptions configures an App.
type AppOptions[T any] struct {
	Config   config.Config
	Items    items.Source[T]
	Template template.Template

	// Screen is initialized by Run when it has not been already. Nil
	// creates the terminal screen.
	Screen tcell.Screen

	Logger *logging.Logger
}

// App runs a virtualizing stack on a terminal screen.
type App[T any] struct {
	queue   *loop.Queue
	surface *Surface
	service *tracker.Service
	engine  *stack.Engine[T]
	sink    *Sink[T]
	log     *logging.Logger

	ranges event.Subscription
	cancel context.CancelFunc
}

// NewApp builds the application. The screen must be initialized before
// Run draws to it.
func NewApp[T any](opts AppOptions[T]) (*App[T], error) {
	screen := opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		screen = s
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	cfg := opts.Config.Normalize()
	a := &App[T]{
		queue: loop.NewQueue(),
		log:   log.WithComponent("term"),
	}
	a.surface = NewSurface(screen, cfg.ItemSpan)
	a.service = tracker.NewService(a.queue, a.surface)
	a.sink = NewSink[T](a.surface, opts.Template, a.status, a.log)

	a.engine = stack.New(stack.Options[T]{
		Config:          cfg,
		Host:            HostElement,
		Container:       ContainerElement,
		Geometry:        a.service,
		Elements:        a.surface.Lookup,
		Scroller:        a.surface,
		NewResizeSignal: a.surface.NewResizeSignal,
		Window:          a.surface,
		Queue:           a.queue,
		Sink: stack.SinkFunc[T](func(f stack.Frame[T]) {
			a.syncContent()
			a.sink.Render(f)
		}),
		Logger: log,
	})
	a.engine.SetItems(opts.Items)
	a.ranges = a.engine.OnRangeChanged(func(rc stack.RangeChange) {
		a.log.Debug("rendered range changed to %d..%d", rc.First, rc.Last)
	})

	return a, nil
}

// Engine returns the engine. Only use it from the loop thread.
func (a *App[T]) Engine() *stack.Engine[T] {
	return a.engine
}

// Surface returns the surface. Only use it from the loop thread.
func (a *App[T]) Surface() *Surface {
	return a.surface
}

// Post runs fn on the loop thread.
func (a *App[T]) Post(fn func()) {
	a.queue.Post(fn)
}

// Apply posts a configuration change onto the loop thread.
func (a *App[T]) Apply(cfg config.Config) {
	a.queue.Post(func() {
		a.surface.SetRowSpan(cfg.ItemSpan)
		effect := a.engine.Apply(cfg)
		a.log.Info("configuration applied: %s", effect)
		a.syncContent()
	})
}

// Start connects the engine. Run calls it; tests drive the queue directly.
func (a *App[T]) Start() {
	a.engine.Connect()
	a.syncContent()
}

// Run initializes the screen, pumps its events onto the loop and runs until
// ctx is done or the user quits.
func (a *App[T]) Run(ctx context.Context) error {
	screen := a.surface.Screen()
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, a.cancel = context.WithCancel(ctx)
	defer a.cancel()

	a.queue.Post(a.Start)
	go a.pump(screen)

	err := a.queue.Run(ctx)
	a.engine.Disconnect()
	a.ranges.Cancel()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pump forwards screen events until the screen is finalized.
func (a *App[T]) pump(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		a.queue.Post(func() {
			if a.HandleEvent(ev) && a.cancel != nil {
				a.cancel()
			}
		})
	}
}

// HandleEvent processes one screen event on the loop thread. Returns true
// when the user asked to quit.
func (a *App[T]) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.surface.Screen().Sync()
		a.surface.Resize()
		a.refresh()

	case *tcell.EventKey:
		page := a.surface.ViewSpan()
		row := a.surface.RowSpan()

		var moved bool
		switch e.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			moved = a.surface.ScrollBy(-row)
		case tcell.KeyDown:
			moved = a.surface.ScrollBy(row)
		case tcell.KeyPgUp:
			moved = a.surface.ScrollBy(-page)
		case tcell.KeyPgDn:
			moved = a.surface.ScrollBy(page)
		case tcell.KeyHome:
			moved = a.surface.ScrollTo(0)
		case tcell.KeyEnd:
			moved = a.surface.ScrollTo(a.engine.State().TotalSpan)
		case tcell.KeyRune:
			switch e.Rune() {
			case 'q':
				return true
			case 'k':
				moved = a.surface.ScrollBy(-row)
			case 'j':
				moved = a.surface.ScrollBy(row)
			}
		}
		if moved {
			a.refresh()
		}
	}
	return false
}

// refresh redraws at the new scroll position and, unless global listeners
// already did so, asks the engine for an update.
func (a *App[T]) refresh() {
	a.sink.Redraw()
	if a.engine.Config().AutoUpdateMode != autoupdate.Auto {
		a.engine.Update()
	}
}

// syncContent bounds scrolling by the engine's total span.
func (a *App[T]) syncContent() {
	a.surface.SetContentSpan(a.engine.State().TotalSpan)
}

func (a *App[T]) status() Status {
	total := 0
	if src := a.engine.Items(); src != nil {
		total = src.Len()
	}
	return Status{Total: total, Mode: a.engine.Config().AutoUpdateMode.String()}
}
