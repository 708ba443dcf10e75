package service

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
	"github.com/tejashwikalptaru/govis/internal/render"
)

// AnimationDriver runs the per-frame loop: measure the surface, sample, pick a
// renderer, draw, present, and request the next frame. The loop has no end of
// its own; it runs until Stop.
//
// Frames never overlap. Stop waits for an in-flight frame, and a frame that was
// already handed to the scheduler before Stop cannot reschedule itself.
//
// Thread-safety: This implementation is thread-safe.
type AnimationDriver struct {
	// Dependencies (injected)
	logger    *slog.Logger
	scheduler ports.FrameScheduler
	surface   ports.Surface
	newNode   ports.AnalysisNodeFactory

	options atomic.Pointer[domain.DisplayOptions]
	frames  atomic.Uint64

	mu         sync.Mutex
	state      domain.DriverState
	source     ports.AudioSource
	sampler    *Sampler
	pending    ports.FrameHandle
	generation uint64
	buffers    render.FrameBuffers

	// rainbow cursor; nil until the first rainbow frame
	cursor     *domain.ColorSpec
	cursorBase string
}

// NewAnimationDriver creates an idle driver presenting frames on surface.
func NewAnimationDriver(
	logger *slog.Logger,
	scheduler ports.FrameScheduler,
	surface ports.Surface,
	newNode ports.AnalysisNodeFactory,
) *AnimationDriver {
	d := &AnimationDriver{
		logger:    logger,
		scheduler: scheduler,
		surface:   surface,
		newNode:   newNode,
	}
	opts := domain.DefaultDisplayOptions()
	d.options.Store(&opts)
	return d
}

// Start binds a fresh sampler to source and schedules the first frame.
// On error the driver stays idle and the caller keeps ownership of source.
func (d *AnimationDriver) Start(source ports.AudioSource, options domain.DisplayOptions) error {
	if err := options.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == domain.StateRunning {
		return domain.NewServiceError("driver", "start", "visualization already running", domain.ErrAlreadyRunning)
	}

	sampler := NewSampler(d.newNode())
	if err := sampler.Initialize(source); err != nil {
		d.logger.Debug("sampler initialization failed", slog.Any("error", err))
		return err
	}

	d.options.Store(&options)
	d.frames.Store(0)
	d.source = source
	d.sampler = sampler
	d.cursor = nil
	d.state = domain.StateRunning
	d.generation++
	d.schedule(d.generation)

	d.logger.Debug("visualization started",
		slog.String("source", source.Kind().String()),
		slog.String("style", options.Style.String()),
		slog.Int("resolution", sampler.Resolution()))
	return nil
}

// Stop cancels the pending frame and closes the source.
// Returns domain.ErrNotRunning when idle.
func (d *AnimationDriver) Stop() error {
	d.mu.Lock()
	if d.state != domain.StateRunning {
		d.mu.Unlock()
		return domain.ErrNotRunning
	}
	d.generation++
	d.scheduler.CancelFrame(d.pending)
	d.pending = 0
	source := d.source
	d.source = nil
	d.sampler = nil
	d.cursor = nil
	d.buffers.Release()
	d.state = domain.StateIdle
	d.mu.Unlock()

	d.logger.Debug("visualization stopped", slog.Uint64("frames", d.frames.Load()))

	if err := source.Close(); err != nil {
		d.logger.Warn("failed to close source", slog.Any("error", err))
		return err
	}
	return nil
}

// SetOptions replaces the display options used from the next frame on.
func (d *AnimationDriver) SetOptions(options domain.DisplayOptions) error {
	if err := options.Validate(); err != nil {
		return err
	}
	d.options.Store(&options)
	return nil
}

// Options returns the current display options.
func (d *AnimationDriver) Options() domain.DisplayOptions {
	return *d.options.Load()
}

// State returns the driver state.
func (d *AnimationDriver) State() domain.DriverState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Frames returns how many frames ran since the last Start.
func (d *AnimationDriver) Frames() uint64 {
	return d.frames.Load()
}

// schedule must be called with mu held.
func (d *AnimationDriver) schedule(gen uint64) {
	d.pending = d.scheduler.RequestFrame(func() { d.frame(gen) })
}

func (d *AnimationDriver) frame(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.generation || d.state != domain.StateRunning {
		return
	}

	opts := *d.options.Load()
	size := d.surface.PixelSize()

	var buf domain.SampleBuffer
	if opts.Style == domain.StyleOscilloscope {
		buf = d.sampler.SampleTimeDomain()
	} else {
		buf = d.sampler.SampleFrequencyDomain()
	}

	col := d.activeColor(opts)
	if opts.Style == domain.StyleOscilloscope {
		col = opts.BaseColor()
	}

	if !size.IsEmpty() {
		session := d.buffers.Next(size)
		render.ForStyle(opts.Style).Draw(session, buf, col)
		d.surface.Present(session.Canvas.Image())
	}

	d.frames.Add(1)
	d.schedule(gen)
}

// activeColor advances the rainbow cursor when enabled, otherwise returns the base color.
// The cursor restarts from the base color after rainbow was off or the base changed.
// Must be called with mu held.
func (d *AnimationDriver) activeColor(opts domain.DisplayOptions) domain.ColorSpec {
	base := opts.BaseColor()
	if !opts.Rainbow {
		d.cursor = nil
		return base
	}
	if d.cursor == nil || d.cursorBase != opts.BaseColorHex {
		d.cursor = &base
		d.cursorBase = opts.BaseColorHex
	}
	next := domain.AdvanceRainbow(*d.cursor)
	d.cursor = &next
	return next
}
