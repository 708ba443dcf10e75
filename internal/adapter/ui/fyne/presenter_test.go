package fyne

import (
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/govis/internal/adapter/audio/analyser"
	"github.com/tejashwikalptaru/govis/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/govis/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/logger"
	"github.com/tejashwikalptaru/govis/internal/render"
	"github.com/tejashwikalptaru/govis/internal/service"
	"github.com/tejashwikalptaru/govis/internal/testutil"
)

// fakeView records what the presenter shows.
type fakeView struct {
	mu         sync.Mutex
	nowPlaying string
	options    domain.DisplayOptions
	running    bool
	errors     []string
}

func (v *fakeView) SetNowPlaying(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nowPlaying = text
}

func (v *fakeView) SetOptions(options domain.DisplayOptions) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.options = options
}

func (v *fakeView) SetRunning(running bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.running = running
}

func (v *fakeView) ShowError(title, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors = append(v.errors, title+": "+message)
}

func (v *fakeView) Run()  {}
func (v *fakeView) Quit() {}

func (v *fakeView) snapshot() fakeView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fakeView{
		nowPlaying: v.nowPlaying,
		options:    v.options,
		running:    v.running,
		errors:     append([]string(nil), v.errors...),
	}
}

type presenterFixture struct {
	presenter *Presenter
	service   *service.VisualizationService
	sources   *mock.Factory
	view      *fakeView
}

func newPresenterFixture(t *testing.T) *presenterFixture {
	t.Helper()
	test.NewApp()

	log := logger.NewTestLogger()
	bus := eventbus.NewSyncEventBus()
	sources := mock.NewFactory()
	driver := service.NewAnimationDriver(log, testutil.NewManualScheduler(), render.NewImageSurface(64, 64), analyser.Factory())
	svc, err := service.NewVisualizationService(log, bus, sources, driver, domain.DefaultDisplayOptions())
	require.NoError(t, err)

	view := &fakeView{}
	p := NewPresenter(log, svc, bus, view)
	t.Cleanup(func() {
		p.Shutdown()
		svc.Shutdown()
	})
	return &presenterFixture{presenter: p, service: svc, sources: sources, view: view}
}

// eventually waits for fyne.Do callbacks to land.
func eventually(t *testing.T, cond func(v fakeView) bool, view *fakeView) {
	t.Helper()
	require.Eventually(t, func() bool { return cond(view.snapshot()) }, time.Second, 5*time.Millisecond)
}

func TestPresenter_InitialState(t *testing.T) {
	f := newPresenterFixture(t)
	eventually(t, func(v fakeView) bool {
		return v.nowPlaying == "No source selected" && v.options == domain.DefaultDisplayOptions() && !v.running
	}, f.view)
}

func TestPresenter_SourceLifecycle(t *testing.T) {
	f := newPresenterFixture(t)

	require.NoError(t, f.presenter.OnMicrophoneClicked())
	eventually(t, func(v fakeView) bool {
		return v.nowPlaying == "Streaming direct input" && v.running
	}, f.view)

	require.NoError(t, f.presenter.OnFileChosen("/tmp/song.mp3"))
	eventually(t, func(v fakeView) bool {
		return v.nowPlaying == "song.mp3" && v.running
	}, f.view)

	f.sources.Last().End()
	eventually(t, func(v fakeView) bool { return v.nowPlaying == "song.mp3 (ended)" }, f.view)

	f.presenter.OnStopClicked()
	eventually(t, func(v fakeView) bool {
		return v.nowPlaying == "No source selected" && !v.running
	}, f.view)

	// Stopping again is harmless.
	f.presenter.OnStopClicked()
	assert.Empty(t, f.view.snapshot().errors)
}

func TestPresenter_FailuresShowErrors(t *testing.T) {
	f := newPresenterFixture(t)

	f.sources.SetMicrophoneError(domain.NewAudioSourceError("open", "default", "permission denied", domain.ErrSourceUnavailable))
	assert.Error(t, f.presenter.OnMicrophoneClicked())
	eventually(t, func(v fakeView) bool { return len(v.errors) == 1 }, f.view)
	assert.Contains(t, f.view.snapshot().errors[0], "Cannot use direct input")

	f.sources.SetFileError(domain.NewAudioSourceError("open", "x.aac", "unsupported format", domain.ErrUnsupportedFormat))
	assert.Error(t, f.presenter.OnFileChosen("x.aac"))
	eventually(t, func(v fakeView) bool { return len(v.errors) == 2 }, f.view)
	assert.Contains(t, f.view.snapshot().errors[1], "Cannot open file")
	assert.False(t, f.view.snapshot().running)
}

func TestPresenter_OptionCommands(t *testing.T) {
	f := newPresenterFixture(t)

	require.NoError(t, f.presenter.OnStyleSelected("Filled Wave"))
	assert.Equal(t, domain.StyleFilledWave, f.service.Options().Style)

	require.NoError(t, f.presenter.OnColorChanged("#FF8800"))
	assert.Equal(t, "ff8800", f.service.Options().BaseColorHex)

	f.presenter.OnRainbowToggled(true)
	assert.True(t, f.service.Options().Rainbow)

	eventually(t, func(v fakeView) bool {
		return v.options == domain.DisplayOptions{Style: domain.StyleFilledWave, BaseColorHex: "ff8800", Rainbow: true}
	}, f.view)

	assert.ErrorIs(t, f.presenter.OnStyleSelected("Spiral"), domain.ErrInvalidStyle)
	assert.ErrorIs(t, f.presenter.OnColorChanged("purple"), domain.ErrInvalidColor)
	assert.Equal(t, domain.StyleFilledWave, f.service.Options().Style)
}

func TestPresenter_ShutdownUnsubscribes(t *testing.T) {
	f := newPresenterFixture(t)
	eventually(t, func(v fakeView) bool { return v.nowPlaying != "" }, f.view)

	f.presenter.Shutdown()
	f.presenter.Shutdown()

	require.NoError(t, f.service.UseMicrophone())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "No source selected", f.view.snapshot().nowPlaying)
}
