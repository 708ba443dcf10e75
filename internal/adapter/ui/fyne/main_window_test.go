package fyne

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/govis/internal/adapter/audio/analyser"
	"github.com/tejashwikalptaru/govis/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/govis/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/govis/internal/adapter/ui/fyne/widgets/visualizer"
	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/logger"
	"github.com/tejashwikalptaru/govis/internal/service"
	"github.com/tejashwikalptaru/govis/internal/testutil"
)

func newTestWindow(t *testing.T) (*MainWindow, *service.VisualizationService, *testutil.ManualScheduler) {
	t.Helper()
	app := test.NewApp()
	log := logger.NewTestLogger()

	surface := visualizer.NewSurface()
	sched := testutil.NewManualScheduler()
	bus := eventbus.NewSyncEventBus()
	driver := service.NewAnimationDriver(log, sched, surface, analyser.Factory())
	svc, err := service.NewVisualizationService(log, bus, mock.NewFactory(), driver, domain.DefaultDisplayOptions())
	require.NoError(t, err)

	w := NewMainWindow(app, "GoVis", surface, log)
	p := NewPresenter(log, svc, bus, w)
	w.SetPresenter(p)

	t.Cleanup(func() {
		p.Shutdown()
		svc.Shutdown()
		w.Quit()
	})
	return w, svc, sched
}

func TestMainWindow_InitialControls(t *testing.T) {
	w, _, _ := newTestWindow(t)

	assert.Equal(t, []string{"Bars", "Wave", "Filled Wave", "Oscilloscope"}, w.styleSelect.Options)
	assert.Equal(t, "Bars", w.styleSelect.Selected)
	assert.Equal(t, "8000ff", w.colorEntry.Text)
	assert.False(t, w.rainbowCheck.Checked)
	assert.True(t, w.stopButton.Disabled())
	assert.Equal(t, "No source selected", w.nowPlaying.Text)
}

func TestMainWindow_ControlsUpdateService(t *testing.T) {
	w, svc, _ := newTestWindow(t)

	w.styleSelect.SetSelected("Oscilloscope")
	assert.Equal(t, domain.StyleOscilloscope, svc.Options().Style)

	w.colorEntry.SetText("00ff00")
	w.colorEntry.OnSubmitted(w.colorEntry.Text)
	assert.Equal(t, "00ff00", svc.Options().BaseColorHex)

	test.Tap(w.rainbowCheck)
	assert.True(t, svc.Options().Rainbow)
}

func TestMainWindow_SetOptionsDoesNotEcho(t *testing.T) {
	w, svc, _ := newTestWindow(t)

	w.SetOptions(domain.DisplayOptions{Style: domain.StyleWave, BaseColorHex: "123456", Rainbow: true})
	assert.Equal(t, "Wave", w.styleSelect.Selected)
	assert.Equal(t, "123456", w.colorEntry.Text)
	assert.True(t, w.rainbowCheck.Checked)

	// The service is untouched: the view only mirrors.
	assert.Equal(t, domain.DefaultDisplayOptions(), svc.Options())
}

func TestMainWindow_MicrophoneAndStop(t *testing.T) {
	w, svc, sched := newTestWindow(t)

	test.Tap(w.micButton)
	require.True(t, svc.IsRunning())
	assert.Eventually(t, func() bool { return !w.stopButton.Disabled() }, testWait, testTick)

	sched.StepN(2)

	test.Tap(w.stopButton)
	assert.False(t, svc.IsRunning())
	assert.Eventually(t, func() bool { return w.stopButton.Disabled() }, testWait, testTick)
}

func TestMainWindow_Menu(t *testing.T) {
	w, _, _ := newTestWindow(t)

	menu := w.GetWindow().MainMenu()
	require.NotNil(t, menu)
	require.Len(t, menu.Items, 2)
	assert.Equal(t, "File", menu.Items[0].Label)
	assert.Equal(t, "Help", menu.Items[1].Label)
	assert.Equal(t, "About", menu.Items[1].Items[0].Label)
}

const (
	testWait = time.Second
	testTick = 5 * time.Millisecond
)
