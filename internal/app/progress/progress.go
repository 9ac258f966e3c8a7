package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"pop-search/internal/app/model"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

// PollBar renders remote asset polling as a progress bar. It implements
// asset.Observer. A disabled bar does nothing.
type PollBar struct {
	container *mpb.Progress
	bar       *mpb.Bar
	mu        sync.Mutex
	state     model.ProcessingState
}

// NewPollBar creates a bar sized for maxPolls polls.
func NewPollBar(config Config, maxPolls int, description string) *PollBar {
	if !config.Enabled {
		return &PollBar{}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	pb := &PollBar{container: container, state: model.StateProcessing}
	pb.bar = container.AddBar(int64(maxPolls),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.Any(func(decor.Statistics) string { return string(pb.currentState()) }, decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d polls)", decor.WCSyncWidth),
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncSpace), " ✓ "),
		),
	)
	return pb
}

func (pb *PollBar) currentState() model.ProcessingState {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.state
}

// OnPoll advances the bar to attempt.
func (pb *PollBar) OnPoll(attempt int, _ time.Duration, state model.ProcessingState) {
	if pb.bar == nil {
		return
	}
	pb.mu.Lock()
	pb.state = state
	pb.mu.Unlock()
	pb.bar.SetCurrent(int64(attempt))
}

// Finish completes the bar at its current position and waits for rendering.
func (pb *PollBar) Finish() {
	if pb.bar == nil {
		return
	}
	pb.bar.SetTotal(pb.bar.Current(), true)
	pb.container.Wait()
}
