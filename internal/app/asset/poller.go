package asset

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "pop-search/internal/app/errors"
	"pop-search/internal/app/model"
)

const (
	DefaultInterval = 2 * time.Second
	DefaultTimeout  = 60 * time.Second
)

// RemoteFile is the processing service's view of an uploaded asset.
type RemoteFile struct {
	Name     string
	URI      string
	MIMEType string
	State    model.ProcessingState
}

// FileService uploads media to the processing service and reports its state.
type FileService interface {
	Upload(ctx context.Context, path string) (*RemoteFile, error)
	Get(ctx context.Context, name string) (*RemoteFile, error)
}

// Observer is notified after every state poll.
type Observer interface {
	OnPoll(attempt int, elapsed time.Duration, state model.ProcessingState)
}

// Config bounds the polling loop.
type Config struct {
	Interval time.Duration
	Timeout  time.Duration
}

// Poller uploads a local asset once and polls the processing service until
// the asset is ACTIVE, FAILED, or the timeout budget is spent.
type Poller struct {
	files    FileService
	clock    Clock
	config   Config
	observer Observer
	logger   *zap.Logger
}

// NewPoller creates a poller. Zero config values fall back to the defaults;
// a nil clock means the system clock.
func NewPoller(files FileService, clock Clock, config Config, logger *zap.Logger) *Poller {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if clock == nil {
		clock = RealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		files:  files,
		clock:  clock,
		config: config,
		logger: logger.Named("poller"),
	}
}

// WithObserver returns a copy of the poller reporting polls to observer.
func (p *Poller) WithObserver(observer Observer) *Poller {
	cp := *p
	cp.observer = observer
	return &cp
}

// Submit uploads asset and waits for it to become usable downstream. It fails
// with ErrProcessingFailed as soon as the remote state is FAILED and with
// ErrPollingTimeout once more than Timeout has elapsed since the upload
// started without reaching a terminal state. The asset's State and UploadedAt
// are updated as the remote file progresses.
func (p *Poller) Submit(ctx context.Context, asset *model.VideoAsset) (model.ActiveAsset, error) {
	start := p.clock.Now()
	asset.State = model.StateUploading

	p.logger.Info("Uploading asset", zap.String("path", asset.Path))
	file, err := p.files.Upload(ctx, asset.Path)
	if err != nil {
		return model.ActiveAsset{}, apperrors.Collaborator("file service", "upload", err)
	}
	asset.UploadedAt = p.clock.Now()
	asset.State = file.State
	p.logger.Debug("Asset uploaded", zap.String("name", file.Name), zap.String("uri", file.URI))

	attempt := 0
	for {
		switch file.State {
		case model.StateActive:
			p.logger.Info("Asset is active",
				zap.String("name", file.Name),
				zap.Int("polls", attempt),
				zap.Duration("elapsed", p.clock.Now().Sub(start)),
			)
			return model.ActiveAsset{Name: file.Name, URI: file.URI, MIMEType: file.MIMEType}, nil
		case model.StateFailed:
			p.logger.Error("Asset processing failed", zap.String("name", file.Name))
			return model.ActiveAsset{}, apperrors.Wrapf(apperrors.ErrProcessingFailed, "file %s", file.Name)
		}

		if err := p.checkBudget(start, file.Name); err != nil {
			return model.ActiveAsset{}, err
		}
		if err := p.clock.Sleep(ctx, p.config.Interval); err != nil {
			return model.ActiveAsset{}, err
		}
		if err := p.checkBudget(start, file.Name); err != nil {
			return model.ActiveAsset{}, err
		}

		name := file.Name
		file, err = p.files.Get(ctx, name)
		if err != nil {
			return model.ActiveAsset{}, apperrors.Collaborator("file service", "get "+name, err)
		}
		attempt++
		asset.State = file.State

		elapsed := p.clock.Now().Sub(start)
		p.logger.Debug("Asset still processing",
			zap.String("name", file.Name),
			zap.Int("attempt", attempt),
			zap.String("state", string(file.State)),
		)
		if p.observer != nil {
			p.observer.OnPoll(attempt, elapsed, file.State)
		}
	}
}

func (p *Poller) checkBudget(start time.Time, name string) error {
	elapsed := p.clock.Now().Sub(start)
	if elapsed > p.config.Timeout {
		p.logger.Warn("Asset polling timed out",
			zap.String("name", name),
			zap.Duration("elapsed", elapsed),
			zap.Duration("timeout", p.config.Timeout),
		)
		return apperrors.Wrapf(apperrors.ErrPollingTimeout,
			"file %s not active after %s", name, elapsed.Truncate(time.Millisecond))
	}
	return nil
}

// MaxPolls is the largest number of state polls Submit can issue.
func (p *Poller) MaxPolls() int {
	return int(p.config.Timeout / p.config.Interval)
}
