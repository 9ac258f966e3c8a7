package pipeline

import (
	"context"
	"errors"
	"os"
	"time"

	"go.uber.org/zap"

	apperrors "pop-search/internal/app/errors"
	"pop-search/internal/app/model"
)

const DefaultTimeout = 5 * time.Minute

// VideoDownloader fetches a video into a local file.
type VideoDownloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// AssetSubmitter uploads a local asset and waits until it is usable.
type AssetSubmitter interface {
	Submit(ctx context.Context, asset *model.VideoAsset) (model.ActiveAsset, error)
}

// MetadataExtractor describes an active asset.
type MetadataExtractor interface {
	Extract(ctx context.Context, asset model.ActiveAsset) (*model.VideoMetadata, error)
}

// Recorder receives one observation per finished analysis.
type Recorder interface {
	RecordAnalysis(outcome Outcome, elapsed time.Duration)
}

// Analyzer runs download, upload-and-poll and extraction for one URL.
type Analyzer struct {
	downloader VideoDownloader
	submitter  AssetSubmitter
	extractor  MetadataExtractor
	timeout    time.Duration
	recorder   Recorder
	logger     *zap.Logger
}

// NewAnalyzer creates an analyzer whose whole run is bounded by timeout.
func NewAnalyzer(d VideoDownloader, s AssetSubmitter, e MetadataExtractor, timeout time.Duration, logger *zap.Logger) *Analyzer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		downloader: d,
		submitter:  s,
		extractor:  e,
		timeout:    timeout,
		logger:     logger.Named("analyzer"),
	}
}

// WithRecorder returns a copy reporting outcomes to r.
func (a *Analyzer) WithRecorder(r Recorder) *Analyzer {
	cp := *a
	cp.recorder = r
	return &cp
}

// WithSubmitter returns a copy using s, e.g. a poller with a progress observer.
func (a *Analyzer) WithSubmitter(s AssetSubmitter) *Analyzer {
	cp := *a
	cp.submitter = s
	return &cp
}

// Analyze produces metadata for the video at url. The downloaded temp file
// is removed before returning, whatever the outcome.
func (a *Analyzer) Analyze(ctx context.Context, url string) (res Result) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	defer func() {
		elapsed := time.Since(start)
		fields := []zap.Field{
			zap.String("url", url),
			zap.String("outcome", string(res.Outcome)),
			zap.Duration("elapsed", elapsed),
		}
		if res.Err != nil {
			fields = append(fields, zap.Error(res.Err))
		}
		if res.OK() {
			a.logger.Info("Analysis finished", fields...)
		} else {
			a.logger.Warn("Analysis finished", fields...)
		}
		if a.recorder != nil {
			a.recorder.RecordAnalysis(res.Outcome, elapsed)
		}
	}()

	path, err := a.downloader.Download(ctx, url)
	if err != nil {
		return failure(ctx, apperrors.Collaborator("downloader", "download", err))
	}
	defer a.cleanup(path)

	asset := &model.VideoAsset{Path: path}
	active, err := a.submitter.Submit(ctx, asset)
	if err != nil {
		return failure(ctx, err)
	}

	md, err := a.extractor.Extract(ctx, active)
	if err != nil {
		return failure(ctx, err)
	}
	if md == nil {
		return Result{Outcome: OutcomeInvalid, Err: apperrors.ErrInvalidMetadata}
	}

	md.SourceURL = url
	return Result{Outcome: OutcomeOK, Metadata: md}
}

func (a *Analyzer) cleanup(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		a.logger.Warn("Failed to remove temp file", zap.String("path", path), zap.Error(err))
	}
}

// failure classifies err. Running out of the pipeline budget counts as a
// timeout even when the step that noticed reported it differently.
func failure(ctx context.Context, err error) Result {
	if apperrors.IsTimeout(err) {
		return Result{Outcome: OutcomeTimeout, Err: err}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return Result{Outcome: OutcomeTimeout, Err: apperrors.Wrap(apperrors.ErrTimeout, err.Error())}
	}
	return Result{Outcome: OutcomeFailed, Err: err}
}
