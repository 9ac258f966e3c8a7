package services

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"pop-search/internal/api/dto"
	"pop-search/internal/api/errors"
	apperrors "pop-search/internal/app/errors"
	"pop-search/internal/app/export"
	"pop-search/internal/app/model"
	"pop-search/internal/app/pipeline"
)

// exportLimit caps how many videos a spreadsheet export includes
const exportLimit = 10000

// Analyzer runs the analysis pipeline for one URL
type Analyzer interface {
	Analyze(ctx context.Context, url string) pipeline.Result
}

// Indexer stores analyzed metadata
type Indexer interface {
	Index(ctx context.Context, md *model.VideoMetadata) (string, error)
}

// VideoLister lists stored videos
type VideoLister interface {
	List(ctx context.Context, limit int) ([]model.VideoSummary, error)
}

// IndexRecorder is told about every index attempt
type IndexRecorder interface {
	RecordIndex(err error)
}

// VideoServiceImpl implements VideoService
type VideoServiceImpl struct {
	analyzer Analyzer
	indexer  Indexer
	lister   VideoLister
	recorder IndexRecorder
	validate *validator.Validate
	logger   *zap.Logger
}

// NewVideoService creates a new video service
func NewVideoService(analyzer Analyzer, indexer Indexer, lister VideoLister, recorder IndexRecorder, logger *zap.Logger) VideoService {
	return &VideoServiceImpl{
		analyzer: analyzer,
		indexer:  indexer,
		lister:   lister,
		recorder: recorder,
		validate: validator.New(),
		logger:   logger,
	}
}

// Analyze runs the pipeline and maps its outcome onto an HTTP error kind
func (s *VideoServiceImpl) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*model.VideoMetadata, error) {
	res := s.analyzer.Analyze(ctx, req.URL)

	switch res.Outcome {
	case pipeline.OutcomeOK:
		return res.Metadata, nil
	case pipeline.OutcomeTimeout:
		return nil, errors.NewGatewayTimeoutError("Video analysis timed out")
	case pipeline.OutcomeInvalid:
		return nil, errors.NewInternalError("Could not extract valid metadata from the video")
	default:
		return nil, errors.NewInternalError("Video analysis failed")
	}
}

// Index validates and stores submitted metadata
func (s *VideoServiceImpl) Index(ctx context.Context, req *dto.IndexVideoRequest) (resp *dto.IndexVideoResponse, err error) {
	defer func() {
		if s.recorder != nil {
			s.recorder.RecordIndex(err)
		}
	}()

	if req.SourceURL == "" {
		return nil, errors.NewBadRequestError("url_original is required")
	}
	req.Normalize()
	if verr := s.validate.Struct(req); verr != nil {
		return nil, errors.NewValidationError("Invalid video metadata", validationDetails(verr))
	}

	id, err := s.indexer.Index(ctx, req)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrMissingSourceURL) {
			return nil, errors.NewBadRequestError("url_original is required")
		}
		s.logger.Error("Failed to index video", zap.String("url", req.SourceURL), zap.Error(err))
		return nil, errors.NewInternalError("Failed to index video")
	}

	return &dto.IndexVideoResponse{Status: "success", ID: id}, nil
}

// List returns the most recent videos
func (s *VideoServiceImpl) List(ctx context.Context, query dto.ListVideosQuery) ([]model.VideoSummary, error) {
	videos, err := s.lister.List(ctx, query.Limit)
	if err != nil {
		s.logger.Error("Failed to list videos", zap.Error(err))
		return nil, errors.NewInternalError("Failed to list videos")
	}
	return videos, nil
}

// Export writes the whole catalog as a spreadsheet
func (s *VideoServiceImpl) Export(ctx context.Context, w io.Writer) error {
	videos, err := s.lister.List(ctx, exportLimit)
	if err != nil {
		s.logger.Error("Failed to list videos for export", zap.Error(err))
		return errors.NewInternalError("Failed to export videos")
	}
	if err := export.ToExcel(videos, w); err != nil {
		s.logger.Error("Failed to write export", zap.Error(err))
		return errors.NewInternalError("Failed to export videos")
	}
	return nil
}

func validationDetails(err error) map[string]string {
	details := make(map[string]string)
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		details["metadata"] = "is invalid"
		return details
	}
	for _, fe := range verrs {
		details[fe.Namespace()] = fe.Tag()
	}
	return details
}
