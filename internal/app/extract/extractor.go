package extract

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "pop-search/internal/app/errors"
	"pop-search/internal/app/model"
)

const DefaultTimeout = 120 * time.Second

// ContentGenerator sends an instruction and a processed asset to a
// generative model and returns its raw text answer, expected to be JSON.
type ContentGenerator interface {
	GenerateJSON(ctx context.Context, instruction string, asset model.ActiveAsset) (string, error)
}

// Extractor turns a processed video into validated VideoMetadata.
type Extractor struct {
	generator ContentGenerator
	validate  *validator.Validate
	timeout   time.Duration
	logger    *zap.Logger
}

// NewExtractor creates an extractor whose model call is bounded by timeout.
func NewExtractor(generator ContentGenerator, timeout time.Duration, logger *zap.Logger) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		generator: generator,
		validate:  validator.New(),
		timeout:   timeout,
		logger:    logger.Named("extractor"),
	}
}

// Extract asks the model to describe asset. A response that is not valid
// JSON, or does not satisfy the schema, yields (nil, nil): the analysis is
// unavailable but nothing failed. A model call that runs out of time returns
// an ErrTimeout-class error; any other model failure is a CollaboratorError.
func (e *Extractor) Extract(ctx context.Context, asset model.ActiveAsset) (*model.VideoMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	e.logger.Info("Requesting metadata extraction", zap.String("asset", asset.Name))
	raw, err := e.generator.GenerateJSON(ctx, SystemInstruction, asset)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			e.logger.Warn("Metadata extraction timed out", zap.String("asset", asset.Name), zap.Duration("timeout", e.timeout))
			return nil, apperrors.Wrapf(apperrors.ErrTimeout, "metadata generation for %s", asset.Name)
		}
		return nil, apperrors.Collaborator("generator", "generate", err)
	}

	md, err := e.Parse(raw)
	if err != nil {
		e.logger.Warn("Discarding invalid extraction result",
			zap.String("asset", asset.Name),
			zap.Error(err),
			zap.Int("response_bytes", len(raw)),
		)
		return nil, nil
	}

	e.logger.Info("Metadata extracted",
		zap.String("asset", asset.Name),
		zap.String("title", md.Title),
		zap.Int("tags", len(md.Details.SearchTags)),
	)
	return md, nil
}

// Parse decodes and validates a raw model response. Errors wrap
// ErrInvalidMetadata.
func (e *Extractor) Parse(raw string) (*model.VideoMetadata, error) {
	var md model.VideoMetadata
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &md); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidMetadata, err.Error())
	}

	md.Normalize()
	// The source URL is set by the caller, never by the model.
	md.SourceURL = ""

	if err := e.validate.Struct(&md); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidMetadata, err.Error())
	}
	return &md, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block if present.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
