package gemini

import (
	"context"
	"mime"
	"path/filepath"

	"google.golang.org/genai"

	"pop-search/internal/app/asset"
	"pop-search/internal/app/model"
)

// FileService uploads videos through the Gemini Files API.
type FileService struct {
	client *genai.Client
}

// NewFileService creates a FileService backed by client.
func NewFileService(client *genai.Client) *FileService {
	return &FileService{client: client}
}

// Upload sends the local file at path.
func (s *FileService) Upload(ctx context.Context, path string) (*asset.RemoteFile, error) {
	file, err := s.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType:    mimeTypeFor(path),
		DisplayName: filepath.Base(path),
	})
	if err != nil {
		return nil, err
	}
	return toRemoteFile(file), nil
}

// Get returns the current state of an uploaded file.
func (s *FileService) Get(ctx context.Context, name string) (*asset.RemoteFile, error) {
	file, err := s.client.Files.Get(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	return toRemoteFile(file), nil
}

func toRemoteFile(f *genai.File) *asset.RemoteFile {
	return &asset.RemoteFile{
		Name:     f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
		State:    toProcessingState(f.State),
	}
}

func toProcessingState(state genai.FileState) model.ProcessingState {
	switch state {
	case genai.FileStateActive:
		return model.StateActive
	case genai.FileStateFailed:
		return model.StateFailed
	case genai.FileStateProcessing:
		return model.StateProcessing
	default:
		return model.StateUploading
	}
}

func mimeTypeFor(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "video/mp4"
}
