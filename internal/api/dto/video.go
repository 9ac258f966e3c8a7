package dto

import "pop-search/internal/app/model"

// AnalyzeRequest asks for the metadata of the video at URL.
type AnalyzeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// IndexVideoRequest is analyzed metadata submitted for indexing. It must
// carry url_original.
type IndexVideoRequest = model.VideoMetadata

// IndexVideoResponse confirms a stored video.
type IndexVideoResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// ListVideosQuery pages the recent-videos listing.
type ListVideosQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}
