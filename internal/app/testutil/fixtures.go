package testutil

import (
	"time"

	"pop-search/internal/app/model"
)

func strPtr(s string) *string { return &s }

// SampleMetadata returns a fully populated, normalized metadata value for
// url. Each call returns a fresh copy.
func SampleMetadata(url string) *model.VideoMetadata {
	md := &model.VideoMetadata{
		Title:       "Gato laranja comendo ração",
		Description: "Um gato laranja de pelo curto come ração em uma tigela azul na cozinha.",
		SourceURL:   url,
		Details: model.StructuredDetails{
			People: []model.Person{
				{Description: "Mão de uma pessoa segurando o pacote de ração", Role: strPtr("tutor")},
			},
			SceneElements: []string{"gato", "tigela azul", "cozinha"},
			Audio: model.AudioInfo{
				Transcript: "Vem comer, Frajola!",
			},
			SearchTags: []string{"gato", "pet", "ração", "fofo"},
		},
	}
	md.Normalize()
	return md
}

// SampleSummaries returns stored-video rows ordered newest first.
func SampleSummaries() []model.VideoSummary {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return []model.VideoSummary{
		{
			ID:          "b7d1c0a2-2f4e-4a59-9c1e-0d7c5f3e8a11",
			Title:       "Show ao vivo",
			Description: "Cantor se apresenta em palco com luzes coloridas.",
			SourceURL:   "https://www.tiktok.com/@banda/video/2",
			Tags:        []string{"show", "música"},
			CreatedAt:   base.Add(time.Hour),
		},
		{
			ID:          "1f0e9d8c-7b6a-4594-8382-716f5e4d3c2b",
			Title:       "Gato laranja comendo ração",
			Description: "Um gato laranja de pelo curto come ração.",
			SourceURL:   "https://www.tiktok.com/@pets/video/1",
			Tags:        []string{"gato", "pet"},
			CreatedAt:   base,
		},
	}
}
