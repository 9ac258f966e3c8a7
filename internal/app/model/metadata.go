package model

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/samber/lo"
)

// Person describes someone visible in the video.
type Person struct {
	Description string  `json:"descricao" validate:"required"`
	Role        *string `json:"papel"`
}

// AudioInfo holds what was heard in the video. Transcript is always a string;
// Song and Artist stay null unless the model was certain.
type AudioInfo struct {
	Transcript string  `json:"transcricao"`
	Song       *string `json:"musica"`
	Artist     *string `json:"artista"`
}

// StructuredDetails is the nested part of the extraction schema.
type StructuredDetails struct {
	People        []Person  `json:"pessoas" validate:"dive"`
	SceneElements []string  `json:"elementos_cenario"`
	Audio         AudioInfo `json:"audio"`
	SearchTags    []string  `json:"tags_busca"`
}

// VideoMetadata is the structured description extracted from a video.
type VideoMetadata struct {
	Title       string            `json:"titulo_sugerido" validate:"required"`
	Description string            `json:"descricao_completa" validate:"required"`
	SourceURL   string            `json:"url_original,omitempty"`
	Details     StructuredDetails `json:"metadados_estruturados"`
}

// ErrMissingDetails is returned when metadados_estruturados is absent or null.
var ErrMissingDetails = errors.New("metadados_estruturados is required")

// UnmarshalJSON rejects documents without the nested metadata object.
func (m *VideoMetadata) UnmarshalJSON(data []byte) error {
	type plain VideoMetadata
	aux := struct {
		*plain
		Details *StructuredDetails `json:"metadados_estruturados"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Details == nil {
		return ErrMissingDetails
	}
	m.Details = *aux.Details
	return nil
}

// Normalize brings optional fields to their canonical absent form: empty
// arrays instead of null, null instead of blank strings, trimmed and
// de-duplicated scene elements and tags.
func (m *VideoMetadata) Normalize() {
	m.Title = strings.TrimSpace(m.Title)
	m.Description = strings.TrimSpace(m.Description)

	// Blank descriptions are kept so validation can reject them.
	m.Details.People = lo.Map(m.Details.People, func(p Person, _ int) Person {
		return Person{Description: strings.TrimSpace(p.Description), Role: blankToNil(p.Role)}
	})
	if m.Details.People == nil {
		m.Details.People = []Person{}
	}

	m.Details.SceneElements = cleanSet(m.Details.SceneElements)
	m.Details.SearchTags = cleanSet(m.Details.SearchTags)

	m.Details.Audio.Transcript = strings.TrimSpace(m.Details.Audio.Transcript)
	m.Details.Audio.Song = blankToNil(m.Details.Audio.Song)
	m.Details.Audio.Artist = blankToNil(m.Details.Audio.Artist)
}

// PeopleDescriptions returns the descriptions of all people in order.
func (m *VideoMetadata) PeopleDescriptions() []string {
	return lo.Map(m.Details.People, func(p Person, _ int) string {
		return p.Description
	})
}

func cleanSet(values []string) []string {
	trimmed := lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	})
	out := lo.Uniq(lo.Compact(trimmed))
	if out == nil {
		return []string{}
	}
	return out
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" || strings.EqualFold(v, "null") {
		return nil
	}
	return &v
}
