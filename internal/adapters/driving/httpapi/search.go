package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// searchResultDTO is the JSON shape of one search hit. The domain's
// tagged variants flatten into a single object with a kind field and
// kind-specific fields left empty elsewhere.
type searchResultDTO struct {
	Kind         string     `json:"kind"`
	ChunkID      string     `json:"chunk_id"`
	ResourceID   string     `json:"resource_id"`
	ResourceName string     `json:"resource_name"`
	Language     string     `json:"language"`
	Text         string     `json:"text"`
	Score        float64    `json:"score"`
	RecordedAt   *time.Time `json:"recorded_at,omitempty"`
	PreviewURL   string     `json:"preview_url,omitempty"`
	Page         *int       `json:"page,omitempty"`
	Paragraph    int        `json:"paragraph,omitempty"`
	Timestamp    string     `json:"timestamp,omitempty"`
}

func toSearchResultDTO(r domain.SearchResult) searchResultDTO {
	base := r.Base()
	dto := searchResultDTO{
		Kind:         string(r.Kind()),
		ChunkID:      base.ChunkID,
		ResourceID:   base.ResourceID,
		ResourceName: base.ResourceName,
		Language:     string(base.Language),
		Text:         base.Text,
		Score:        base.Score,
	}

	switch v := r.(type) {
	case domain.ImageResult:
		dto.RecordedAt = v.RecordedAt
		dto.PreviewURL = v.PreviewURL
	case domain.BookResult:
		dto.Page = v.Page
		dto.Paragraph = v.Paragraph
	case domain.TranscriptResult:
		dto.Timestamp = v.Timestamp
	}
	return dto
}

func (s *Server) handleSearch(c echo.Context) error {
	query := c.QueryParam("q")

	opts := domain.SearchOptions{}
	if limit := c.QueryParam("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		opts.Limit = n
	}
	if lang := c.QueryParam("language"); lang != "" {
		l := domain.Language(lang)
		if !l.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "language must be en, hi, or mixed")
		}
		opts.Language = l
	}

	results, err := s.search.Search(c.Request().Context(), query, opts)
	if err != nil {
		return err
	}

	dtos := make([]searchResultDTO, len(results))
	for i, r := range results {
		dtos[i] = toSearchResultDTO(r)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"query":   query,
		"results": dtos,
	})
}
