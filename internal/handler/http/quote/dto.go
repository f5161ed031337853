// Package quote provides HTTP handlers for quote-related endpoints.
// It includes handlers for listing, submitting, and liking quotes, as well as
// the random selection and similarity recommendation endpoints.
package quote

import (
	"time"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/recommend"
)

// DTO represents the JSON structure for quote data transfer.
// The field layout mirrors the canonical quote serialization used by the
// recommendation cache tiers.
type DTO struct {
	ID        string    `json:"id" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	Text      string    `json:"text" example:"Stay hungry, stay foolish."`
	Author    string    `json:"author" example:"Steve Jobs"`
	Tags      []string  `json:"tags" example:"inspiration,life"`
	Likes     int64     `json:"likes" example:"42"`
	Source    string    `json:"source" example:"quotable"`
	CreatedAt time.Time `json:"createdAt" example:"2025-10-26T12:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2025-10-26T12:00:00Z"`
}

// ScoredDTO pairs a quote with its similarity score against a target quote.
type ScoredDTO struct {
	Quote DTO     `json:"quote"`
	Score float64 `json:"score" example:"0.42"`
}

func toDTO(q *entity.Quote) DTO {
	return DTO{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		Tags:      q.Tags,
		Likes:     q.Likes,
		Source:    string(q.Source),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func toScoredDTOs(ranked []recommend.ScoredQuote) []ScoredDTO {
	out := make([]ScoredDTO, 0, len(ranked))
	for i := range ranked {
		out = append(out, ScoredDTO{
			Quote: toDTO(&ranked[i].Quote),
			Score: ranked[i].Score,
		})
	}
	return out
}
