package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/msomdec/reelnotes/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash never
// leaves the server.
type UserDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// FavoriteDTO is the JSON representation of a saved movie.
type FavoriteDTO struct {
	MovieID   string  `json:"movieId"`
	Title     string  `json:"title"`
	PosterURL *string `json:"posterUrl"`
	Overview  *string `json:"overview"`
	CreatedAt string  `json:"createdAt"`
}

func toFavoriteDTOs(favs []domain.Favorite) []FavoriteDTO {
	dtos := make([]FavoriteDTO, len(favs))
	for i, f := range favs {
		dtos[i] = FavoriteDTO{
			MovieID:   f.MovieID,
			Title:     f.Title,
			PosterURL: f.PosterURL,
			Overview:  f.Overview,
			CreatedAt: f.CreatedAt.Format(time.RFC3339),
		}
	}
	return dtos
}

// ReviewDTO is the JSON representation of a review.
type ReviewDTO struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	MovieID   string `json:"movieId"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Rating    *int   `json:"rating"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toReviewDTO(r *domain.Review) ReviewDTO {
	return ReviewDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		MovieID:   r.MovieID,
		Author:    r.Author,
		Content:   r.Content,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}

func toReviewDTOs(reviews []domain.Review) []ReviewDTO {
	dtos := make([]ReviewDTO, len(reviews))
	for i := range reviews {
		dtos[i] = toReviewDTO(&reviews[i])
	}
	return dtos
}

// flexString accepts a JSON string or number. Catalog ids arrive as either.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexRating accepts null, a number or a numeric string. Anything else
// decodes to NaN so the review rules reject it after the ownership check
// instead of failing the whole body.
type flexRating struct {
	value *float64
}

func (f *flexRating) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		f.value = nil
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		f.value = &v
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			f.value = nil
			return nil
		}
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			f.value = &parsed
			return nil
		}
	}

	nan := math.NaN()
	f.value = &nan
	return nil
}
