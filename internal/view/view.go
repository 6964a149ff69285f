// Package view holds the templ components for the public HTML pages. Edit
// the .templ files and run templ generate; the _templ.go files are output.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/msomdec/reelnotes/internal/tmdb"
)

// ReviewsID is the id of the element ReviewsFragment renders, which datastar
// patches in place.
const ReviewsID = "reviews"

func movieURL(id int64) templ.SafeURL {
	return templ.URL("/movies/" + strconv.FormatInt(id, 10))
}

func pageURL(prefix string, n int) templ.SafeURL {
	return templ.URL(prefix + "page=" + strconv.Itoa(n))
}

func refreshReviews(movieID int64) string {
	return fmt.Sprintf("@get('/movies/%d/reviews/fragment')", movieID)
}

func genreNames(genres []tmdb.Genre) string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}
