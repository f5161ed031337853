package quote

import (
	"net/http"

	quoteUC "github.com/makhmudjon-inadullaev/quote-service/internal/usecase/quote"
	recUC "github.com/makhmudjon-inadullaev/quote-service/internal/usecase/recommendation"
)

// Register registers all quote-related HTTP handlers with the given mux.
// It sets up routes for listing, submitting, and liking quotes, plus the
// random selection and similarity recommendation endpoints.
//
// The /quotes/random literal pattern takes precedence over /quotes/{id},
// so random is never shadowed by the ID wildcard.
func Register(mux *http.ServeMux, quotes *quoteUC.Service, recs *recUC.Service) {
	mux.Handle("GET    /quotes", ListHandler{quotes})
	mux.Handle("POST   /quotes", CreateHandler{quotes})
	mux.Handle("GET    /quotes/random", RandomHandler{recs})

	mux.Handle("GET    /quotes/{id}", GetHandler{quotes})
	mux.Handle("POST   /quotes/{id}/like", LikeHandler{quotes})
	mux.Handle("GET    /quotes/{id}/similar", SimilarHandler{recs})
}
