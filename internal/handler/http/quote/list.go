package quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/respond"
	quoteUC "github.com/makhmudjon-inadullaev/quote-service/internal/usecase/quote"
)

// 一覧取得の limit の許容範囲
const (
	minListLimit = 1
	maxListLimit = 100
)

type ListHandler struct{ Svc *quoteUC.Service }

// ServeHTTP 名言一覧取得
// @Summary      名言一覧取得
// @Description  登録されている名言を取得します。limit を指定した場合は新着順に件数を絞って返します。
// @Tags         quotes
// @Produce      json
// @Param        limit query int false "新着順での取得件数" minimum(1) maximum(100)
// @Success      200 {array} DTO "名言一覧"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /quotes [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		quotes []*entity.Quote
		err    error
	)

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, parseErr := strconv.Atoi(raw)
		if parseErr != nil || limit < minListLimit || limit > maxListLimit {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("limit must be an integer between 1 and 100"))
			return
		}
		quotes, err = h.Svc.ListRecent(ctx, limit)
	} else {
		quotes, err = h.Svc.List(ctx)
	}
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]DTO, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, toDTO(q))
	}

	respond.JSON(w, http.StatusOK, out)
}
