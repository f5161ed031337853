package quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/pathutil"
	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/respond"
	recUC "github.com/makhmudjon-inadullaev/quote-service/internal/usecase/recommendation"
)

type SimilarHandler struct{ Svc *recUC.Service }

// ServeHTTP 類似名言取得
// @Summary      類似名言取得
// @Description  指定された名言に類似する名言を類似度の降順で返します
// @Tags         quotes
// @Produce      json
// @Param        id    path  string true  "名言ID (UUID)"
// @Param        limit query int    false "取得件数" default(10) minimum(1) maximum(50)
// @Success      200 {array} ScoredDTO "類似名言リスト"
// @Failure      400 {string} string "Bad request - invalid quote ID or limit"
// @Failure      404 {string} string "Not found - quote not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /quotes/{id}/similar [get]
func (h SimilarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	// limit 未指定時はサービス側のデフォルト値に委ねる
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("limit must be an integer"))
			return
		}
	}

	ranked, err := h.Svc.GetSimilar(r.Context(), id, limit)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, recUC.ErrInvalidLimit) {
			code = http.StatusBadRequest
		} else if errors.Is(err, recUC.ErrQuoteNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toScoredDTOs(ranked))
}
