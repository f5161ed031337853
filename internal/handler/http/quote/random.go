package quote

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/respond"
	recUC "github.com/makhmudjon-inadullaev/quote-service/internal/usecase/recommendation"
)

type RandomHandler struct{ Svc *recUC.Service }

// ServeHTTP ランダム名言取得
// @Summary      ランダム名言取得
// @Description  名言をランダムに1件返します。デフォルトでは (likes + 1) に比例した重み付き抽選です。
// @Tags         quotes
// @Produce      json
// @Param        weighted  query bool   false "重み付き抽選を使うかどうか" default(true)
// @Param        exclude   query string false "除外する名言IDのカンマ区切りリスト"
// @Param        min_likes query int    false "抽選対象に含める最小いいね数" default(0)
// @Success      200 {object} DTO "選ばれた名言"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      404 {string} string "Not found - no quote matches the filters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /quotes/random [get]
func (h RandomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	weighted := true
	if raw := q.Get("weighted"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("weighted must be a boolean"))
			return
		}
		weighted = parsed
	}

	var minLikes int64
	if raw := q.Get("min_likes"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("min_likes must be a non-negative integer"))
			return
		}
		minLikes = parsed
	}

	var exclude []string
	for _, part := range strings.Split(q.Get("exclude"), ",") {
		if id := strings.TrimSpace(part); id != "" {
			exclude = append(exclude, id)
		}
	}

	picked, err := h.Svc.RandomQuote(r.Context(), exclude, minLikes, weighted)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if picked == nil {
		respond.SafeError(w, http.StatusNotFound,
			errors.New("no quote found matching the filters"))
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(picked))
}
