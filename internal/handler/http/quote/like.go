package quote

import (
	"errors"
	"net/http"

	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/pathutil"
	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/respond"
	quoteUC "github.com/makhmudjon-inadullaev/quote-service/internal/usecase/quote"
)

type LikeHandler struct{ Svc *quoteUC.Service }

// ServeHTTP 名言いいね
// @Summary      名言にいいねを付ける
// @Description  指定された名言のいいね数を1増やします。該当名言の類似キャッシュは無効化されます。
// @Tags         quotes
// @Produce      json
// @Param        id path string true "名言ID (UUID)"
// @Success      200 {object} DTO "更新後の名言"
// @Failure      400 {string} string "Bad request - invalid quote ID"
// @Failure      404 {string} string "Not found - quote not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /quotes/{id}/like [post]
func (h LikeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	q, err := h.Svc.Like(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, quoteUC.ErrQuoteNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(q))
}
