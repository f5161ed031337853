package quote

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/respond"
	quoteUC "github.com/makhmudjon-inadullaev/quote-service/internal/usecase/quote"
)

type CreateHandler struct{ Svc *quoteUC.Service }

// ServeHTTP 名言投稿
// @Summary      名言投稿
// @Description  新しい名言を投稿します
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        quote body object true "名言情報"
// @Success      201 {object} DTO "作成された名言"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /quotes [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string   `json:"text"`
		Author string   `json:"author"`
		Tags   []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Text == "" || req.Author == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("text, author are required"))
		return
	}

	q, err := h.Svc.Submit(r.Context(), quoteUC.SubmitInput{
		Text:   req.Text,
		Author: req.Author,
		Tags:   req.Tags,
	})
	if err != nil {
		code := http.StatusInternalServerError
		var vErr *entity.ValidationError
		if errors.As(err, &vErr) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(q))
}
