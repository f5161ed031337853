package quote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/quote"
	quoteUC "github.com/makhmudjon-inadullaev/quote-service/internal/usecase/quote"
)

/* ───────── スタブ実装 ───────── */

type stubInvalidator struct {
	likedIDs []string
}

func (s *stubInvalidator) OnQuoteLiked(_ context.Context, id string) {
	s.likedIDs = append(s.likedIDs, id)
}

/* ───────── テストケース ───────── */

func TestLikeHandler_Success(t *testing.T) {
	stub := &stubRepo{quotes: testQuotes()}
	inv := &stubInvalidator{}
	handler := quote.LikeHandler{Svc: &quoteUC.Service{Repo: stub, Invalidator: inv}}

	req := httptest.NewRequest(http.MethodPost, "/quotes/"+testID1+"/like", nil)
	req.SetPathValue("id", testID1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var result quote.DTO
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// いいね数が増えていること
	if result.Likes != 4 {
		t.Errorf("result.Likes = %d, want 4", result.Likes)
	}

	// 該当名言のキャッシュが無効化されること
	if len(inv.likedIDs) != 1 || inv.likedIDs[0] != testID1 {
		t.Errorf("invalidated IDs = %v, want [%s]", inv.likedIDs, testID1)
	}
}

func TestLikeHandler_NotFound(t *testing.T) {
	stub := &stubRepo{quotes: testQuotes()}
	inv := &stubInvalidator{}
	handler := quote.LikeHandler{Svc: &quoteUC.Service{Repo: stub, Invalidator: inv}}

	missing := "00000000-0000-0000-0000-000000000000"
	req := httptest.NewRequest(http.MethodPost, "/quotes/"+missing+"/like", nil)
	req.SetPathValue("id", missing)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNotFound)
	}

	// 存在しない名言ではキャッシュ無効化は行われない
	if len(inv.likedIDs) != 0 {
		t.Errorf("invalidated IDs = %v, want none", inv.likedIDs)
	}
}

func TestLikeHandler_InvalidID(t *testing.T) {
	stub := &stubRepo{quotes: testQuotes()}
	handler := quote.LikeHandler{Svc: &quoteUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodPost, "/quotes/123/like", nil)
	req.SetPathValue("id", "123")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestLikeHandler_RepositoryError(t *testing.T) {
	stub := &stubRepo{likeErr: errors.New("deadlock detected")}
	handler := quote.LikeHandler{Svc: &quoteUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodPost, "/quotes/"+testID1+"/like", nil)
	req.SetPathValue("id", testID1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}
