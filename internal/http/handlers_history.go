package httpx

import (
	"errors"
	"net/http"

	"github.com/target/text2ture/internal/core"
	"github.com/target/text2ture/internal/domain/model"
	apperrors "github.com/target/text2ture/internal/errors"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// HistoryHandlers serve the outcome journal.
type HistoryHandlers struct {
	Journal core.OutcomeJournal
}

type historyResponse struct {
	UID      string               `json:"uid"`
	Attempts []model.OutcomeEntry `json:"attempts"`
}

// List handles GET /history/{uid}?limit=N, newest attempt first.
func (h *HistoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	if h.Journal == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: string(apperrors.ErrCodeNotFound),
			Err:     errors.New("outcome journal is not enabled"),
		})
		return
	}

	uid := r.PathValue("uid")
	if err := model.ValidateUID(uid); err != nil {
		WriteAppError(w, apperrors.ValidationField("uid", err.Error()))
		return
	}

	limit := parseIntQuery(r, "limit", defaultHistoryLimit)
	limit = max(1, min(limit, maxHistoryLimit))

	entries, err := h.Journal.ListByUID(r.Context(), uid, limit)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if entries == nil {
		entries = []model.OutcomeEntry{}
	}
	WriteJSON(w, http.StatusOK, historyResponse{UID: uid, Attempts: entries})
}
