package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/custsvc/interactions-api/internal/core/cursor"
	"github.com/custsvc/interactions-api/internal/core/query"
	"github.com/custsvc/interactions-api/internal/store"
	"github.com/custsvc/interactions-api/internal/util"
)

type interactionItem struct {
	InteractionID string `json:"interaction_id"`
	Timestamp     string `json:"timestamp"`
	Reason        string `json:"reason"`
	Solution      string `json:"solution"`
	Summary       string `json:"summary"`
	Channel       string `json:"channel"`
}

type interactionsResponse struct {
	AccountNumber string            `json:"account_number"`
	Items         []interactionItem `json:"items"`
	NextCursor    *string           `json:"next_cursor"`
}

func (h *handlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	util.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// ListInteractions handles GET /interactions/{accountNumber}?limit=&cursor=&from=&to=
func (h *handlers) ListInteractions(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "accountNumber")
	if strings.TrimSpace(account) == "" {
		util.WriteError(w, http.StatusBadRequest, "invalid_request", "account_number is required")
		return
	}

	limit, err := util.ParseLimit(r, h.defaultLimit, h.maxLimit)
	if err != nil {
		util.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	startAfter, err := util.ParseCursor(r)
	if err != nil {
		util.WriteError(w, http.StatusBadRequest, "invalid_cursor", err.Error())
		return
	}

	d := query.Build(account, util.ParseDateRange(r), limit, startAfter)
	page, err := h.store.Query(r.Context(), d)
	if err != nil {
		h.logger.Error("store query failed",
			"account_number", account,
			"range", d.Sort.Kind.String(),
			"unavailable", errors.Is(err, store.ErrStoreUnavailable),
			"error", err,
		)
		util.WriteError(w, http.StatusInternalServerError, "internal", "failed to query interactions")
		return
	}

	resp := interactionsResponse{
		AccountNumber: account,
		Items:         make([]interactionItem, 0, len(page.Items)),
	}
	for _, it := range page.Items {
		resp.Items = append(resp.Items, interactionItem{
			InteractionID: it.InteractionID,
			Timestamp:     it.Timestamp,
			Reason:        it.Reason,
			Solution:      it.Solution,
			Summary:       it.Summary,
			Channel:       it.Channel,
		})
	}
	if page.Next != nil {
		next := cursor.Encode(page.Next)
		resp.NextCursor = &next
	}
	util.WriteJSON(w, http.StatusOK, resp)
}
