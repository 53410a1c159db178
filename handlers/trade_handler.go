package handlers

import (
	"net/http"

	"github.com/Dosada05/trade-machine/services"
)

type TradeHandler struct {
	tradeService  services.TradeService
	chatService   services.ChatService
	exportService services.ExportService
}

func NewTradeHandler(ts services.TradeService, cs services.ChatService, es services.ExportService) *TradeHandler {
	return &TradeHandler{
		tradeService:  ts,
		chatService:   cs,
		exportService: es,
	}
}

// ListTrades godoc
// @Summary List the caller's trades, newest first
// @Tags trades
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/trades [get]
func (h *TradeHandler) ListTrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	trades, err := h.tradeService.List(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"trades": trades}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateTrade godoc
// @Summary Validate and save a trade
// @Tags trades
// @Accept json
// @Produce json
// @Param input body services.TradeDraft true "Trade draft"
// @Success 201 {object} services.TradeView
// @Failure 422 {object} map[string]interface{} "Field errors"
// @Security BearerAuth
// @Router /api/trades [post]
func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var draft services.TradeDraft
	if err := readJSON(w, r, &draft); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	trade, err := h.tradeService.Create(r.Context(), userID, draft)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, trade, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EvaluateTrade godoc
// @Summary Value a trade without saving it
// @Tags trades
// @Accept json
// @Produce json
// @Param input body services.TradeDraft true "Trade draft"
// @Success 200 {object} services.Evaluation
// @Failure 422 {object} map[string]interface{} "Field errors"
// @Security BearerAuth
// @Router /api/trades/evaluate [post]
func (h *TradeHandler) EvaluateTrade(w http.ResponseWriter, r *http.Request) {
	var draft services.TradeDraft
	if err := readJSON(w, r, &draft); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	evaluation, err := h.tradeService.Evaluate(r.Context(), draft)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, evaluation, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTrade godoc
// @Summary Get one of the caller's trades
// @Tags trades
// @Produce json
// @Param tradeID path string true "Trade ID"
// @Success 200 {object} services.TradeView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/trades/{tradeID} [get]
func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	tradeID, err := getUUIDFromURL(r, "tradeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	trade, err := h.tradeService.Get(r.Context(), userID, tradeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, trade, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateTrade godoc
// @Summary Replace a trade's description, teams and picks
// @Tags trades
// @Accept json
// @Produce json
// @Param tradeID path string true "Trade ID"
// @Param input body services.TradeDraft true "Trade draft"
// @Success 200 {object} services.TradeView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/trades/{tradeID} [put]
func (h *TradeHandler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	tradeID, err := getUUIDFromURL(r, "tradeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var draft services.TradeDraft
	if err := readJSON(w, r, &draft); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	trade, err := h.tradeService.Update(r.Context(), userID, tradeID, draft)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, trade, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteTrade godoc
// @Summary Delete a trade
// @Tags trades
// @Param tradeID path string true "Trade ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/trades/{tradeID} [delete]
func (h *TradeHandler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	tradeID, err := getUUIDFromURL(r, "tradeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.tradeService.Delete(r.Context(), userID, tradeID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChatAboutTrade godoc
// @Summary Ask the assistant about a trade
// @Tags trades
// @Accept json
// @Produce json
// @Param tradeID path string true "Trade ID"
// @Param input body services.ChatInput true "Conversation so far"
// @Success 200 {object} services.ChatReply
// @Failure 503 {object} map[string]string "Chat not configured"
// @Security BearerAuth
// @Router /api/trades/{tradeID}/chat [post]
func (h *TradeHandler) ChatAboutTrade(w http.ResponseWriter, r *http.Request) {
	tradeID, err := getUUIDFromURL(r, "tradeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input services.ChatInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reply, err := h.chatService.Ask(r.Context(), userID, tradeID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, reply, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportTrade godoc
// @Summary Publish a JSON valuation report to object storage
// @Tags trades
// @Produce json
// @Param tradeID path string true "Trade ID"
// @Success 201 {object} storage.UploadResult
// @Failure 503 {object} map[string]string "Export not configured"
// @Security BearerAuth
// @Router /api/trades/{tradeID}/export [post]
func (h *TradeHandler) ExportTrade(w http.ResponseWriter, r *http.Request) {
	tradeID, err := getUUIDFromURL(r, "tradeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	result, err := h.exportService.Export(r.Context(), userID, tradeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
