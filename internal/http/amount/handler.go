package amount

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lehrbaum/firefly/internal/amount"
	"github.com/lehrbaum/firefly/internal/http/request"
	"github.com/lehrbaum/firefly/internal/locale"
)

type Handler struct {
	svc     *amount.Service
	locales *locale.Table
}

func NewHandler(svc *amount.Service, locales *locale.Table) *Handler {
	return &Handler{svc: svc, locales: locales}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/normalize", h.normalize)
	r.Post("/normalize/batch", h.normalizeBatch)
}

type normalizeRequest struct {
	Amount   *string  `json:"amount" validate:"required,max=64"`
	Locale   string   `json:"locale" validate:"max=64"`
	Decimal  string   `json:"decimal" validate:"omitempty,len=1"`
	Grouping []string `json:"grouping" validate:"omitempty,max=4,dive,len=1"`
	Mode     string   `json:"mode" validate:"omitempty,oneof=lenient strict locale"`
}

type normalizeResponse struct {
	Amount amount.Parsed `json:"amount"`
	Input  string        `json:"input"`
	Locale string        `json:"locale,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (h *Handler) normalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if err := request.Decode(r, &req); err != nil {
		request.BadRequest(w, err)
		return
	}

	mode := h.svc.Mode()
	if req.Mode != "" {
		mode, _ = amount.ParseMode(req.Mode)
	}

	raw := *req.Amount

	if req.Decimal != "" {
		parsed, err := amount.Parse(raw, separators(req.Decimal, req.Grouping), mode)
		if err != nil {
			unprocessable(w, err)
			return
		}

		request.JSON(w, http.StatusOK, normalizeResponse{Amount: parsed, Input: raw})

		return
	}

	if len(req.Grouping) > 0 {
		request.BadRequest(w, request.FieldErrors{{Field: "decimal", Message: "is required with grouping"}})
		return
	}

	localeID, err := h.localeFor(r, req.Locale)
	if err != nil {
		unprocessable(w, err)
		return
	}

	parsed, err := h.svc.NormalizeWith(r.Context(), raw, localeID, mode)
	if err != nil {
		unprocessable(w, err)
		return
	}

	request.JSON(w, http.StatusOK, normalizeResponse{Amount: parsed, Input: raw, Locale: localeID})
}

type batchRequest struct {
	Amounts []string `json:"amounts" validate:"required,max=500,dive,max=64"`
	Locale  string   `json:"locale" validate:"max=64"`
}

type batchItem struct {
	Input  string        `json:"input"`
	Amount amount.Parsed `json:"amount,omitempty"`
	Error  string        `json:"error,omitempty"`
	Kind   string        `json:"kind,omitempty"`
}

type batchResponse struct {
	Locale  string      `json:"locale"`
	Results []batchItem `json:"results"`
	Failed  int         `json:"failed"`
}

func (h *Handler) normalizeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := request.Decode(r, &req); err != nil {
		request.BadRequest(w, err)
		return
	}

	localeID, err := h.localeFor(r, req.Locale)
	if err != nil {
		unprocessable(w, err)
		return
	}

	results, err := h.svc.NormalizeBatch(r.Context(), req.Amounts, localeID)
	if err != nil {
		unprocessable(w, err)
		return
	}

	resp := batchResponse{Locale: localeID, Results: make([]batchItem, 0, len(results))}

	for _, res := range results {
		item := batchItem{Input: res.Input, Amount: res.Amount}
		if res.Err != nil {
			item.Error = res.Err.Error()
			item.Kind = amount.Kind(res.Err).String()
			resp.Failed++
		}

		resp.Results = append(resp.Results, item)
	}

	request.JSON(w, http.StatusOK, resp)
}

// localeFor resolves the locale of a request: the explicit id, then the
// Accept-Language header, then the configured default.
func (h *Handler) localeFor(r *http.Request, id string) (string, error) {
	if id == "" {
		return h.locales.FromAcceptLanguage(r.Header.Get("Accept-Language")), nil
	}

	resolved, _, err := h.locales.Resolve(id)
	if err != nil {
		return "", fmt.Errorf("%w: %w", amount.ErrFormatterUnavailable, err)
	}

	return resolved, nil
}

func separators(decimal string, grouping []string) amount.Separators {
	marks := make([]rune, 0, len(grouping))
	for _, g := range grouping {
		marks = append(marks, []rune(g)[0])
	}

	return amount.NewSeparators([]rune(decimal)[0], marks...)
}

func unprocessable(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusServiceUnavailable
	}

	request.JSON(w, status, errorResponse{Error: err.Error(), Kind: amount.Kind(err).String()})
}
