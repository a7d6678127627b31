package locale

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lehrbaum/firefly/internal/http/request"
	"github.com/lehrbaum/firefly/internal/locale"
)

type Handler struct {
	table *locale.Table
}

func NewHandler(table *locale.Table) *Handler {
	return &Handler{table: table}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type listResponse struct {
	Default string   `json:"default"`
	Locales []string `json:"locales"`
}

type localeResponse struct {
	Locale   string   `json:"locale"`
	Decimal  string   `json:"decimal"`
	Grouping []string `json:"grouping"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	request.JSON(w, http.StatusOK, listResponse{
		Default: h.table.Default(),
		Locales: h.table.Locales(),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, seps, err := h.table.Resolve(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, locale.ErrUnknownLocale) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	grouping := make([]string, 0, len(seps.Grouping))
	for _, g := range seps.Grouping {
		grouping = append(grouping, string(g))
	}

	request.JSON(w, http.StatusOK, localeResponse{
		Locale:   id,
		Decimal:  string(seps.Decimal),
		Grouping: grouping,
	})
}
