package statement

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lehrbaum/firefly/internal/http/request"
	"github.com/lehrbaum/firefly/internal/statement"
)

type Handler struct {
	parser    *statement.Parser
	maxUpload int64
}

func NewHandler(parser *statement.Parser, maxUpload int64) *Handler {
	return &Handler{parser: parser, maxUpload: maxUpload}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
}

type rowResponse struct {
	Row          int    `json:"row"`
	Date         string `json:"date"`
	Description  string `json:"description"`
	Counterparty string `json:"counterparty,omitempty"`
	IBAN         string `json:"iban,omitempty"`
	Reference    string `json:"reference,omitempty"`
	Amount       string `json:"amount"`
	Cents        int64  `json:"cents"`
}

type issueResponse struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type referencesResponse struct {
	Merchants       map[string]string `json:"merchants"`
	Conflicts       []string          `json:"conflicts"`
	Considered      int               `json:"considered"`
	BlankReferences int               `json:"blank_references"`
}

type uploadResponse struct {
	ImportID   uuid.UUID          `json:"import_id"`
	Profile    string             `json:"profile"`
	Charset    string             `json:"charset"`
	Rows       []rowResponse      `json:"rows"`
	Issues     []issueResponse    `json:"issues"`
	References referencesResponse `json:"references"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "statement exceeds upload limit", http.StatusRequestEntityTooLarge)
			return
		}

		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)

		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	st, err := h.parser.Parse(r.Context(), file)
	if err != nil {
		if errors.Is(err, statement.ErrUnknownFormat) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		slog.Error("failed to parse statement", "error", err)
		http.Error(w, "failed to parse statement", http.StatusInternalServerError)

		return
	}

	idx := statement.IndexReferences(st.Rows, r.FormValue("iban"))

	resp := uploadResponse{
		ImportID: uuid.New(),
		Profile:  st.Profile,
		Charset:  string(st.Charset),
		Rows:     make([]rowResponse, 0, len(st.Rows)),
		Issues:   make([]issueResponse, 0, len(st.Issues)),
		References: referencesResponse{
			Merchants:       idx.Merchants,
			Conflicts:       idx.Conflicts,
			Considered:      idx.Considered,
			BlankReferences: idx.BlankReferences,
		},
	}

	for _, row := range st.Rows {
		resp.Rows = append(resp.Rows, rowResponse{
			Row:          row.Number,
			Date:         row.Date.Format("2006-01-02"),
			Description:  row.Description,
			Counterparty: row.Counterparty,
			IBAN:         row.IBAN,
			Reference:    row.Reference,
			Amount:       row.Amount.String(),
			Cents:        row.Cents,
		})
	}

	for _, issue := range st.Issues {
		resp.Issues = append(resp.Issues, issueResponse{Row: issue.Row, Message: issue.Message})
	}

	slog.Info("parsed statement",
		"import_id", resp.ImportID,
		"profile", st.Profile,
		"rows", len(st.Rows),
		"issues", len(st.Issues),
	)

	request.JSON(w, http.StatusOK, resp)
}
