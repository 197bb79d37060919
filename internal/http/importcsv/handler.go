package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
	"github.com/Jamessshhh/Expense-Odyssey/internal/importer"
)

type Handler struct {
	parser *importer.Parser
	svc    *expense.Service
}

func NewHandler(parser *importer.Parser, svc *expense.Service) *Handler {
	return &Handler{
		parser: parser,
		svc:    svc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importedExpense struct {
	ID       uuid.UUID        `json:"id"`
	Amount   int64            `json:"amount"` // cents
	Category expense.Category `json:"category"`
	Date     string           `json:"date"` // YYYY-MM-DD
	Note     string           `json:"note,omitempty"`
}

type importResponse struct {
	Imported int               `json:"imported"`
	Expenses []importedExpense `json:"expenses"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := h.svc.AddBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := importResponse{
		Imported: len(added),
		Expenses: make([]importedExpense, len(added)),
	}

	for i, e := range added {
		resp.Expenses[i] = importedExpense{
			ID:       e.ID,
			Amount:   e.Amount,
			Category: e.Category,
			Date:     e.Date.Format(time.DateOnly),
			Note:     e.Note,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
