package http

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expenselog/internal/core"
	"expenselog/internal/log"
	"expenselog/internal/services"
	"expenselog/internal/store"
)

type expenseRow struct {
	Handle        string
	Date          string
	Category      string
	Amount        string
	Description   string
	AccountNumber string
	BankName      string
	WalletType    string
	WalletAddress string
}

type indexData struct {
	Rows       []expenseRow
	Total      string
	HasRows    bool
	Types      []core.ExpenseType
	Categories []string
	Today      string
	Error      string
	Notice     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	var notice string
	switch r.URL.Query().Get("notice") {
	case "added":
		notice = "Expense added successfully!"
	case "deleted":
		notice = "Expense deleted successfully!"
	}
	s.renderIndex(w, r, http.StatusOK, "", notice)
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, status int, errMsg, notice string) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	tax := s.svc.Taxonomy()
	entries := s.svc.List()

	data := indexData{
		HasRows:    len(entries) > 0,
		Types:      tax.Types(),
		Categories: tax.CategoriesFor(core.Personal),
		Today:      time.Now().Format(core.DateFormat),
		Error:      errMsg,
		Notice:     notice,
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Record.Amount)
		data.Rows = append(data.Rows, expenseRow{
			Handle:        e.Handle,
			Date:          e.Record.Date,
			Category:      e.Record.Category,
			Amount:        formatAmount(e.Record.Amount),
			Description:   e.Record.Description,
			AccountNumber: e.Record.AccountNumber,
			BankName:      e.Record.BankName,
			WalletType:    e.Record.WalletType,
			WalletAddress: e.Record.WalletAddress,
		})
	}
	data.Total = formatAmount(total)

	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed", log.FieldError, err)
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.logger.ErrorContext(r.Context(), "Parse form error", log.FieldError, err)
		s.renderIndex(w, r, http.StatusBadRequest, "Invalid request format.", "")
		return
	}

	fields := services.Fields{
		Date:          sanitizeInput(r.Form.Get("date")),
		Category:      sanitizeInput(r.Form.Get("category")),
		Amount:        sanitizeInput(r.Form.Get("amount")),
		Description:   sanitizeInput(r.Form.Get("description")),
		AccountNumber: sanitizeInput(r.Form.Get("account_number")),
		BankName:      sanitizeInput(r.Form.Get("bank_name")),
		WalletType:    sanitizeInput(r.Form.Get("wallet_type")),
		WalletAddress: sanitizeInput(r.Form.Get("wallet_address")),
	}

	if _, err := s.svc.Add(r.Context(), fields); err != nil {
		status, msg := userMessage(err)
		if status == http.StatusInternalServerError {
			s.logger.ErrorContext(r.Context(), "Expense add failed", log.FieldError, err)
		}
		s.renderIndex(w, r, status, msg, "")
		return
	}
	http.Redirect(w, r, "/?notice=added", http.StatusSeeOther)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderIndex(w, r, http.StatusBadRequest, "Invalid request format.", "")
		return
	}
	handle := strings.TrimSpace(r.Form.Get("handle"))
	if handle == "" {
		s.renderIndex(w, r, http.StatusBadRequest, "Please select an expense from the list to delete.", "")
		return
	}

	found, err := s.svc.DeleteByHandle(r.Context(), handle)
	if err != nil {
		status, msg := userMessage(err)
		s.logger.ErrorContext(r.Context(), "Expense delete failed", log.FieldError, err)
		s.renderIndex(w, r, status, msg, "")
		return
	}
	if !found {
		s.renderIndex(w, r, http.StatusNotFound,
			"Could not find the selected expense to delete. It might have been altered or already removed.", "")
		return
	}
	http.Redirect(w, r, "/?notice=deleted", http.StatusSeeOther)
}

type totalRow struct {
	Name   string
	Amount string
}

type reportData struct {
	NoData          bool
	Categories      []totalRow
	Months          []totalRow
	Personal        string
	Business        string
	Unclassified    string
	HasUnclassified bool
	Overall         string
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	rep, err := s.svc.Report(r.Context())
	if err != nil {
		if errors.Is(err, core.ErrNoData) {
			if err := s.templates.ExecuteTemplate(w, "report.html", reportData{NoData: true}); err != nil {
				s.logger.ErrorContext(r.Context(), "Report template execution failed", log.FieldError, err)
			}
			return
		}
		s.logger.ErrorContext(r.Context(), "Report generation failed", log.FieldError, err)
		http.Error(w, "failed to generate report", http.StatusInternalServerError)
		return
	}

	data := reportData{
		Personal:        formatAmount(rep.Personal),
		Business:        formatAmount(rep.Business),
		Unclassified:    formatAmount(rep.Unclassified),
		HasUnclassified: !rep.Unclassified.IsZero(),
		Overall:         formatAmount(rep.Overall),
	}
	for _, c := range rep.ByCategory {
		data.Categories = append(data.Categories, totalRow{Name: c.Name, Amount: formatAmount(c.Total)})
	}
	for _, m := range rep.ByMonth {
		data.Months = append(data.Months, totalRow{Name: m.Month, Amount: formatAmount(m.Total)})
	}

	if err := s.templates.ExecuteTemplate(w, "report.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Report template execution failed", log.FieldError, err)
	}
}

func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "categories", s.charts.CategoryPie)
}

func (s *Server) handleMonthChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "months", s.charts.MonthlyBars)
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, kind string, render func(core.Report) ([]byte, error)) {
	rep, err := s.svc.Report(r.Context())
	if err != nil {
		if errors.Is(err, core.ErrNoData) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, "failed to generate report", http.StatusInternalServerError)
		return
	}

	key := chartKey(kind, rep)
	png, ok := s.chartCache.Get(key)
	if !ok {
		png, err = render(rep)
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Chart rendering failed", log.FieldError, err)
			http.Error(w, "failed to render chart", http.StatusInternalServerError)
			return
		}
		s.chartCache.Set(key, png)
	}

	if len(png) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// chartKey fingerprints the report content so cached images are reused only
// while the underlying data is unchanged.
func chartKey(kind string, rep core.Report) string {
	h := sha256.New()
	io.WriteString(h, kind)
	for _, c := range rep.ByCategory {
		fmt.Fprintf(h, "|c:%s=%s", c.Name, c.Total)
	}
	for _, m := range rep.ByMonth {
		fmt.Fprintf(h, "|m:%s=%s", m.Month, m.Total)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// handleCategoryOptions returns the <option> list for an expense type, used
// by the add form when the type selector changes.
func (s *Server) handleCategoryOptions(w http.ResponseWriter, r *http.Request) {
	et := core.ExpenseType(strings.TrimSpace(r.URL.Query().Get("type")))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var b strings.Builder
	for _, cat := range s.svc.Taxonomy().CategoriesFor(et) {
		b.WriteString(`<option value="` + template.HTMLEscapeString(cat) + `">` +
			template.HTMLEscapeString(cat) + `</option>`)
	}
	_, _ = w.Write([]byte(b.String()))
}

// userMessage maps service errors to the message shown in the UI.
func userMessage(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrInvalidDate):
		return http.StatusUnprocessableEntity, "Please use YYYY-MM-DD format for the date."
	case errors.Is(err, core.ErrMissingCategory):
		return http.StatusUnprocessableEntity, "Please select a category."
	case errors.Is(err, core.ErrInvalidAmount):
		return http.StatusUnprocessableEntity, "Amount must be a positive number."
	case errors.Is(err, store.ErrWriteFailed):
		return http.StatusInternalServerError,
			"Failed to save expenses. Please ensure the file is not open in another program."
	default:
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func formatAmount(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
