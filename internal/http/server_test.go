package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"expenselog/internal/core"
	"expenselog/internal/services"
	"expenselog/internal/store/memory"

	"github.com/shopspring/decimal"
)

func newTestServer(t *testing.T) (*Server, *services.ExpenseService, *memory.Store) {
	t.Helper()
	st := memory.New()
	svc := services.NewExpenseService(st, core.DefaultTaxonomy(), nil)
	if err := svc.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return NewServer("127.0.0.1:0", svc, nil), svc, st
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersForm(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Add Expense") || !strings.Contains(body, "Groceries") {
		t.Fatalf("index page missing form content")
	}
}

func TestCreateExpenseRedirectsAndPersists(t *testing.T) {
	srv, svc, st := newTestServer(t)

	rec := postForm(t, srv, "/expenses", url.Values{
		"date":     {"2024-01-10"},
		"category": {"Groceries"},
		"amount":   {"50.25"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/") {
		t.Fatalf("unexpected redirect target %q", loc)
	}

	persisted, _ := st.LoadAll(context.Background())
	if len(persisted) != 1 || !persisted[0].Amount.Equal(decimal.RequireFromString("50.25")) {
		t.Fatalf("record not persisted: %+v", persisted)
	}
	if len(svc.List()) != 1 {
		t.Fatal("service collection not updated")
	}
}

func TestCreateExpenseInvalidAmount(t *testing.T) {
	srv, _, st := newTestServer(t)

	rec := postForm(t, srv, "/expenses", url.Values{
		"date":     {"2024-01-10"},
		"category": {"Groceries"},
		"amount":   {"abc"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Amount must be a positive number.") {
		t.Fatalf("expected amount error message, got: %s", rec.Body.String())
	}
	if persisted, _ := st.LoadAll(context.Background()); len(persisted) != 0 {
		t.Fatal("invalid input reached storage")
	}
}

func TestCreateExpenseInvalidDate(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := postForm(t, srv, "/expenses", url.Values{
		"date":     {"10/01/2024"},
		"category": {"Groceries"},
		"amount":   {"5"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "YYYY-MM-DD") {
		t.Fatal("expected date format error message")
	}
}

func TestDeleteExpense(t *testing.T) {
	srv, svc, st := newTestServer(t)
	ctx := context.Background()

	entry, err := svc.Add(ctx, services.Fields{Date: "2024-01-10", Category: "Groceries", Amount: "10"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	rec := postForm(t, srv, "/expenses/delete", url.Values{"handle": {entry.Handle}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body: %s", rec.Code, rec.Body.String())
	}
	if persisted, _ := st.LoadAll(ctx); len(persisted) != 0 {
		t.Fatalf("expected empty storage, got %+v", persisted)
	}
}

func TestDeleteExpenseStaleHandle(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := postForm(t, srv, "/expenses/delete", url.Values{"handle": {"nope"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Could not find the selected expense") {
		t.Fatal("expected not-found message in re-rendered page")
	}
}

func TestReportNoData(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No expenses recorded yet to generate a report.") {
		t.Fatal("expected no-data message")
	}
}

func TestReportWithData(t *testing.T) {
	srv, _, st := newTestServer(t)

	st.Seed([]core.ExpenseRecord{
		{Date: "2024-01-10", Category: "Groceries", Amount: decimal.RequireFromString("50.00")},
		{Date: "2024-01-20", Category: "Office Rent", Amount: decimal.RequireFromString("200.00")},
	})

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"$50.00", "$200.00", "$250.00", "2024-01"} {
		if !strings.Contains(body, want) {
			t.Fatalf("report missing %q", want)
		}
	}
}

func TestChartEndpointsNoContentWhenEmpty(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, path := range []string{"/report/categories.png", "/report/months.png"} {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("%s: status = %d, want 204", path, rec.Code)
		}
	}
}

func TestCategoryOptions(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ui/categories?type=Business", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Office Rent") || strings.Contains(body, "Groceries") {
		t.Fatalf("expected business categories only, got: %s", body)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
