package core

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrNoData signals that there is nothing to report, so callers can
// short-circuit instead of rendering empty aggregates.
var ErrNoData = errors.New("no expenses recorded")

// CategoryTotal is the aggregated amount for one category.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// MonthTotal is the aggregated amount for one YYYY-MM bucket.
type MonthTotal struct {
	Month string
	Total decimal.Decimal
}

// Report is the aggregated view of a full expense collection.
//
// Overall is the sum of every record regardless of classification, so it can
// exceed Personal+Business when a file contains categories outside the
// taxonomy; Unclassified carries that residue explicitly, keeping
// Personal+Business+Unclassified == Overall.
type Report struct {
	ByCategory []CategoryTotal
	ByMonth    []MonthTotal

	Personal     decimal.Decimal
	Business     decimal.Decimal
	Unclassified decimal.Decimal
	Overall      decimal.Decimal
}

// BuildReport aggregates the collection into category sums, month sums and
// the Personal/Business split. An empty collection returns ErrNoData.
func BuildReport(records []ExpenseRecord, tax Taxonomy) (Report, error) {
	if len(records) == 0 {
		return Report{}, ErrNoData
	}

	byCategory := map[string]decimal.Decimal{}
	byMonth := map[string]decimal.Decimal{}
	rep := Report{
		Personal:     decimal.Zero,
		Business:     decimal.Zero,
		Unclassified: decimal.Zero,
		Overall:      decimal.Zero,
	}

	for _, r := range records {
		byCategory[r.Category] = byCategory[r.Category].Add(r.Amount)
		key := r.MonthKey()
		byMonth[key] = byMonth[key].Add(r.Amount)

		switch et, _ := tax.TypeOf(r.Category); et {
		case Personal:
			rep.Personal = rep.Personal.Add(r.Amount)
		case Business:
			rep.Business = rep.Business.Add(r.Amount)
		default:
			rep.Unclassified = rep.Unclassified.Add(r.Amount)
		}
		rep.Overall = rep.Overall.Add(r.Amount)
	}

	for name, total := range byCategory {
		rep.ByCategory = append(rep.ByCategory, CategoryTotal{Name: name, Total: total})
	}
	sort.Slice(rep.ByCategory, func(i, j int) bool {
		return rep.ByCategory[i].Name < rep.ByCategory[j].Name
	})

	for month, total := range byMonth {
		rep.ByMonth = append(rep.ByMonth, MonthTotal{Month: month, Total: total})
	}
	sort.Slice(rep.ByMonth, func(i, j int) bool {
		return rep.ByMonth[i].Month < rep.ByMonth[j].Month
	})

	return rep, nil
}
