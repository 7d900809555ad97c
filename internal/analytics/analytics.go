// Package analytics computes summaries over transaction sets. Every function
// is a pure function of its inputs plus an explicit "now", so results are
// reproducible for a fixed record set.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/HarshaLokesh/phronetic-ai/internal/models"
)

// CategoryTotals holds the per-category split of a period summary.
type CategoryTotals struct {
	Category string  `json:"category"`
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
}

// PeriodSummary is the result of Summary.
type PeriodSummary struct {
	Period           string           `json:"period"`
	StartDate        time.Time        `json:"start_date"`
	TotalIncome      float64          `json:"total_income"`
	TotalExpense     float64          `json:"total_expense"`
	Net              float64          `json:"net_amount"`
	TransferTotal    float64          `json:"transfer_total"`
	TransactionCount int              `json:"transaction_count"`
	ByCategory       []CategoryTotals `json:"by_category"`
}

// Summary totals income and expense over the transactions dated within the
// period window ending at now. Amounts are stored positive; the transaction
// type is authoritative for direction. Transfers are excluded from income
// and expense but reported separately.
func Summary(txs []models.Transaction, period string, now time.Time) (*PeriodSummary, error) {
	start, err := PeriodStart(period, now)
	if err != nil {
		return nil, err
	}

	s := &PeriodSummary{Period: period, StartDate: start}
	catMap := make(map[string]*CategoryTotals)

	for i := range txs {
		t := &txs[i]
		if !inWindow(t.Date, start, now) {
			continue
		}
		s.TransactionCount++

		switch t.TransactionType {
		case models.TypeIncome:
			s.TotalIncome += t.Amount
		case models.TypeExpense:
			s.TotalExpense += t.Amount
		case models.TypeTransfer:
			s.TransferTotal += t.Amount
			continue
		default:
			continue
		}

		cat := t.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		ct, ok := catMap[cat]
		if !ok {
			ct = &CategoryTotals{Category: cat}
			catMap[cat] = ct
		}
		if t.TransactionType == models.TypeIncome {
			ct.Income += t.Amount
		} else {
			ct.Expense += t.Amount
		}
	}

	s.Net = s.TotalIncome - s.TotalExpense

	s.ByCategory = make([]CategoryTotals, 0, len(catMap))
	for _, ct := range catMap {
		s.ByCategory = append(s.ByCategory, *ct)
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})

	return s, nil
}

// CategoryShare is one row of a category breakdown.
type CategoryShare struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total_amount"`
	Count      int     `json:"transaction_count"`
	Percentage float64 `json:"percentage"`
}

// Breakdown is the result of CategoryBreakdown.
type Breakdown struct {
	Period        string          `json:"period"`
	StartDate     time.Time       `json:"start_date"`
	TotalExpenses float64         `json:"total_expenses"`
	CategoryCount int             `json:"category_count"`
	Categories    []CategoryShare `json:"breakdown"`
}

// CategoryBreakdown groups expense transactions in the period window by
// category with each category's share of the total. Categories with no
// matching transactions are omitted, not zero-filled. Rows are sorted by
// total descending.
func CategoryBreakdown(txs []models.Transaction, period string, now time.Time) (*Breakdown, error) {
	start, err := PeriodStart(period, now)
	if err != nil {
		return nil, err
	}

	b := &Breakdown{Period: period, StartDate: start}
	shares := make(map[string]*CategoryShare)

	for i := range txs {
		t := &txs[i]
		if t.TransactionType != models.TypeExpense || !inWindow(t.Date, start, now) {
			continue
		}
		cat := t.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		cs, ok := shares[cat]
		if !ok {
			cs = &CategoryShare{Category: cat}
			shares[cat] = cs
		}
		cs.Total += t.Amount
		cs.Count++
		b.TotalExpenses += t.Amount
	}

	b.Categories = make([]CategoryShare, 0, len(shares))
	for _, cs := range shares {
		if b.TotalExpenses > 0 {
			cs.Percentage = round2(cs.Total / b.TotalExpenses * 100)
		}
		b.Categories = append(b.Categories, *cs)
	}
	sort.Slice(b.Categories, func(i, j int) bool {
		if b.Categories[i].Total != b.Categories[j].Total {
			return b.Categories[i].Total > b.Categories[j].Total
		}
		return b.Categories[i].Category < b.Categories[j].Category
	})
	b.CategoryCount = len(b.Categories)

	return b, nil
}

// Budget status thresholds on percent used.
const (
	BudgetStatusGood     = "good"
	BudgetStatusWarning  = "warning"
	BudgetStatusExceeded = "exceeded"
)

// Progress is the derived state of one budget.
type Progress struct {
	BudgetID     uint       `json:"budget_id"`
	BudgetName   string     `json:"budget_name"`
	BudgetAmount float64    `json:"budget_amount"`
	Spent        float64    `json:"spent_amount"`
	Remaining    float64    `json:"remaining_amount"`
	PercentUsed  float64    `json:"progress_percentage"`
	IsOverBudget bool       `json:"is_over_budget"`
	Status       string     `json:"status"`
	Currency     string     `json:"currency"`
	Category     string     `json:"category"`
	Period       string     `json:"period"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

// BudgetProgress derives spend against a budget from the owner's
// transactions. Spent counts expense transactions matching the budget
// category (all expenses when unset) dated within
// [StartDate, min(EndDate, now)]. Remaining may be negative.
func BudgetProgress(budget models.Budget, txs []models.Transaction, now time.Time) Progress {
	end := now
	if budget.EndDate != nil && budget.EndDate.Before(now) {
		end = *budget.EndDate
	}

	var spent float64
	for i := range txs {
		t := &txs[i]
		if t.TransactionType != models.TypeExpense {
			continue
		}
		if budget.Category != "" && t.Category != budget.Category {
			continue
		}
		if t.Date.Before(budget.StartDate) || t.Date.After(end) {
			continue
		}
		spent += t.Amount
	}

	p := Progress{
		BudgetID:     budget.ID,
		BudgetName:   budget.Name,
		BudgetAmount: budget.Amount,
		Spent:        spent,
		Remaining:    budget.Amount - spent,
		Currency:     budget.Currency,
		Category:     budget.Category,
		Period:       budget.Period,
		StartDate:    budget.StartDate,
		EndDate:      budget.EndDate,
	}
	if budget.Amount > 0 {
		p.PercentUsed = round2(spent / budget.Amount * 100)
	}
	p.IsOverBudget = p.Remaining < 0
	switch {
	case p.PercentUsed >= 100:
		p.Status = BudgetStatusExceeded
	case p.PercentUsed >= 80:
		p.Status = BudgetStatusWarning
	default:
		p.Status = BudgetStatusGood
	}
	return p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
