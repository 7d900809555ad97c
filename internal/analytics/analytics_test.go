package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/HarshaLokesh/phronetic-ai/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Wednesday, 2025-06-18 12:00 UTC. Every test pins "now" so
// results are reproducible.
var fixedNow = time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)

func tx(txType, category string, amount float64, date time.Time) models.Transaction {
	return models.Transaction{
		UserID:          1,
		Amount:          amount,
		Currency:        "USD",
		Description:     "test",
		Category:        category,
		TransactionType: txType,
		Date:            date,
	}
}

func TestPeriodStart(t *testing.T) {
	testCases := []struct {
		period string
		want   time.Time
	}{
		{PeriodDay, time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC)},
		{PeriodWeek, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)}, // Monday
		{PeriodMonth, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYear, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		got, err := PeriodStart(tc.period, fixedNow)
		require.NoError(t, err, "period %s", tc.period)
		assert.Equal(t, tc.want, got, "period %s", tc.period)
	}

	_, err := PeriodStart("quarter", fixedNow)
	assert.Error(t, err)
}

func TestPeriodStart_WeekOnMonday(t *testing.T) {
	monday := time.Date(2025, time.June, 16, 8, 0, 0, 0, time.UTC)
	got, err := PeriodStart(PeriodWeek, monday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), got)
}

func TestSummary(t *testing.T) {
	txs := []models.Transaction{
		tx(models.TypeIncome, "Salary", 3000, fixedNow.AddDate(0, 0, -2)),
		tx(models.TypeExpense, "Food", 50, fixedNow.AddDate(0, 0, -1)),
		tx(models.TypeExpense, "Food", 30, fixedNow.Add(-time.Hour)),
		tx(models.TypeExpense, "Transport", 20, fixedNow.Add(-2*time.Hour)),
		tx(models.TypeTransfer, "", 500, fixedNow.Add(-3*time.Hour)),
		// outside the month window, must be ignored
		tx(models.TypeExpense, "Food", 999, fixedNow.AddDate(0, -1, 0)),
		// dated exactly "now": window is [start, now), must be ignored
		tx(models.TypeIncome, "Salary", 999, fixedNow),
	}

	s, err := Summary(txs, PeriodMonth, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, 3000.0, s.TotalIncome)
	assert.Equal(t, 100.0, s.TotalExpense)
	assert.Equal(t, 2900.0, s.Net)
	assert.Equal(t, 500.0, s.TransferTotal)
	assert.Equal(t, 5, s.TransactionCount)

	byCat := make(map[string]CategoryTotals)
	for _, ct := range s.ByCategory {
		byCat[ct.Category] = ct
	}
	assert.Equal(t, 80.0, byCat["Food"].Expense)
	assert.Equal(t, 20.0, byCat["Transport"].Expense)
	assert.Equal(t, 3000.0, byCat["Salary"].Income)
	// transfers carry no category row
	assert.NotContains(t, byCat, "")
	assert.NotContains(t, byCat, "Uncategorized")
}

func TestSummary_InvalidPeriod(t *testing.T) {
	_, err := Summary(nil, "decade", fixedNow)
	assert.Error(t, err)
}

func TestSummary_Empty(t *testing.T) {
	s, err := Summary(nil, PeriodDay, fixedNow)
	require.NoError(t, err)
	assert.Zero(t, s.TotalIncome)
	assert.Zero(t, s.TotalExpense)
	assert.Zero(t, s.Net)
	assert.Empty(t, s.ByCategory)
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []models.Transaction{
		tx(models.TypeExpense, "Food", 50, fixedNow.Add(-time.Hour)),
		tx(models.TypeExpense, "Food", 25, fixedNow.Add(-2*time.Hour)),
		tx(models.TypeExpense, "Transport", 25, fixedNow.Add(-3*time.Hour)),
		tx(models.TypeExpense, "", 25, fixedNow.Add(-4*time.Hour)),
		// income never shows up in an expense breakdown
		tx(models.TypeIncome, "Salary", 3000, fixedNow.Add(-time.Hour)),
	}

	b, err := CategoryBreakdown(txs, PeriodMonth, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, 125.0, b.TotalExpenses)
	require.Equal(t, 3, b.CategoryCount)

	// sorted by total descending
	assert.Equal(t, "Food", b.Categories[0].Category)
	assert.Equal(t, 75.0, b.Categories[0].Total)
	assert.Equal(t, 2, b.Categories[0].Count)
	assert.Equal(t, 60.0, b.Categories[0].Percentage)

	// empty category lands in the Uncategorized bucket
	cats := make(map[string]CategoryShare)
	for _, cs := range b.Categories {
		cats[cs.Category] = cs
	}
	assert.Contains(t, cats, "Uncategorized")

	// percentages sum to 100 within float tolerance
	var sum float64
	for _, cs := range b.Categories {
		sum += cs.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.01)
}

func TestCategoryBreakdown_Empty(t *testing.T) {
	b, err := CategoryBreakdown(nil, PeriodWeek, fixedNow)
	require.NoError(t, err)
	assert.Zero(t, b.TotalExpenses)
	assert.Empty(t, b.Categories)
}

func TestBudgetProgress_UnderBudget(t *testing.T) {
	budget := models.Budget{
		ID:        7,
		UserID:    1,
		Name:      "Groceries",
		Amount:    200,
		Currency:  "USD",
		Period:    models.PeriodMonthly,
		Category:  "Food",
		StartDate: fixedNow.AddDate(0, 0, -10),
	}
	txs := []models.Transaction{
		tx(models.TypeExpense, "Food", 50, fixedNow.AddDate(0, 0, -1)),
		tx(models.TypeExpense, "Food", 30, fixedNow.AddDate(0, 0, -2)),
		// different category, not counted
		tx(models.TypeExpense, "Transport", 100, fixedNow.AddDate(0, 0, -1)),
		// before the budget started, not counted
		tx(models.TypeExpense, "Food", 100, fixedNow.AddDate(0, 0, -20)),
		// income is never "spent"
		tx(models.TypeIncome, "Food", 100, fixedNow.AddDate(0, 0, -1)),
	}

	p := BudgetProgress(budget, txs, fixedNow)
	assert.Equal(t, 80.0, p.Spent)
	assert.Equal(t, 120.0, p.Remaining)
	assert.Equal(t, 40.0, p.PercentUsed)
	assert.False(t, p.IsOverBudget)
	assert.Equal(t, BudgetStatusGood, p.Status)
}

func TestBudgetProgress_Warning(t *testing.T) {
	budget := models.Budget{
		Amount:    100,
		StartDate: fixedNow.AddDate(0, 0, -10),
	}
	txs := []models.Transaction{
		tx(models.TypeExpense, "Anything", 85, fixedNow.AddDate(0, 0, -1)),
	}

	p := BudgetProgress(budget, txs, fixedNow)
	assert.Equal(t, BudgetStatusWarning, p.Status)
	assert.False(t, p.IsOverBudget)
}

func TestBudgetProgress_Exceeded(t *testing.T) {
	budget := models.Budget{
		Amount:    100,
		StartDate: fixedNow.AddDate(0, 0, -10),
	}
	txs := []models.Transaction{
		tx(models.TypeExpense, "A", 90, fixedNow.AddDate(0, 0, -1)),
		tx(models.TypeExpense, "B", 40, fixedNow.AddDate(0, 0, -2)),
	}

	p := BudgetProgress(budget, txs, fixedNow)
	assert.Equal(t, 130.0, p.Spent)
	assert.Equal(t, -30.0, p.Remaining)
	assert.True(t, p.IsOverBudget)
	assert.Equal(t, BudgetStatusExceeded, p.Status)
}

func TestBudgetProgress_EndDateCapsWindow(t *testing.T) {
	end := fixedNow.AddDate(0, 0, -5)
	budget := models.Budget{
		Amount:    100,
		StartDate: fixedNow.AddDate(0, 0, -10),
		EndDate:   &end,
	}
	txs := []models.Transaction{
		tx(models.TypeExpense, "A", 40, fixedNow.AddDate(0, 0, -7)),
		// after the budget ended, not counted
		tx(models.TypeExpense, "A", 40, fixedNow.AddDate(0, 0, -1)),
	}

	p := BudgetProgress(budget, txs, fixedNow)
	assert.Equal(t, 40.0, p.Spent)
}

func TestBudgetProgress_Deterministic(t *testing.T) {
	budget := models.Budget{
		Amount:    100,
		StartDate: fixedNow.AddDate(0, 0, -10),
	}
	txs := []models.Transaction{
		tx(models.TypeExpense, "A", 33.33, fixedNow.AddDate(0, 0, -1)),
	}

	p1 := BudgetProgress(budget, txs, fixedNow)
	p2 := BudgetProgress(budget, txs, fixedNow)
	assert.Equal(t, p1, p2)
	assert.False(t, math.IsNaN(p1.PercentUsed))
}
