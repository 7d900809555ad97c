package handler

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/HarshaLokesh/phronetic-ai/internal/analytics"
	"github.com/HarshaLokesh/phronetic-ai/internal/currency"
	"github.com/HarshaLokesh/phronetic-ai/internal/middleware"
	"github.com/HarshaLokesh/phronetic-ai/internal/models"
	"github.com/HarshaLokesh/phronetic-ai/internal/transform"
	"github.com/HarshaLokesh/phronetic-ai/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AnalyticsHandler serves the breakdown, budget-progress, transform and
// currency-conversion endpoints.
type AnalyticsHandler struct {
	DB       *gorm.DB
	Currency *currency.Client
	Log      *logrus.Logger
}

func NewAnalyticsHandler(db *gorm.DB, cc *currency.Client, log *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{DB: db, Currency: cc, Log: log}
}

// ConvertCurrency forwards a conversion to the external rate provider.
func (h *AnalyticsHandler) ConvertCurrency(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "amount must be a number")
		return
	}

	conv, err := h.Currency.Convert(c.Request.Context(), amount,
		c.Query("from_currency"), c.Query("to_currency"))
	if err != nil {
		switch {
		case errors.Is(err, currency.ErrUnsupportedCurrency):
			util.Error(c, http.StatusBadRequest, "Currency not supported")
		case errors.Is(err, currency.ErrUpstream):
			h.Log.WithError(err).Error("currency provider failure")
			util.Error(c, http.StatusBadGateway, "Currency conversion service unavailable")
		default:
			util.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"original_amount":   conv.OriginalAmount,
		"original_currency": conv.OriginalCurrency,
		"converted_amount":  conv.ConvertedAmount,
		"target_currency":   conv.TargetCurrency,
		"conversion_rate":   conv.Rate,
		"last_updated":      conv.LastUpdated,
	})
}

// CategoryBreakdown returns the caller's expense split by category for a
// period window.
func (h *AnalyticsHandler) CategoryBreakdown(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	period := c.DefaultQuery("period", analytics.PeriodMonth)
	now := time.Now()
	start, err := analytics.PeriodStart(period, now)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "period must be day, week, month or year")
		return
	}

	var txs []models.Transaction
	if err := h.DB.Where(
		"user_id = ? AND transaction_type = ? AND date >= ? AND date < ?",
		user.ID, models.TypeExpense, start, now).
		Find(&txs).Error; err != nil {
		util.InternalError(c)
		return
	}

	breakdown, err := analytics.CategoryBreakdown(txs, period, now)
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"period":         breakdown.Period,
		"start_date":     breakdown.StartDate,
		"total_expenses": breakdown.TotalExpenses,
		"category_count": breakdown.CategoryCount,
		"breakdown":      breakdown.Categories,
	})
}

// BudgetProgress derives spend against every active budget of the caller.
func (h *AnalyticsHandler) BudgetProgress(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var budgets []models.Budget
	if err := h.DB.Where("user_id = ? AND is_active = ?", user.ID, true).
		Find(&budgets).Error; err != nil {
		util.InternalError(c)
		return
	}

	var txs []models.Transaction
	if err := h.DB.Where("user_id = ? AND transaction_type = ?",
		user.ID, models.TypeExpense).
		Find(&txs).Error; err != nil {
		util.InternalError(c)
		return
	}

	now := time.Now()
	progress := make([]analytics.Progress, 0, len(budgets))
	var good, warning, exceeded int
	for _, b := range budgets {
		p := analytics.BudgetProgress(b, txs, now)
		switch p.Status {
		case analytics.BudgetStatusGood:
			good++
		case analytics.BudgetStatusWarning:
			warning++
		case analytics.BudgetStatusExceeded:
			exceeded++
		}
		progress = append(progress, p)
	}
	// highest usage first
	sort.Slice(progress, func(i, j int) bool {
		return progress[i].PercentUsed > progress[j].PercentUsed
	})

	util.JSON(c, http.StatusOK, util.Response{
		"total_budgets":    len(progress),
		"active_budgets":   good,
		"warning_budgets":  warning,
		"exceeded_budgets": exceeded,
		"budgets":          progress,
	})
}

// TransformData applies one of the four named transformations to the
// supplied payload; the store is never consulted.
func (h *AnalyticsHandler) TransformData(c *gin.Context) {
	kind, err := transform.ParseKind(c.Query("transformation_type"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "transformation_type must be summarize, categorize, normalize or aggregate")
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := transform.Apply(kind, data)
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"transformation_type": string(kind),
		"result":              result,
		"timestamp":           time.Now().Format(time.RFC3339),
	})
}
