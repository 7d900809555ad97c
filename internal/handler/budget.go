package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/HarshaLokesh/phronetic-ai/internal/middleware"
	"github.com/HarshaLokesh/phronetic-ai/internal/models"
	"github.com/HarshaLokesh/phronetic-ai/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BudgetHandler serves budget CRUD. Progress is derived in the analytics
// endpoints, never stored here.
type BudgetHandler struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewBudgetHandler(db *gorm.DB, log *logrus.Logger) *BudgetHandler {
	return &BudgetHandler{DB: db, Log: log}
}

type budgetReq struct {
	Name      string  `json:"name" binding:"required,max=100"`
	Amount    float64 `json:"amount" binding:"required"`
	Currency  string  `json:"currency"`
	Period    string  `json:"period"`
	Category  string  `json:"category" binding:"max=100"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date"`
}

// Create stores a new budget owned by the caller.
func (h *BudgetHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, "amount must be positive")
		return
	}

	period := req.Period
	if period == "" {
		period = models.PeriodMonthly
	}
	if !models.ValidBudgetPeriod(period) {
		util.Error(c, http.StatusBadRequest, "period must be daily, weekly, monthly or yearly")
		return
	}

	currency := "USD"
	if req.Currency != "" {
		var err error
		if currency, err = util.ValidateCurrencyCode(req.Currency); err != nil {
			util.Error(c, http.StatusBadRequest, "currency must be a 3-letter code")
			return
		}
	}

	start, err := util.ParseDate(req.StartDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid start_date")
		return
	}

	var end *time.Time
	if req.EndDate != "" {
		e, err := util.ParseDate(req.EndDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid end_date")
			return
		}
		if e.Before(start) {
			util.Error(c, http.StatusBadRequest, "end_date must not precede start_date")
			return
		}
		end = &e
	}

	budget := models.Budget{
		UserID:    user.ID,
		Name:      strings.TrimSpace(req.Name),
		Amount:    req.Amount,
		Currency:  currency,
		Period:    period,
		Category:  strings.TrimSpace(req.Category),
		StartDate: start,
		EndDate:   end,
		IsActive:  true,
	}

	if err := h.DB.Create(&budget).Error; err != nil {
		util.InternalError(c)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"budget_id": budget.ID,
		"username":  user.Username,
	}).Info("budget created")
	util.JSON(c, http.StatusCreated, util.Response{"budget": budget})
}

// List returns the caller's budgets.
func (h *BudgetHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var budgets []models.Budget
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&budgets).Error; err != nil {
		util.InternalError(c)
		return
	}

	util.JSON(c, http.StatusOK, util.Response{"budgets": budgets})
}

// Delete removes a budget owned by the caller; another user's budget is 404.
func (h *BudgetHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid budget id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Budget{})
	if res.Error != nil {
		util.InternalError(c)
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Budget not found")
		return
	}

	c.Status(http.StatusNoContent)
}
