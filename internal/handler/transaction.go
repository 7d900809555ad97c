package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/HarshaLokesh/phronetic-ai/internal/analytics"
	"github.com/HarshaLokesh/phronetic-ai/internal/middleware"
	"github.com/HarshaLokesh/phronetic-ai/internal/models"
	"github.com/HarshaLokesh/phronetic-ai/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TransactionHandler serves transaction CRUD and the period summary.
type TransactionHandler struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewTransactionHandler(db *gorm.DB, log *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{DB: db, Log: log}
}

type transactionReq struct {
	Amount          float64 `json:"amount" binding:"required"`
	Currency        string  `json:"currency"`
	Description     string  `json:"description" binding:"required,max=255"`
	Category        string  `json:"category" binding:"max=100"`
	TransactionType string  `json:"transaction_type" binding:"required"`
	Date            string  `json:"date"`
}

// validate normalizes the payload and reports the first problem found.
func (r *transactionReq) validate() (currency string, date time.Time, err error) {
	if err = util.ValidateAmount(r.Amount); err != nil {
		return "", time.Time{}, errors.New("amount must be positive")
	}
	if !models.ValidTransactionType(r.TransactionType) {
		return "", time.Time{}, errors.New("transaction_type must be income, expense or transfer")
	}
	currency = "USD"
	if r.Currency != "" {
		if currency, err = util.ValidateCurrencyCode(r.Currency); err != nil {
			return "", time.Time{}, errors.New("currency must be a 3-letter code")
		}
	}
	date = time.Now()
	if r.Date != "" {
		if date, err = util.ParseDate(r.Date); err != nil {
			return "", time.Time{}, errors.New("invalid date format")
		}
	}
	return currency, date, nil
}

// Create stores a new transaction owned by the caller.
func (h *TransactionHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	currency, date, err := req.validate()
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	tx := models.Transaction{
		UserID:          user.ID,
		Amount:          req.Amount,
		Currency:        currency,
		Description:     strings.TrimSpace(req.Description),
		Category:        strings.TrimSpace(req.Category),
		TransactionType: req.TransactionType,
		Date:            date,
	}

	if err := h.DB.Create(&tx).Error; err != nil {
		util.InternalError(c)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"username":       user.Username,
	}).Info("transaction created")
	util.JSON(c, http.StatusCreated, util.Response{"transaction": tx})
}

// List returns the caller's transactions, newest first, with optional
// type/category/date filters. All queries are scoped to the acting user.
func (h *TransactionHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if skip < 0 {
		skip = 0
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	q := h.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)

	if txType := c.Query("transaction_type"); txType != "" {
		if !models.ValidTransactionType(txType) {
			util.Error(c, http.StatusBadRequest, "transaction_type must be income, expense or transfer")
			return
		}
		q = q.Where("transaction_type = ?", txType)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := util.ParseDate(startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid start_date")
			return
		}
		q = q.Where("date >= ?", start)
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := util.ParseDate(endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid end_date")
			return
		}
		q = q.Where("date <= ?", end)
	}

	var txs []models.Transaction
	if err := q.Order("date DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&txs).Error; err != nil {
		util.InternalError(c)
		return
	}

	util.JSON(c, http.StatusOK, util.Response{"transactions": txs})
}

// Get returns one transaction. Another user's transaction is a 404, never a
// 403; existence must not leak.
func (h *TransactionHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var tx models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Transaction not found")
		} else {
			util.InternalError(c)
		}
		return
	}

	util.JSON(c, http.StatusOK, util.Response{"transaction": tx})
}

// Update rewrites a transaction owned by the caller.
func (h *TransactionHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	currency, date, err := req.validate()
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var tx models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Transaction not found")
		} else {
			util.InternalError(c)
		}
		return
	}

	tx.Amount = req.Amount
	tx.Currency = currency
	tx.Description = strings.TrimSpace(req.Description)
	tx.Category = strings.TrimSpace(req.Category)
	tx.TransactionType = req.TransactionType
	tx.Date = date

	if err := h.DB.Save(&tx).Error; err != nil {
		util.InternalError(c)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"username":       user.Username,
	}).Info("transaction updated")
	util.JSON(c, http.StatusOK, util.Response{"transaction": tx})
}

// Delete hard-deletes a transaction owned by the caller.
func (h *TransactionHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Transaction{})
	if res.Error != nil {
		util.InternalError(c)
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Transaction not found")
		return
	}

	h.Log.WithFields(logrus.Fields{
		"transaction_id": id,
		"username":       user.Username,
	}).Info("transaction deleted")
	c.Status(http.StatusNoContent)
}

// Summary aggregates the caller's transactions over the requested period
// window ending now.
func (h *TransactionHandler) Summary(c *gin.Context) {
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
	if err := h.DB.Where("user_id = ? AND date >= ? AND date < ?",
		user.ID, start, now).
		Find(&txs).Error; err != nil {
		util.InternalError(c)
		return
	}

	summary, err := analytics.Summary(txs, period, now)
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	util.JSON(c, http.StatusOK, util.Response{"summary": summary})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
