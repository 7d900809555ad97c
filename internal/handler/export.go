package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/HarshaLokesh/phronetic-ai/internal/middleware"
	"github.com/HarshaLokesh/phronetic-ai/internal/models"
	"github.com/HarshaLokesh/phronetic-ai/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler writes the caller's transactions as CSV or XLSX downloads.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Type", "Category", "Amount", "Currency", "Description", "Date"}

func (h *ExportHandler) loadTransactions(c *gin.Context) ([]models.Transaction, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}

	var txs []models.Transaction
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC").
		Find(&txs).Error; err != nil {
		util.InternalError(c)
		return nil, false
	}
	return txs, true
}

func exportRow(t *models.Transaction) []string {
	return []string{
		t.TransactionType,
		t.Category,
		strconv.FormatFloat(t.Amount, 'f', 2, 64),
		t.Currency,
		t.Description,
		t.Date.Format("2006-01-02"),
	}
}

// CSV streams the caller's transactions as a CSV attachment.
func (h *ExportHandler) CSV(c *gin.Context) {
	txs, ok := h.loadTransactions(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range txs {
		writer.Write(exportRow(&txs[i]))
	}
}

// XLSX streams the caller's transactions as a spreadsheet attachment.
func (h *ExportHandler) XLSX(c *gin.Context) {
	txs, ok := h.loadTransactions(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.InternalError(c)
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range txs {
		row := idx + 2
		for col, value := range exportRow(&txs[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 30)
	f.SetColWidth(sheetName, "F", "F", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.InternalError(c)
	}
}
