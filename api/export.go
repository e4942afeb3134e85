package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler exports the transaction ledger.
type ExportHandler struct{}

// NewExportHandler creates an export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

func exportRange(c *gin.Context) (start, end string, ok bool) {
	start = c.Query("start_date")
	end = c.Query("end_date")

	if start == "" || end == "" {
		BadRequest(c, "start_date and end_date are required")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		BadRequest(c, "start_date must be YYYY-MM-DD")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		BadRequest(c, "end_date must be YYYY-MM-DD")
		return "", "", false
	}
	return start, end, true
}

func exportTransactions(userID uint, start, end string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := database.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC, id DESC").
		Find(&transactions).Error
	return transactions, err
}

// ExportCSV exports transactions as CSV
// @Summary Export transactions as CSV
// @Description Export the user's transactions in a date range as a CSV file.
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string true "Start date (2024-01-01)"
// @Param end_date query string true "End date (2024-12-31)"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, ok := exportRange(c)
	if !ok {
		return
	}

	transactions, err := exportTransactions(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	buf := new(bytes.Buffer)
	// BOM so Excel detects UTF-8
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"ID", "Date", "Category", "Amount", "Type", "Notes"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "failed to generate CSV")
		return
	}

	for _, tx := range transactions {
		row := []string{
			fmt.Sprintf("%d", tx.ID),
			tx.Date,
			tx.Category,
			fmt.Sprintf("%.2f", tx.Amount),
			tx.Type,
			tx.Notes,
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "failed to generate CSV")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "failed to generate CSV")
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv", start, end)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON exports transactions as JSON
// @Summary Export transactions as JSON
// @Description Export the user's transactions in a date range together with count and net total.
// @Tags export
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Start date (2024-01-01)"
// @Param end_date query string true "End date (2024-12-31)"
// @Success 200 {object} Response "exported"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, ok := exportRange(c)
	if !ok {
		return
	}

	transactions, err := exportTransactions(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	var netTotal float64
	for _, tx := range transactions {
		netTotal += tx.Amount
	}

	Success(c, gin.H{
		"start_date":   start,
		"end_date":     end,
		"total_count":  len(transactions),
		"net_total":    netTotal,
		"transactions": transactions,
	})
}

// ExportXLSX exports transactions as an Excel workbook
// @Summary Export transactions as XLSX
// @Description Export the user's transactions in a date range as a styled Excel workbook with a summary row.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string true "Start date (2024-01-01)"
// @Param end_date query string true "End date (2024-12-31)"
// @Success 200 {file} file "XLSX file"
// @Failure 400 {object} Response "invalid input"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/xlsx [get]
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, ok := exportRange(c)
	if !ok {
		return
	}

	transactions, err := exportTransactions(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Transactions"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 16)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 10)
	f.SetColWidth(sheetName, "F", "F", 30)

	headers := []string{"ID", "Date", "Category", "Amount", "Type", "Notes"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	var netTotal float64
	for i, tx := range transactions {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), tx.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), tx.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), tx.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), tx.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), tx.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), tx.Notes)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
		netTotal += tx.Amount
	}

	summaryRow := len(transactions) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Net total")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("C%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), netTotal)
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", summaryRow), fmt.Sprintf("%d records", len(transactions)))
	f.MergeCell(sheetName, fmt.Sprintf("E%d", summaryRow), fmt.Sprintf("F%d", summaryRow))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

	filename := fmt.Sprintf("transactions_%s_%s.xlsx", start, end)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "failed to generate workbook")
		return
	}
}
