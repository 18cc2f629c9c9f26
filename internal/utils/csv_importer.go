package utils

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
)

// TicketBuyer stores validated tickets
type TicketBuyer interface {
	Buy(ctx context.Context, req *models.BuyTicketsRequest) ([]models.Ticket, error)
}

// ImportResult summarises one CSV import
type ImportResult struct {
	TotalRows      int      `json:"totalRows"`
	TicketsCreated int      `json:"ticketsCreated"`
	Errors         []string `json:"errors"`
}

// CSVImporter loads tickets from CSV files
type CSVImporter struct {
	buyer TicketBuyer
}

// NewCSVImporter creates a new CSVImporter
func NewCSVImporter(buyer TicketBuyer) *CSVImporter {
	return &CSVImporter{buyer: buyer}
}

// ImportTickets reads one ticket per row. Rows that fail to parse or validate
// are reported in the result and skipped; the import itself only fails when
// the header is unusable.
func (i *CSVImporter) ImportTickets(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	userIdx := findColumnIndex(header, []string{"User ID", "UserID", "userId", "Chat ID"})
	numbersIdx := findColumnIndex(header, []string{"Numbers", "Ticket", "Ticket Numbers"})
	paidIdx := findColumnIndex(header, []string{"Paid", "Is Paid"})
	txIdx := findColumnIndex(header, []string{"Tx Hash", "TxHash", "Transaction"})
	if numbersIdx == -1 {
		return nil, errors.New("numbers column not found in CSV")
	}

	result := &ImportResult{Errors: []string{}}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		result.TotalRows++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", result.TotalRows, err))
			continue
		}

		numbers, err := parseNumbers(column(row, numbersIdx))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", result.TotalRows, err))
			continue
		}
		var userID int64
		if v := column(row, userIdx); v != "" {
			userID, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: invalid user id: %s", result.TotalRows, v))
				continue
			}
		}
		paid := true
		if v := column(row, paidIdx); v != "" {
			paid = parseBool(v)
		}

		req := &models.BuyTicketsRequest{
			UserID:  &userID,
			Tickets: [][]int{numbers},
			TxHash:  column(row, txIdx),
			Paid:    paid,
		}
		if _, err := i.buyer.Buy(ctx, req); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", result.TotalRows, err))
			continue
		}
		result.TicketsCreated++
	}
	return result, nil
}

// findColumnIndex finds the index of a column by possible names
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}

func column(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumbers accepts "1 2 3 4 5", "1-2-3-4-5" or "1;2;3;4;5"
func parseNumbers(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == ';' || r == '|'
	})
	if len(fields) == 0 {
		return nil, errors.New("no numbers")
	}
	numbers := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid number: %s", f)
		}
		numbers[i] = n
	}
	return numbers, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "true", "1", "y":
		return true
	}
	return false
}
