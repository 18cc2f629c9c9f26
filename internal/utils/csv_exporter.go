package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
)

var resultsHeader = []string{"Draw ID", "Winning Numbers", "Ticket ID", "User ID", "Matches", "Prize"}

// WriteResultsCSV writes one row per prize result of d
func WriteResultsCSV(w io.Writer, d *models.Draw, results []models.PrizeResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(resultsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	winning := FormatNumbers(d.WinningNumbers)
	for _, r := range results {
		row := []string{
			d.ID,
			winning,
			strconv.FormatInt(r.TicketID, 10),
			strconv.FormatInt(r.UserID, 10),
			strconv.Itoa(r.Matches),
			r.Prize.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write result %s: %w", r.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// FormatNumbers renders numbers the way the importer reads them back
func FormatNumbers(numbers []int) string {
	b := make([]byte, 0, len(numbers)*3)
	for i, n := range numbers {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendInt(b, int64(n), 10)
	}
	return string(b)
}
