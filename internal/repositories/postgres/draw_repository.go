package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	"github.com/jmoiron/sqlx"
)

var (
	_ repositories.SettlementRepository  = (*DrawRepository)(nil)
	_ repositories.DrawRepository        = (*DrawRepository)(nil)
	_ repositories.PrizeResultRepository = (*DrawRepository)(nil)
)

// DrawRepository stores draws and their prize results
type DrawRepository struct {
	db *sqlx.DB
}

// NewDrawRepository creates a new DrawRepository
func NewDrawRepository(db *sqlx.DB) *DrawRepository {
	return &DrawRepository{db: db}
}

const (
	insertDraw = `INSERT INTO draws (id, winning_numbers, draw_date, ticket_count, total_fund)
VALUES ($1, $2, $3, $4, $5)`
	insertPrizeResult = `INSERT INTO prize_results (id, draw_id, ticket_id, user_id, matches, prize)
VALUES ($1, $2, $3, $4, $5, $6)`
)

// Settle writes the draw and every result in one transaction. Nothing is
// committed unless every insert succeeds.
func (r *DrawRepository) Settle(ctx context.Context, draw *models.Draw, results []models.PrizeResult) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settlement: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, insertDraw,
		draw.ID, toInt64Array(draw.WinningNumbers), draw.DrawDate, draw.TicketCount, draw.TotalFund,
	); err != nil {
		return fmt.Errorf("insert draw %s: %w", draw.ID, err)
	}

	if len(results) > 0 {
		var stmt *sqlx.Stmt
		stmt, err = tx.PreparexContext(ctx, insertPrizeResult)
		if err != nil {
			return fmt.Errorf("prepare prize results: %w", err)
		}
		defer stmt.Close()

		for _, pr := range results {
			if _, err = stmt.ExecContext(ctx, pr.ID, pr.DrawID, pr.TicketID, pr.UserID, pr.Matches, pr.Prize); err != nil {
				return fmt.Errorf("insert prize result for ticket %d: %w", pr.TicketID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit settlement: %w", err)
	}
	return nil
}

// ListRecent returns at most limit draws, newest first
func (r *DrawRepository) ListRecent(ctx context.Context, limit int) ([]models.Draw, error) {
	var rows []drawRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, winning_numbers, draw_date, ticket_count, total_fund FROM draws ORDER BY draw_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent draws: %w", err)
	}
	draws := make([]models.Draw, len(rows))
	for i, row := range rows {
		draws[i] = row.model()
	}
	return draws, nil
}

// FindByID returns repositories.ErrNotFound for unknown ids
func (r *DrawRepository) FindByID(ctx context.Context, id string) (*models.Draw, error) {
	var row drawRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, winning_numbers, draw_date, ticket_count, total_fund FROM draws WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find draw %s: %w", id, err)
	}
	d := row.model()
	return &d, nil
}

// FindByDrawID returns a draw's results, highest tier first
func (r *DrawRepository) FindByDrawID(ctx context.Context, drawID string) ([]models.PrizeResult, error) {
	var rows []prizeResultRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, draw_id, ticket_id, user_id, matches, prize FROM prize_results WHERE draw_id = $1 ORDER BY matches DESC, ticket_id`, drawID)
	if err != nil {
		return nil, fmt.Errorf("find prize results for draw %s: %w", drawID, err)
	}
	results := make([]models.PrizeResult, len(rows))
	for i, row := range rows {
		results[i] = row.model()
	}
	return results, nil
}
