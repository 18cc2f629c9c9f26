package mongodb

import (
	"fmt"
	"time"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type drawDocument struct {
	ID             string               `bson:"_id"`
	WinningNumbers []int                `bson:"winningNumbers"`
	DrawDate       time.Time            `bson:"drawDate"`
	TicketCount    int                  `bson:"ticketCount"`
	TotalFund      primitive.Decimal128 `bson:"totalFund"`
}

type prizeResultDocument struct {
	ID       string               `bson:"_id"`
	DrawID   string               `bson:"drawId"`
	TicketID int64                `bson:"ticketId"`
	UserID   int64                `bson:"userId"`
	Matches  int                  `bson:"matches"`
	Prize    primitive.Decimal128 `bson:"prize"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode decimal %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode decimal %s: %w", v, err)
	}
	return d, nil
}

func newDrawDocument(d *models.Draw) (drawDocument, error) {
	fund, err := toDecimal128(d.TotalFund)
	if err != nil {
		return drawDocument{}, err
	}
	return drawDocument{
		ID:             d.ID,
		WinningNumbers: d.WinningNumbers,
		DrawDate:       d.DrawDate,
		TicketCount:    d.TicketCount,
		TotalFund:      fund,
	}, nil
}

func (doc drawDocument) model() (models.Draw, error) {
	fund, err := fromDecimal128(doc.TotalFund)
	if err != nil {
		return models.Draw{}, err
	}
	return models.Draw{
		ID:             doc.ID,
		WinningNumbers: doc.WinningNumbers,
		DrawDate:       doc.DrawDate.UTC(),
		TicketCount:    doc.TicketCount,
		TotalFund:      fund,
	}, nil
}

func newPrizeResultDocument(pr models.PrizeResult) (prizeResultDocument, error) {
	prize, err := toDecimal128(pr.Prize)
	if err != nil {
		return prizeResultDocument{}, err
	}
	return prizeResultDocument{
		ID:       pr.ID,
		DrawID:   pr.DrawID,
		TicketID: pr.TicketID,
		UserID:   pr.UserID,
		Matches:  pr.Matches,
		Prize:    prize,
	}, nil
}

func (doc prizeResultDocument) model() (models.PrizeResult, error) {
	prize, err := fromDecimal128(doc.Prize)
	if err != nil {
		return models.PrizeResult{}, err
	}
	return models.PrizeResult{
		ID:       doc.ID,
		DrawID:   doc.DrawID,
		TicketID: doc.TicketID,
		UserID:   doc.UserID,
		Matches:  doc.Matches,
		Prize:    prize,
	}, nil
}
