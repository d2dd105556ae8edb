package infrastructure

import (
	"context"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/dashboard"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardRepository struct {
	DB *gorm.DB
}

var _ dashboard.Repository = (*DashboardRepository)(nil)

func (r *DashboardRepository) GetAccountTotals(ctx context.Context, userID ulid.ULID) ([]*dashboard.CurrencyTotal, error) {
	var rows []struct {
		Currency string
		Total    decimal.Decimal
	}
	err := r.DB.WithContext(ctx).Table("accounts").
		Select("currency, COALESCE(SUM(balance), 0) as total").
		Where("user_id = ? AND is_active = ?", userID.String(), true).
		Group("currency").
		Order("currency ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*dashboard.CurrencyTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, &dashboard.CurrencyTotal{Currency: row.Currency, Total: row.Total})
	}
	return out, nil
}

func (r *DashboardRepository) GetCardDebts(ctx context.Context, userID ulid.ULID) ([]*dashboard.CardDebt, error) {
	var rows []struct {
		CardId   string
		CardName string
		Currency string
		Balance  decimal.Decimal
	}
	err := r.DB.WithContext(ctx).Table("card_balances b").
		Select("b.card_id, c.name as card_name, b.currency, b.balance").
		Joins("JOIN credit_cards c ON c.id = b.card_id").
		Where("c.user_id = ? AND c.is_active = ?", userID.String(), true).
		Order("c.name ASC, b.currency ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*dashboard.CardDebt, 0, len(rows))
	for _, row := range rows {
		cardID, err := pkg.ParseULID(row.CardId)
		if err != nil {
			continue
		}
		out = append(out, &dashboard.CardDebt{
			CardId:   cardID,
			CardName: row.CardName,
			Currency: row.Currency,
			Balance:  row.Balance,
		})
	}
	return out, nil
}

func (r *DashboardRepository) GetMonthFlow(ctx context.Context, userID ulid.ULID, from, to time.Time, currency string) (*dashboard.MonthFlow, error) {
	var row struct {
		Income  decimal.Decimal
		Expense decimal.Decimal
	}
	err := r.DB.WithContext(ctx).Table("transactions").
		Select(`COALESCE(SUM(CASE WHEN kind = 'INCOME' THEN amount ELSE 0 END), 0) as income,
			COALESCE(SUM(CASE WHEN kind = 'EXPENSE' THEN amount ELSE 0 END), 0) as expense`).
		Where("user_id = ? AND currency = ? AND date >= ? AND date <= ?", userID.String(), currency, from, to).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &dashboard.MonthFlow{Income: row.Income, Expense: row.Expense}, nil
}

func (r *DashboardRepository) CountTransactions(ctx context.Context, userID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Table("transactions").Where("user_id = ?", userID.String()).Count(&count).Error
	return count, err
}
