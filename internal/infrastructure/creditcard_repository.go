package infrastructure

import (
	"context"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/creditcard"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreditCardRepository struct {
	DB *gorm.DB
}

var _ creditcard.Repository = (*CreditCardRepository)(nil)

type creditCardDB struct {
	Id             string    `gorm:"type:varchar(26);primaryKey"`
	UserId         string    `gorm:"type:varchar(26);index;not null"`
	Name           string    `gorm:"type:varchar(100);not null"`
	LastFourDigits string    `gorm:"type:varchar(4)"`
	IsActive       bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (creditCardDB) TableName() string {
	return "credit_cards"
}

type cardBalanceDB struct {
	Id          string          `gorm:"type:varchar(26);primaryKey"`
	CardId      string          `gorm:"type:varchar(26);uniqueIndex:idx_card_balances_card_currency;not null"`
	Currency    string          `gorm:"type:varchar(3);uniqueIndex:idx_card_balances_card_currency;not null"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Balance     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (cardBalanceDB) TableName() string {
	return "card_balances"
}

func toDomainCreditCard(cdb *creditCardDB) (*creditcard.CreditCard, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}

	userID, err := pkg.ParseULID(cdb.UserId)
	if err != nil {
		return nil, err
	}

	return &creditcard.CreditCard{
		Id:             id,
		UserId:         userID,
		Name:           cdb.Name,
		LastFourDigits: cdb.LastFourDigits,
		IsActive:       cdb.IsActive,
		CreatedAt:      cdb.CreatedAt,
		UpdatedAt:      cdb.UpdatedAt,
	}, nil
}

func toDBCreditCard(c *creditcard.CreditCard) *creditCardDB {
	return &creditCardDB{
		Id:             c.Id.String(),
		UserId:         c.UserId.String(),
		Name:           c.Name,
		LastFourDigits: c.LastFourDigits,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toDomainCardBalance(bdb *cardBalanceDB) (*creditcard.CardBalance, error) {
	id, err := pkg.ParseULID(bdb.Id)
	if err != nil {
		return nil, err
	}

	cardID, err := pkg.ParseULID(bdb.CardId)
	if err != nil {
		return nil, err
	}

	return &creditcard.CardBalance{
		Id:          id,
		CardId:      cardID,
		Currency:    bdb.Currency,
		CreditLimit: bdb.CreditLimit,
		Balance:     bdb.Balance,
		CreatedAt:   bdb.CreatedAt,
		UpdatedAt:   bdb.UpdatedAt,
	}, nil
}

func (r *CreditCardRepository) CreateCreditCard(ctx context.Context, c *creditcard.CreditCard) error {
	cdb := toDBCreditCard(c)
	return r.DB.WithContext(ctx).Table("credit_cards").Create(cdb).Error
}

func (r *CreditCardRepository) UpdateCreditCard(ctx context.Context, c *creditcard.CreditCard) error {
	cdb := toDBCreditCard(c)
	return r.DB.WithContext(ctx).Model(&creditCardDB{}).
		Where("id = ? AND user_id = ?", cdb.Id, cdb.UserId).
		Select("name", "last_four_digits", "is_active", "updated_at").
		Updates(cdb).Error
}

func (r *CreditCardRepository) DeleteCreditCard(ctx context.Context, cardID, userID ulid.ULID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", cardID.String(), userID.String()).Delete(&creditCardDB{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("card_id = ?", cardID.String()).Delete(&cardBalanceDB{}).Error
	})
}

func (r *CreditCardRepository) GetCreditCardById(ctx context.Context, cardID, userID ulid.ULID) (*creditcard.CreditCard, error) {
	var cdb creditCardDB
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", cardID.String(), userID.String()).First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCreditCard(&cdb)
}

func (r *CreditCardRepository) GetCreditCardsByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*creditcard.CreditCard, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("credit_cards").Where("user_id = ?", userID.String())
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainCreditCard)
}

func (r *CreditCardRepository) GetBalances(ctx context.Context, cardID ulid.ULID) ([]*creditcard.CardBalance, error) {
	var rows []cardBalanceDB
	err := r.DB.WithContext(ctx).Where("card_id = ?", cardID.String()).Order("currency ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*creditcard.CardBalance, 0, len(rows))
	for i := range rows {
		balance, err := toDomainCardBalance(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, balance)
	}
	return out, nil
}

func (r *CreditCardRepository) GetBalance(ctx context.Context, cardID ulid.ULID, currency string) (*creditcard.CardBalance, error) {
	var bdb cardBalanceDB
	err := r.DB.WithContext(ctx).Where("card_id = ? AND currency = ?", cardID.String(), currency).First(&bdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCardBalance(&bdb)
}

func (r *CreditCardRepository) SetCreditLimit(ctx context.Context, cardID ulid.ULID, currency string, limit decimal.Decimal) error {
	now := time.Now()
	row := &cardBalanceDB{
		Id:          pkg.GenerateULID(),
		CardId:      cardID.String(),
		Currency:    currency,
		CreditLimit: limit,
		Balance:     decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "currency"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"credit_limit": limit, "updated_at": now}),
	}).Create(row).Error
}

func (r *CreditCardRepository) EnsureBalanceWithTx(ctx context.Context, tx interface{}, cardID ulid.ULID, currency string) error {
	dbTx := tx.(*gorm.DB)
	now := time.Now()
	row := &cardBalanceDB{
		Id:          pkg.GenerateULID(),
		CardId:      cardID.String(),
		Currency:    currency,
		CreditLimit: decimal.Zero,
		Balance:     decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return dbTx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "currency"}},
		DoNothing: true,
	}).Create(row).Error
}

func (r *CreditCardRepository) ApplyBalanceDeltaWithTx(ctx context.Context, tx interface{}, cardID ulid.ULID, currency string, delta decimal.Decimal) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Model(&cardBalanceDB{}).
		Where("card_id = ? AND currency = ?", cardID.String(), currency).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta)).
		UpdateColumn("updated_at", time.Now()).Error
}
