package infrastructure

import (
	"context"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

type transactionDB struct {
	Id            string          `gorm:"type:varchar(26);primaryKey"`
	UserId        string          `gorm:"type:varchar(26);index;not null"`
	Kind          string          `gorm:"type:varchar(10);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	Category      string          `gorm:"type:varchar(100);not null"`
	Description   string          `gorm:"size:255"`
	Date          time.Time       `gorm:"type:date;not null;index"`
	AccountId     *string         `gorm:"type:varchar(26);index"`
	CreditCardId  *string         `gorm:"type:varchar(26);index"`
	IsCardPayment bool            `gorm:"not null;default:false"`
	TargetCardId  *string         `gorm:"type:varchar(26);index"`
	RecurringId   *string         `gorm:"type:varchar(26);index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (transactionDB) TableName() string {
	return "transactions"
}

func toDomainTransaction(tdb *transactionDB) (*transaction.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(tdb.UserId)
	if err != nil {
		return nil, err
	}

	accountID, err := pkg.ParseULIDPtr(tdb.AccountId)
	if err != nil {
		return nil, err
	}
	cardID, err := pkg.ParseULIDPtr(tdb.CreditCardId)
	if err != nil {
		return nil, err
	}
	targetCardID, err := pkg.ParseULIDPtr(tdb.TargetCardId)
	if err != nil {
		return nil, err
	}
	recurringID, err := pkg.ParseULIDPtr(tdb.RecurringId)
	if err != nil {
		return nil, err
	}

	return &transaction.Transaction{
		Id:            id,
		UserId:        uid,
		Kind:          transaction.Kind(tdb.Kind),
		Amount:        tdb.Amount,
		Currency:      tdb.Currency,
		Category:      tdb.Category,
		Description:   tdb.Description,
		Date:          tdb.Date,
		AccountId:     accountID,
		CreditCardId:  cardID,
		IsCardPayment: tdb.IsCardPayment,
		TargetCardId:  targetCardID,
		RecurringId:   recurringID,
		CreatedAt:     tdb.CreatedAt,
		UpdatedAt:     tdb.UpdatedAt,
	}, nil
}

func toDBTransaction(t *transaction.Transaction) *transactionDB {
	ulidToStringPtr := func(id *ulid.ULID) *string {
		if id == nil {
			return nil
		}
		s := id.String()
		return &s
	}

	return &transactionDB{
		Id:            t.Id.String(),
		UserId:        t.UserId.String(),
		Kind:          string(t.Kind),
		Amount:        t.Amount,
		Currency:      t.Currency,
		Category:      t.Category,
		Description:   t.Description,
		Date:          t.Date,
		AccountId:     ulidToStringPtr(t.AccountId),
		CreditCardId:  ulidToStringPtr(t.CreditCardId),
		IsCardPayment: t.IsCardPayment,
		TargetCardId:  ulidToStringPtr(t.TargetCardId),
		RecurringId:   ulidToStringPtr(t.RecurringId),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (r *TransactionRepository) BeginTx(ctx context.Context) (interface{}, error) {
	tx := r.DB.WithContext(ctx).Begin()
	return tx, tx.Error
}

func (r *TransactionRepository) CommitTx(tx interface{}) error {
	return tx.(*gorm.DB).Commit().Error
}

func (r *TransactionRepository) RollbackTx(tx interface{}) error {
	return tx.(*gorm.DB).Rollback().Error
}

func (r *TransactionRepository) CreateWithTx(ctx context.Context, tx interface{}, t *transaction.Transaction) error {
	dbTx := tx.(*gorm.DB)
	tdb := toDBTransaction(t)
	return dbTx.WithContext(ctx).Table("transactions").Create(tdb).Error
}

func (r *TransactionRepository) UpdateWithTx(ctx context.Context, tx interface{}, t *transaction.Transaction) error {
	dbTx := tx.(*gorm.DB)
	tdb := toDBTransaction(t)
	// Select("*") grava também os ponteiros que voltaram a nil
	return dbTx.WithContext(ctx).Model(&transactionDB{}).
		Where("id = ? AND user_id = ?", tdb.Id, tdb.UserId).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(tdb).Error
}

func (r *TransactionRepository) DeleteWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Where("id = ?", transactionID.String()).Delete(&transactionDB{}).Error
}

func (r *TransactionRepository) GetByIDAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error) {
	var tdb transactionDB
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", transactionID.String(), userID.String()).First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) GetAll(ctx context.Context, userID ulid.ULID, accountID *ulid.ULID, filters *transaction.TransactionFilters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("transactions").Where("user_id = ?", userID.String())

	if accountID != nil {
		baseQuery = baseQuery.Where("account_id = ?", accountID.String())
	}

	if filters != nil {
		if filters.Kind != nil && *filters.Kind != "" {
			baseQuery = baseQuery.Where("kind = ?", string(*filters.Kind))
		}

		if filters.Category != nil && *filters.Category != "" {
			baseQuery = baseQuery.Where("category = ?", *filters.Category)
		}

		if filters.Search != nil && *filters.Search != "" {
			baseQuery = baseQuery.Where("description ILIKE ?", "%"+*filters.Search+"%")
		}

		if filters.DateFrom != nil {
			baseQuery = baseQuery.Where("date >= ?", *filters.DateFrom)
		}

		if filters.DateTo != nil {
			baseQuery = baseQuery.Where("date <= ?", *filters.DateTo)
		}
	}

	return pkg.Paginate(baseQuery, pagination, "date DESC, created_at DESC", toDomainTransaction)
}

func (r *TransactionRepository) GetNumberOfTransactions(ctx context.Context, userID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&transactionDB{}).Where("user_id = ?", userID.String()).Count(&count).Error
	return count, err
}
