package infrastructure

import (
	"context"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/recurring"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecurringRepository struct {
	DB *gorm.DB
}

var _ recurring.Repository = (*RecurringRepository)(nil)

type recurringDB struct {
	Id            string          `gorm:"type:varchar(26);primaryKey"`
	UserId        string          `gorm:"type:varchar(26);index;not null"`
	Kind          string          `gorm:"type:varchar(10);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	Category      string          `gorm:"type:varchar(100);not null"`
	Description   string          `gorm:"size:255"`
	AccountId     *string         `gorm:"type:varchar(26);index"`
	CreditCardId  *string         `gorm:"type:varchar(26);index"`
	IsCardPayment bool            `gorm:"not null;default:false"`
	TargetCardId  *string         `gorm:"type:varchar(26)"`
	Frequency     string          `gorm:"type:varchar(10);not null"`
	StartDate     time.Time       `gorm:"type:date;not null"`
	EndDate       *time.Time      `gorm:"type:date"`
	LastGenerated *time.Time      `gorm:"type:date"`
	NextDue       time.Time       `gorm:"type:date;not null;index"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (recurringDB) TableName() string {
	return "recurring_transactions"
}

func toDomainRecurring(rdb *recurringDB) (*recurring.RecurringTransaction, error) {
	id, err := pkg.ParseULID(rdb.Id)
	if err != nil {
		return nil, err
	}
	userID, err := pkg.ParseULID(rdb.UserId)
	if err != nil {
		return nil, err
	}

	accountID, err := pkg.ParseULIDPtr(rdb.AccountId)
	if err != nil {
		return nil, err
	}
	cardID, err := pkg.ParseULIDPtr(rdb.CreditCardId)
	if err != nil {
		return nil, err
	}
	targetCardID, err := pkg.ParseULIDPtr(rdb.TargetCardId)
	if err != nil {
		return nil, err
	}

	return &recurring.RecurringTransaction{
		Id:            id,
		UserId:        userID,
		Kind:          transaction.Kind(rdb.Kind),
		Amount:        rdb.Amount,
		Currency:      rdb.Currency,
		Category:      rdb.Category,
		Description:   rdb.Description,
		AccountId:     accountID,
		CreditCardId:  cardID,
		IsCardPayment: rdb.IsCardPayment,
		TargetCardId:  targetCardID,
		Frequency:     recurring.FrequencyType(rdb.Frequency),
		StartDate:     rdb.StartDate,
		EndDate:       rdb.EndDate,
		LastGenerated: rdb.LastGenerated,
		NextDue:       rdb.NextDue,
		IsActive:      rdb.IsActive,
		CreatedAt:     rdb.CreatedAt,
		UpdatedAt:     rdb.UpdatedAt,
	}, nil
}

func toDBRecurring(r *recurring.RecurringTransaction) *recurringDB {
	ulidToStringPtr := func(id *ulid.ULID) *string {
		if id == nil {
			return nil
		}
		s := id.String()
		return &s
	}

	return &recurringDB{
		Id:            r.Id.String(),
		UserId:        r.UserId.String(),
		Kind:          string(r.Kind),
		Amount:        r.Amount,
		Currency:      r.Currency,
		Category:      r.Category,
		Description:   r.Description,
		AccountId:     ulidToStringPtr(r.AccountId),
		CreditCardId:  ulidToStringPtr(r.CreditCardId),
		IsCardPayment: r.IsCardPayment,
		TargetCardId:  ulidToStringPtr(r.TargetCardId),
		Frequency:     string(r.Frequency),
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		LastGenerated: r.LastGenerated,
		NextDue:       r.NextDue,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *RecurringRepository) Create(ctx context.Context, rec *recurring.RecurringTransaction) error {
	rdb := toDBRecurring(rec)
	return r.DB.WithContext(ctx).Table("recurring_transactions").Create(rdb).Error
}

func (r *RecurringRepository) Update(ctx context.Context, rec *recurring.RecurringTransaction) error {
	rdb := toDBRecurring(rec)
	return r.DB.WithContext(ctx).Model(&recurringDB{}).
		Where("id = ? AND user_id = ?", rdb.Id, rdb.UserId).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(rdb).Error
}

func (r *RecurringRepository) Delete(ctx context.Context, recurringID, userID ulid.ULID) error {
	return r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", recurringID.String(), userID.String()).Delete(&recurringDB{}).Error
}

func (r *RecurringRepository) GetById(ctx context.Context, recurringID, userID ulid.ULID) (*recurring.RecurringTransaction, error) {
	var rdb recurringDB
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", recurringID.String(), userID.String()).First(&rdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainRecurring(&rdb)
}

func (r *RecurringRepository) GetByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*recurring.RecurringTransaction, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("recurring_transactions").Where("user_id = ?", userID.String())
	return pkg.Paginate(baseQuery, pagination, "next_due ASC", toDomainRecurring)
}

func (r *RecurringRepository) GetDueByUserId(ctx context.Context, userID ulid.ULID, asOf time.Time) ([]*recurring.RecurringTransaction, error) {
	var rows []recurringDB
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND next_due <= ?", userID.String(), true, asOf).
		Order("next_due ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*recurring.RecurringTransaction, 0, len(rows))
	for i := range rows {
		rec, err := toDomainRecurring(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *RecurringRepository) SetActive(ctx context.Context, recurringID, userID ulid.ULID, active bool) error {
	result := r.DB.WithContext(ctx).Model(&recurringDB{}).
		Where("id = ? AND user_id = ?", recurringID.String(), userID.String()).
		UpdateColumn("is_active", active).
		UpdateColumn("updated_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RecurringRepository) AdvanceScheduleWithTx(ctx context.Context, tx interface{}, recurringID ulid.ULID, expectedNextDue, lastGenerated, nextDue time.Time, isActive bool) (bool, error) {
	dbTx := tx.(*gorm.DB)
	result := dbTx.WithContext(ctx).Model(&recurringDB{}).
		Where("id = ? AND next_due = ?", recurringID.String(), expectedNextDue).
		UpdateColumns(map[string]interface{}{
			"last_generated": lastGenerated,
			"next_due":       nextDue,
			"is_active":      isActive,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
