package infrastructure

import (
	"context"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/account"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

var _ account.Repository = (*AccountRepository)(nil)

type accountDB struct {
	Id        string          `gorm:"type:varchar(26);primaryKey"`
	UserId    string          `gorm:"type:varchar(26);index;not null"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Currency  string          `gorm:"type:varchar(3);not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

func (accountDB) TableName() string {
	return "accounts"
}

func toDomainAccount(adb *accountDB) (*account.Account, error) {
	id, err := pkg.ParseULID(adb.Id)
	if err != nil {
		return nil, err
	}

	userID, err := pkg.ParseULID(adb.UserId)
	if err != nil {
		return nil, err
	}

	return &account.Account{
		Id:        id,
		UserId:    userID,
		Name:      adb.Name,
		Currency:  adb.Currency,
		Balance:   adb.Balance,
		IsActive:  adb.IsActive,
		CreatedAt: adb.CreatedAt,
		UpdatedAt: adb.UpdatedAt,
	}, nil
}

func toDBAccount(a *account.Account) *accountDB {
	return &accountDB{
		Id:        a.Id.String(),
		UserId:    a.UserId.String(),
		Name:      a.Name,
		Currency:  a.Currency,
		Balance:   a.Balance,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	adb := toDBAccount(a)
	return r.DB.WithContext(ctx).Table("accounts").Create(adb).Error
}

func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	adb := toDBAccount(a)
	return r.DB.WithContext(ctx).Model(&accountDB{}).
		Where("id = ? AND user_id = ?", adb.Id, adb.UserId).
		Select("name", "is_active", "updated_at").
		Updates(adb).Error
}

func (r *AccountRepository) Delete(ctx context.Context, accountID, userID ulid.ULID) error {
	return r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", accountID.String(), userID.String()).Delete(&accountDB{}).Error
}

func (r *AccountRepository) GetById(ctx context.Context, accountID, userID ulid.ULID) (*account.Account, error) {
	var adb accountDB
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", accountID.String(), userID.String()).First(&adb).Error
	if err != nil {
		return nil, err
	}
	return toDomainAccount(&adb)
}

func (r *AccountRepository) GetByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*account.Account, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("accounts").Where("user_id = ?", userID.String())
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainAccount)
}

func (r *AccountRepository) ApplyBalanceDeltaWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID, delta decimal.Decimal) error {
	dbTx := tx.(*gorm.DB)
	return dbTx.WithContext(ctx).Model(&accountDB{}).Where("id = ?", accountID.String()).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta)).
		UpdateColumn("updated_at", time.Now()).Error
}
