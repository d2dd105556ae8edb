package transaction

import (
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	Income  Kind = "INCOME"
	Expense Kind = "EXPENSE"
)

func (k Kind) IsValid() bool {
	switch k {
	case Income, Expense:
		return true
	}
	return false
}

// Transaction registra um evento monetário. A origem é no máximo uma entre
// conta bancária e cartão de crédito; TargetCardId só é preenchido junto com
// IsCardPayment=true e uma conta bancária como origem (pagamento de fatura).
type Transaction struct {
	Id            ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId        ulid.ULID       `gorm:"type:varchar(26);index:idx_transactions_user_id;index:idx_transactions_user_date,priority:1;not null" json:"userId"`
	Kind          Kind            `gorm:"type:varchar(10);not null;index:idx_transactions_kind" json:"kind"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency      string          `gorm:"type:varchar(3);not null" json:"currency"`
	Category      string          `gorm:"type:varchar(100);not null" json:"category"`
	Description   string          `gorm:"type:varchar(255)" json:"description"`
	Date          time.Time       `gorm:"type:date;not null;index:idx_transactions_user_date,priority:2" json:"date"`
	AccountId     *ulid.ULID      `gorm:"type:varchar(26);index:idx_transactions_account_id" json:"accountId"`
	CreditCardId  *ulid.ULID      `gorm:"type:varchar(26);index:idx_transactions_credit_card_id" json:"creditCardId"`
	IsCardPayment bool            `gorm:"not null;default:false" json:"isCardPayment"`
	TargetCardId  *ulid.ULID      `gorm:"type:varchar(26);index:idx_transactions_target_card_id" json:"targetCardId"`
	RecurringId   *ulid.ULID      `gorm:"type:varchar(26);index:idx_transactions_recurring_id" json:"recurringId"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func TransactionCreateStruct(t *Transaction) {
	t.Id = pkg.GenerateULIDObject()
	now := pkg.SetTimestamps()
	t.CreatedAt = now
	t.UpdatedAt = now
}
