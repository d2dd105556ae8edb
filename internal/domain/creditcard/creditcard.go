package creditcard

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type CreditCard struct {
	Id             ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId         ulid.ULID `gorm:"type:varchar(26);index:idx_credit_cards_user_id;not null" json:"userId"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	LastFourDigits string    `gorm:"type:varchar(4)" json:"lastFourDigits"`
	IsActive       bool      `gorm:"not null;default:true;index:idx_credit_cards_active" json:"isActive"`
	CreatedAt      time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (CreditCard) TableName() string {
	return "credit_cards"
}

// CardBalance guarda o saldo devedor de um cartão em uma moeda. Existe no
// máximo uma linha por par (cartão, moeda); a linha é criada sob demanda na
// primeira transação que toca a moeda, com limite zero. Limite zero significa
// "não informado", não "sem crédito".
type CardBalance struct {
	Id          ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	CardId      ulid.ULID       `gorm:"type:varchar(26);not null;index:idx_card_balances_card_currency,unique,priority:1" json:"cardId"`
	Currency    string          `gorm:"type:varchar(3);not null;index:idx_card_balances_card_currency,unique,priority:2" json:"currency"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"creditLimit"`
	Balance     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (CardBalance) TableName() string {
	return "card_balances"
}
