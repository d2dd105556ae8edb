package recurring

import (
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type FrequencyType string

const (
	FrequencyDaily    FrequencyType = "DAILY"
	FrequencyWeekly   FrequencyType = "WEEKLY"
	FrequencyBiweekly FrequencyType = "BIWEEKLY"
	FrequencyMonthly  FrequencyType = "MONTHLY"
	FrequencyYearly   FrequencyType = "YEARLY"
)

func (f FrequencyType) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// RecurringTransaction é o modelo de uma transação periódica. NextDue é sempre
// NextOccurrence(Frequency, LastGenerated), ou StartDate quando nada foi
// gerado. LastGenerated/NextDue/IsActive são mutados apenas pelo gerador; a
// exceção é pausar/retomar, feita por ação direta do usuário.
type RecurringTransaction struct {
	Id            ulid.ULID        `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId        ulid.ULID        `gorm:"type:varchar(26);index:idx_recurring_user_id;not null" json:"userId"`
	Kind          transaction.Kind `gorm:"type:varchar(10);not null" json:"kind"`
	Amount        decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency      string           `gorm:"type:varchar(3);not null" json:"currency"`
	Category      string           `gorm:"type:varchar(100);not null" json:"category"`
	Description   string           `gorm:"type:varchar(255)" json:"description"`
	AccountId     *ulid.ULID       `gorm:"type:varchar(26);index:idx_recurring_account_id" json:"accountId"`
	CreditCardId  *ulid.ULID       `gorm:"type:varchar(26);index:idx_recurring_credit_card_id" json:"creditCardId"`
	IsCardPayment bool             `gorm:"not null;default:false" json:"isCardPayment"`
	TargetCardId  *ulid.ULID       `gorm:"type:varchar(26)" json:"targetCardId"`
	Frequency     FrequencyType    `gorm:"type:varchar(10);not null" json:"frequency"`
	StartDate     time.Time        `gorm:"type:date;not null" json:"startDate"`
	EndDate       *time.Time       `gorm:"type:date" json:"endDate"`
	LastGenerated *time.Time       `gorm:"type:date" json:"lastGenerated"`
	NextDue       time.Time        `gorm:"type:date;not null;index:idx_recurring_next_due" json:"nextDue"`
	IsActive      bool             `gorm:"not null;default:true;index:idx_recurring_active" json:"isActive"`
	CreatedAt     time.Time        `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (RecurringTransaction) TableName() string {
	return "recurring_transactions"
}

// ScheduleStatus é o estado de geração da definição: nunca gerada, ou gerada
// até uma data. Substitui checagens de nulo espalhadas pelos chamadores.
type ScheduleStatus struct {
	generated bool
	through   time.Time
}

func NeverGenerated() ScheduleStatus {
	return ScheduleStatus{}
}

func GeneratedThrough(date time.Time) ScheduleStatus {
	return ScheduleStatus{generated: true, through: date}
}

func (s ScheduleStatus) Generated() (time.Time, bool) {
	return s.through, s.generated
}

func (r *RecurringTransaction) ScheduleStatus() ScheduleStatus {
	if r.LastGenerated == nil {
		return NeverGenerated()
	}
	return GeneratedThrough(*r.LastGenerated)
}

// Template monta a transação concreta de uma ocorrência, com a referência de
// volta para a definição. A data da ocorrência é preenchida pelo gerador.
func (r *RecurringTransaction) Template() *transaction.Transaction {
	recurringID := r.Id
	return &transaction.Transaction{
		UserId:        r.UserId,
		Kind:          r.Kind,
		Amount:        r.Amount,
		Currency:      r.Currency,
		Category:      r.Category,
		Description:   r.Description,
		AccountId:     r.AccountId,
		CreditCardId:  r.CreditCardId,
		IsCardPayment: r.IsCardPayment,
		TargetCardId:  r.TargetCardId,
		RecurringId:   &recurringID,
	}
}
