package currency

import "github.com/shopspring/decimal"

type Currency struct {
	ID         int64           `gorm:"primaryKey"`
	Code       string          `gorm:"column:currency_code;uniqueIndex;not null"`
	Name       string          `gorm:"column:currency_name;not null"`
	Symbol     string          `gorm:"column:symbol"`
	RateToBase decimal.Decimal `gorm:"column:rate_to_base;type:numeric(18,6);not null"`
	IsActive   bool            `gorm:"column:is_active;not null"`
}

func (Currency) TableName() string {
	return "currencies"
}
