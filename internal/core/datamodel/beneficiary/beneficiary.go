package beneficiary

import "time"

type Beneficiary struct {
	ID         int64     `gorm:"primaryKey"`
	Code       string    `gorm:"column:beneficiary_code;uniqueIndex;not null"`
	FullName   string    `gorm:"column:full_name;not null"`
	FamilySize int64     `gorm:"column:family_size;not null"`
	Phone      string    `gorm:"column:phone"`
	Address    string    `gorm:"column:address;not null"`
	District   string    `gorm:"column:district"`
	City       string    `gorm:"column:city"`
	Notes      string    `gorm:"column:notes"`
	IsActive   bool      `gorm:"column:is_active;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Beneficiary) TableName() string {
	return "beneficiaries"
}
