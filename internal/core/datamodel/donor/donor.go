package donor

import "time"

type Donor struct {
	ID        int64     `gorm:"primaryKey"`
	Code      string    `gorm:"column:donor_code;uniqueIndex;not null"`
	FullName  string    `gorm:"column:full_name;not null"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	DonorType string    `gorm:"column:donor_type;not null"`
	Address   string    `gorm:"column:address"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Donor) TableName() string {
	return "donors"
}
