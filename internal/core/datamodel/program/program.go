package program

import "time"

type Program struct {
	ID          int64      `gorm:"primaryKey"`
	Code        string     `gorm:"column:program_code;uniqueIndex;not null"`
	Name        string     `gorm:"column:program_name;not null"`
	Description string     `gorm:"column:description"`
	ProgramType string     `gorm:"column:program_type"`
	StartDate   *time.Time `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
	IsActive    bool       `gorm:"column:is_active;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Program) TableName() string {
	return "programs"
}
