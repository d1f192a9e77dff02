package models

import "time"

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TableID uint  `gorm:"not null;index:idx_reservation_table_date" json:"table_id"`
	Table   Table `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"table"`

	CustomerID uint `gorm:"not null;index" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"customer"`

	// YYYY-MM-DD in the restaurant timezone.
	ReservationDate string    `gorm:"size:10;not null;index:idx_reservation_table_date" json:"reservation_date"`
	StartTime       time.Time `gorm:"not null" json:"start_time"`
	EndTime         time.Time `gorm:"not null" json:"end_time"`

	PartySize int    `gorm:"not null" json:"party_size"`
	Status    string `gorm:"size:20;default:'pending';index" json:"status"`
	Note      string `gorm:"size:255" json:"note"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Soft-delete marker. Queries filter it explicitly.
	DeletedAt *time.Time `gorm:"index" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
