package models

import "time"

type TableState string

const (
	TableAvailable TableState = "available"
	TableOccupied  TableState = "occupied"
	TableReserved  TableState = "reserved"
	TableCleaning  TableState = "cleaning"
)

func (s TableState) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableCleaning:
		return true
	}
	return false
}

// Table is a physical restaurant table. Its operational state is informational
// and does not take part in overlap checks.
type Table struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Number   int        `gorm:"uniqueIndex;not null" json:"number"`
	Capacity int        `gorm:"not null" json:"capacity"`
	State    TableState `gorm:"size:20;default:'available'" json:"state"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
