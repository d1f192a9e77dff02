package dto

import (
	"time"

	"github.com/BruksfildServices01/table-reservations/internal/models"
)

type ReservationListDTO struct {
	ID              uint      `json:"id"`
	TableID         uint      `json:"table_id"`
	TableNumber     int       `json:"table_number"`
	CustomerID      uint      `json:"customer_id"`
	CustomerName    string    `json:"customer_name"`
	ReservationDate string    `json:"reservation_date"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	PartySize       int       `json:"party_size"`
	Status          string    `json:"status"`
	Note            string    `json:"note"`
}

func ReservationList(rs []models.Reservation) []ReservationListDTO {
	out := make([]ReservationListDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, ReservationListDTO{
			ID:              r.ID,
			TableID:         r.TableID,
			TableNumber:     r.Table.Number,
			CustomerID:      r.CustomerID,
			CustomerName:    r.Customer.Name,
			ReservationDate: r.ReservationDate,
			StartTime:       r.StartTime,
			EndTime:         r.EndTime,
			PartySize:       r.PartySize,
			Status:          r.Status,
			Note:            r.Note,
		})
	}
	return out
}
