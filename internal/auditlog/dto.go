package auditlog

import (
	"time"

	"github.com/jiaotianpharma/warehouse-backend/pkg/db/models"
)

// EntryDTO is the security log payload returned to clients.
type EntryDTO struct {
	ID               string    `json:"id"`
	Timestamp        string    `json:"timestamp"`
	Actor            string    `json:"actor"`
	Action           string    `json:"action"`
	Module           string    `json:"module"`
	IPAddress        string    `json:"ip_address"`
	Status           string    `json:"status"`
	Description      string    `json:"description"`
	TechnicalDetails string    `json:"technical_details"`
	CreatedAt        time.Time `json:"created_at"`
}

const timestampLayout = "2006-01-02 15:04:05"

// NewEntryDTO builds a DTO from the persisted entry.
func NewEntryDTO(entry *models.SecurityLog) *EntryDTO {
	if entry == nil {
		return nil
	}
	return &EntryDTO{
		ID:               entry.ID,
		Timestamp:        entry.Timestamp.Format(timestampLayout),
		Actor:            entry.Actor,
		Action:           entry.Action,
		Module:           entry.Module,
		IPAddress:        entry.IPAddress,
		Status:           string(entry.Status),
		Description:      entry.Description,
		TechnicalDetails: entry.TechnicalDetails,
		CreatedAt:        entry.CreatedAt,
	}
}

// NewEntryDTOs maps a slice of persisted entries, preserving order.
func NewEntryDTOs(entries []models.SecurityLog) []EntryDTO {
	dtos := make([]EntryDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, *NewEntryDTO(&entries[i]))
	}
	return dtos
}
