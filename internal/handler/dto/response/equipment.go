package response

import (
	"time"

	"equipsched/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type EquipmentResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	EquipmentType string    `json:"equipmentType"`
	Brand         *string   `json:"brand,omitempty"`
	Model         *string   `json:"model,omitempty"`
	SerialNumber  *string   `json:"serialNumber,omitempty"`
	HourlyRate    *float64  `json:"hourlyRate,omitempty"`
	Status        string    `json:"status"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromEquipmentView(view *queries.EquipmentView) (*EquipmentResponse, error) {
	var resp EquipmentResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromEquipmentViews(views []*queries.EquipmentView) ([]*EquipmentResponse, error) {
	result := make([]*EquipmentResponse, len(views))
	for i, view := range views {
		resp, err := FromEquipmentView(view)
		if err != nil {
			return nil, err
		}
		result[i] = resp
	}
	return result, nil
}
