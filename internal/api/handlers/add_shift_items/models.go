package add_shift_items

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/shifts"
)

// ItemRequest позиция смены в HTTP запросе
type ItemRequest struct {
	ClientName        string  `json:"clientName"`
	ServiceName       string  `json:"serviceName"`
	ServiceAmount     float64 `json:"serviceAmount"`
	ConsumablesAmount float64 `json:"consumablesAmount"`
}

// AddItemsRequest HTTP request model
type AddItemsRequest struct {
	Items []ItemRequest `json:"items"`
}

// ShiftTotalsResponse текущие итоги смены после добавления позиций
type ShiftTotalsResponse struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	TotalAmount       float64 `json:"totalAmount"`
	ConsumablesAmount float64 `json:"consumablesAmount"`
	MasterShare       float64 `json:"masterShare"`
	SalonShare        float64 `json:"salonShare"`
	TopupAmount       float64 `json:"topupAmount"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ToServiceInputs конвертирует HTTP запрос в модели сервиса
func (r *AddItemsRequest) ToServiceInputs() []shifts.ItemInput {
	inputs := make([]shifts.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		inputs = append(inputs, shifts.ItemInput{
			ClientName:        item.ClientName,
			ServiceName:       item.ServiceName,
			ServiceAmount:     item.ServiceAmount,
			ConsumablesAmount: item.ConsumablesAmount,
		})
	}
	return inputs
}

// FromDomainShift конвертирует domain модель в HTTP response
func FromDomainShift(shift *domain.Shift) *ShiftTotalsResponse {
	return &ShiftTotalsResponse{
		ID:                shift.ID,
		Status:            string(shift.Status),
		TotalAmount:       shift.TotalAmount,
		ConsumablesAmount: shift.ConsumablesAmount,
		MasterShare:       shift.MasterShare,
		SalonShare:        shift.SalonShare,
		TopupAmount:       shift.TopupAmount,
		UpdatedAt:         shift.UpdatedAt.Format(time.RFC3339),
	}
}
