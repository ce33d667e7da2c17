package close_shift

import "github.com/m04kA/SMC-SalonService/internal/service/shifts"

// ItemRequest финальная позиция смены в HTTP запросе
type ItemRequest struct {
	ClientName        string  `json:"clientName"`
	ServiceName       string  `json:"serviceName"`
	ServiceAmount     float64 `json:"serviceAmount"`
	ConsumablesAmount float64 `json:"consumablesAmount"`
}

// CloseShiftRequest HTTP request model.
// Items опциональны: позиции, добавляемые вместе с закрытием.
type CloseShiftRequest struct {
	Items []ItemRequest `json:"items,omitempty"`
}

// CloseShiftResponse HTTP response model с итогами сверки
type CloseShiftResponse struct {
	ShiftID           int64   `json:"shiftId"`
	TotalAmount       float64 `json:"totalAmount"`
	ConsumablesAmount float64 `json:"consumablesAmount"`
	MasterShare       float64 `json:"masterShare"`
	SalonShare        float64 `json:"salonShare"`
	TopupAmount       float64 `json:"topupAmount"`
}

// ToServiceInputs конвертирует HTTP запрос в модели сервиса
func (r *CloseShiftRequest) ToServiceInputs() []shifts.ItemInput {
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

// FromCloseResult конвертирует итоги закрытия в HTTP response
func FromCloseResult(result *shifts.CloseResult) *CloseShiftResponse {
	return &CloseShiftResponse{
		ShiftID:           result.ShiftID,
		TotalAmount:       result.TotalAmount,
		ConsumablesAmount: result.ConsumablesAmount,
		MasterShare:       result.MasterShare,
		SalonShare:        result.SalonShare,
		TopupAmount:       result.TopupAmount,
	}
}
