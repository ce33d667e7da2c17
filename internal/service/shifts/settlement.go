package shifts

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Settlement итоговая сверка смены
type Settlement struct {
	TotalAmount       float64
	ConsumablesAmount float64
	MasterShare       float64
	SalonShare        float64
	HoursWorked       float64
	GuaranteedAmount  float64
	TopupAmount       float64
}

// computeSettlement пересчитывает итоги смены из набора позиций.
// Чистая функция: повторный вызов на том же наборе дает тот же результат.
//
// master_share = (total - consumables) * percent_master / 100,
// salon_share считается как дополнение, чтобы master + salon == total - consumables
// сходилось точно, без накопления ошибки округления.
//
// Гарантированный минимум: если hours * hourly_rate превышает master_share,
// разница записывается в topup_amount и master_share поднимается до гарантии.
// Доплата добавляется только мастеру и не проходит через процентное разделение.
func computeSettlement(shift *domain.Shift, items []*domain.ShiftItem, hoursWorked float64) (*Settlement, error) {
	if shift.PercentMaster+shift.PercentSalon != 100 {
		return nil, fmt.Errorf("%w: got %.2f + %.2f", ErrSettlementInvariant, shift.PercentMaster, shift.PercentSalon)
	}

	var total, consumables float64
	for _, item := range items {
		if item.ServiceAmount < 0 || item.ConsumablesAmount < 0 {
			return nil, fmt.Errorf("%w: item amounts must be non-negative", ErrInvalidInput)
		}
		total += item.ServiceAmount
		consumables += item.ConsumablesAmount
	}

	net := total - consumables
	masterShare := roundMoney(net * shift.PercentMaster / 100)
	salonShare := roundMoney(net - masterShare)

	settlement := &Settlement{
		TotalAmount:       roundMoney(total),
		ConsumablesAmount: roundMoney(consumables),
		MasterShare:       masterShare,
		SalonShare:        salonShare,
		HoursWorked:       hoursWorked,
	}

	if shift.HasGuaranteedPay() {
		guaranteed := roundMoney(hoursWorked * *shift.HourlyRate)
		settlement.GuaranteedAmount = guaranteed

		if guaranteed > settlement.MasterShare {
			settlement.TopupAmount = roundMoney(guaranteed - settlement.MasterShare)
			settlement.MasterShare = guaranteed
		}
	}

	return settlement, nil
}

// roundMoney округляет до копеек
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
