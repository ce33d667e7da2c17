package shifts

import (
	"errors"
	"math"
	"testing"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

func TestComputeSettlement_PercentSplit(t *testing.T) {
	shift := &domain.Shift{PercentMaster: 60, PercentSalon: 40}
	items := []*domain.ShiftItem{
		{ServiceAmount: 3000, ConsumablesAmount: 200},
		{ServiceAmount: 1500, ConsumablesAmount: 100},
	}

	settlement, err := computeSettlement(shift, items, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if settlement.TotalAmount != 4500 {
		t.Errorf("TotalAmount = %.2f, want 4500.00", settlement.TotalAmount)
	}
	if settlement.ConsumablesAmount != 300 {
		t.Errorf("ConsumablesAmount = %.2f, want 300.00", settlement.ConsumablesAmount)
	}
	// net = 4200: master 2520, salon 1680
	if settlement.MasterShare != 2520 {
		t.Errorf("MasterShare = %.2f, want 2520.00", settlement.MasterShare)
	}
	if settlement.SalonShare != 1680 {
		t.Errorf("SalonShare = %.2f, want 1680.00", settlement.SalonShare)
	}
}

func TestComputeSettlement_SharesSumToNet(t *testing.T) {
	// 33/67 на сумме, не делящейся нацело: доли должны сходиться точно
	shift := &domain.Shift{PercentMaster: 33, PercentSalon: 67}
	items := []*domain.ShiftItem{
		{ServiceAmount: 1000.01, ConsumablesAmount: 0.02},
	}

	settlement, err := computeSettlement(shift, items, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	net := settlement.TotalAmount - settlement.ConsumablesAmount
	if got := settlement.MasterShare + settlement.SalonShare; math.Abs(got-net) > 1e-9 {
		t.Errorf("MasterShare + SalonShare = %.4f, want net %.4f", got, net)
	}
}

func TestComputeSettlement_InvariantViolation(t *testing.T) {
	for _, split := range [][2]float64{{60, 39}, {60, 41}, {0, 0}} {
		shift := &domain.Shift{PercentMaster: split[0], PercentSalon: split[1]}

		_, err := computeSettlement(shift, nil, 0)
		if !errors.Is(err, ErrSettlementInvariant) {
			t.Errorf("split %.0f/%.0f: got %v, want ErrSettlementInvariant", split[0], split[1], err)
		}
	}
}

func TestComputeSettlement_GuaranteedTopup(t *testing.T) {
	// net = 1000, master 50% = 500; гарантия 8ч * 100 = 800 -> доплата 300
	shift := &domain.Shift{
		PercentMaster: 50,
		PercentSalon:  50,
		HourlyRate:    ptr.Ptr(100.0),
	}
	items := []*domain.ShiftItem{{ServiceAmount: 1000}}

	settlement, err := computeSettlement(shift, items, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if settlement.GuaranteedAmount != 800 {
		t.Errorf("GuaranteedAmount = %.2f, want 800.00", settlement.GuaranteedAmount)
	}
	if settlement.TopupAmount != 300 {
		t.Errorf("TopupAmount = %.2f, want 300.00", settlement.TopupAmount)
	}
	if settlement.MasterShare != 800 {
		t.Errorf("MasterShare = %.2f, want 800.00", settlement.MasterShare)
	}
	// Доплата не затрагивает долю салона
	if settlement.SalonShare != 500 {
		t.Errorf("SalonShare = %.2f, want 500.00", settlement.SalonShare)
	}
}

func TestComputeSettlement_NoTopupWhenShareExceedsGuarantee(t *testing.T) {
	shift := &domain.Shift{
		PercentMaster: 50,
		PercentSalon:  50,
		HourlyRate:    ptr.Ptr(100.0),
	}
	items := []*domain.ShiftItem{{ServiceAmount: 10000}}

	settlement, err := computeSettlement(shift, items, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if settlement.TopupAmount != 0 {
		t.Errorf("TopupAmount = %.2f, want 0.00", settlement.TopupAmount)
	}
	if settlement.MasterShare != 5000 {
		t.Errorf("MasterShare = %.2f, want 5000.00", settlement.MasterShare)
	}
}

func TestComputeSettlement_Idempotent(t *testing.T) {
	shift := &domain.Shift{PercentMaster: 70, PercentSalon: 30, HourlyRate: ptr.Ptr(150.0)}
	items := []*domain.ShiftItem{
		{ServiceAmount: 2700.55, ConsumablesAmount: 130.55},
		{ServiceAmount: 899.99, ConsumablesAmount: 0},
	}

	first, err := computeSettlement(shift, items, 7.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := computeSettlement(shift, items, 7.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *first != *second {
		t.Errorf("repeated settlement differs: %+v vs %+v", first, second)
	}
}

func TestComputeSettlement_NegativeAmountRejected(t *testing.T) {
	shift := &domain.Shift{PercentMaster: 50, PercentSalon: 50}
	items := []*domain.ShiftItem{{ServiceAmount: -10}}

	_, err := computeSettlement(shift, items, 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}
