package domain

import (
	"errors"
	"testing"
	"time"
)

func fillSlots(t *testing.T, p *Product, slots []Slot) {
	t.Helper()
	for _, slot := range slots {
		if err := p.SetSlot(slot, "value for "+string(slot)); err != nil {
			t.Fatalf("SetSlot(%q) returned error: %v", slot, err)
		}
	}
}

func TestRecomputeStatusRequiresAllSixSlots(t *testing.T) {
	for skip := range RequiredSlots {
		p := &Product{SKU: 1001, Status: ProductStatusPending}
		var five []Slot
		for i, slot := range RequiredSlots {
			if i != skip {
				five = append(five, slot)
			}
		}
		fillSlots(t, p, five)
		p.PreImageURL = "https://example.com/pre.png"
		if p.RecomputeStatus(time.Now()) {
			t.Fatalf("transitioned with %q missing", RequiredSlots[skip])
		}
		if p.Status != ProductStatusPending {
			t.Fatalf("status = %s, want %s", p.Status, ProductStatusPending)
		}
	}
}

func TestRecomputeStatusIgnoresPreImage(t *testing.T) {
	p := &Product{SKU: 7, Status: ProductStatusPending}
	fillSlots(t, p, RequiredSlots)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if !p.RecomputeStatus(at) {
		t.Fatal("expected transition with empty pre-image slot")
	}
	if !p.CreatedAt.Equal(at) {
		t.Fatalf("CreatedAt = %v, want %v", p.CreatedAt, at)
	}
}

func TestRecomputeStatusIsIdempotent(t *testing.T) {
	p := &Product{SKU: 1001, Status: ProductStatusPending}
	fillSlots(t, p, RequiredSlots)
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !p.RecomputeStatus(first) {
		t.Fatal("expected first recompute to transition")
	}
	if p.RecomputeStatus(first.Add(time.Hour)) {
		t.Fatal("second recompute must not transition")
	}
	if p.Status != ProductStatusFulfilled {
		t.Fatalf("status = %s, want %s", p.Status, ProductStatusFulfilled)
	}
	if !p.CreatedAt.Equal(first) {
		t.Fatalf("CreatedAt re-stamped to %v", p.CreatedAt)
	}

	pending := &Product{SKU: 2}
	pending.RecomputeStatus(time.Now())
	pending.RecomputeStatus(time.Now())
	if pending.Status != ProductStatusPending {
		t.Fatalf("status = %s, want %s", pending.Status, ProductStatusPending)
	}
}

func TestSetSlotRejectsUnknownKey(t *testing.T) {
	p := &Product{SKU: 1001, Status: ProductStatusPending, WaxImageURL: "keep"}
	before := *p
	for _, key := range []Slot{"Bogus", SlotPreImageURL, "wax image url", ""} {
		err := p.SetSlot(key, "x")
		if !errors.Is(err, ErrInvalidSlot) {
			t.Fatalf("SetSlot(%q) error = %v, want ErrInvalidSlot", key, err)
		}
	}
	if *p != before {
		t.Fatalf("product mutated: %+v", p)
	}
}

func TestStageSlots(t *testing.T) {
	tests := []struct {
		stage   Stage
		image   Slot
		desc    Slot
		wantErr bool
	}{
		{stage: StageWax, image: SlotWaxImageURL, desc: SlotWaxDescription},
		{stage: StageCast, image: SlotCastImageURL, desc: SlotCastDescription},
		{stage: StageFinal, image: SlotFinalImageURL, desc: SlotFinalDescription},
		{stage: "Pre", wantErr: true},
		{stage: "wax", wantErr: true},
	}
	for _, tc := range tests {
		image, err := tc.stage.ImageSlot()
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidSlot) {
				t.Fatalf("%s: ImageSlot error = %v, want ErrInvalidSlot", tc.stage, err)
			}
			if _, err := tc.stage.DescriptionSlot(); !errors.Is(err, ErrInvalidSlot) {
				t.Fatalf("%s: DescriptionSlot error = %v, want ErrInvalidSlot", tc.stage, err)
			}
			continue
		}
		if err != nil || image != tc.image {
			t.Fatalf("%s: ImageSlot = %q, %v", tc.stage, image, err)
		}
		desc, err := tc.stage.DescriptionSlot()
		if err != nil || desc != tc.desc {
			t.Fatalf("%s: DescriptionSlot = %q, %v", tc.stage, desc, err)
		}
	}
}
