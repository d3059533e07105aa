package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProductStatus enumerates the fulfillment states of a product.
type ProductStatus string

const (
	ProductStatusPending   ProductStatus = "Pending"
	ProductStatusFulfilled ProductStatus = "Fulfilled"
)

// Slot names a content field on a product. The value doubles as the document
// field name so that a slot update can be expressed as a single-field write.
type Slot string

const (
	SlotPreImageURL      Slot = "Pre-Image URL"
	SlotWaxImageURL      Slot = "Wax Image URL"
	SlotCastImageURL     Slot = "Cast Image URL"
	SlotFinalImageURL    Slot = "Final Image URL"
	SlotWaxDescription   Slot = "Wax Description"
	SlotCastDescription  Slot = "Cast Description"
	SlotFinalDescription Slot = "Final Description"
)

// RequiredSlots lists the slots that must all be populated for a product to
// be fulfilled. The legacy pre-image slot is deliberately absent.
var RequiredSlots = []Slot{
	SlotWaxImageURL,
	SlotCastImageURL,
	SlotFinalImageURL,
	SlotWaxDescription,
	SlotCastDescription,
	SlotFinalDescription,
}

// Stage is the production stage a save request targets (Wax, Cast or Final).
type Stage string

const (
	StageWax   Stage = "Wax"
	StageCast  Stage = "Cast"
	StageFinal Stage = "Final"
)

// ImageSlot returns "<stage> Image URL" validated against the recognized slots.
func (s Stage) ImageSlot() (Slot, error) {
	return ParseSlot(fmt.Sprintf("%s Image URL", strings.TrimSpace(string(s))))
}

// DescriptionSlot returns "<stage> Description" validated against the recognized slots.
func (s Stage) DescriptionSlot() (Slot, error) {
	return ParseSlot(fmt.Sprintf("%s Description", strings.TrimSpace(string(s))))
}

// ParseSlot resolves a slot key. Only the six required slots are writable.
func ParseSlot(key string) (Slot, error) {
	for _, slot := range RequiredSlots {
		if string(slot) == key {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSlot, key)
}

// Product is the fulfillment record for one SKU.
type Product struct {
	SKU              int64         `json:"SKU" bson:"SKU"`
	Status           ProductStatus `json:"Status" bson:"Status"`
	Category         string        `json:"Category,omitempty" bson:"Category,omitempty"`
	PreImageURL      string        `json:"Pre-Image URL,omitempty" bson:"Pre-Image URL,omitempty"`
	WaxImageURL      string        `json:"Wax Image URL,omitempty" bson:"Wax Image URL,omitempty"`
	CastImageURL     string        `json:"Cast Image URL,omitempty" bson:"Cast Image URL,omitempty"`
	FinalImageURL    string        `json:"Final Image URL,omitempty" bson:"Final Image URL,omitempty"`
	WaxDescription   string        `json:"Wax Description,omitempty" bson:"Wax Description,omitempty"`
	CastDescription  string        `json:"Cast Description,omitempty" bson:"Cast Description,omitempty"`
	FinalDescription string        `json:"Final Description,omitempty" bson:"Final Description,omitempty"`
	// CreatedAt is set when the record is ingested and re-stamped when the
	// product transitions to Fulfilled, so it reads as "fulfilled at" once
	// the product is complete.
	CreatedAt time.Time `json:"Created At" bson:"Created At"`
}

func (p *Product) field(slot Slot) *string {
	switch slot {
	case SlotPreImageURL:
		return &p.PreImageURL
	case SlotWaxImageURL:
		return &p.WaxImageURL
	case SlotCastImageURL:
		return &p.CastImageURL
	case SlotFinalImageURL:
		return &p.FinalImageURL
	case SlotWaxDescription:
		return &p.WaxDescription
	case SlotCastDescription:
		return &p.CastDescription
	case SlotFinalDescription:
		return &p.FinalDescription
	}
	return nil
}

// Value returns the current content of a slot, or "" for unknown slots.
func (p *Product) Value(slot Slot) string {
	if f := p.field(slot); f != nil {
		return *f
	}
	return ""
}

// SetSlot overwrites one of the six writable slots. Unknown keys fail with
// ErrInvalidSlot and leave the product untouched.
func (p *Product) SetSlot(key Slot, value string) error {
	slot, err := ParseSlot(string(key))
	if err != nil {
		return err
	}
	*p.field(slot) = value
	return nil
}

// Complete reports whether every required slot is non-empty.
func (p *Product) Complete() bool {
	for _, slot := range RequiredSlots {
		if strings.TrimSpace(p.Value(slot)) == "" {
			return false
		}
	}
	return true
}

// RecomputeStatus flips a pending product to Fulfilled once all required slots
// are populated, re-stamping CreatedAt with now. It returns true only on the
// transition itself; an already fulfilled product is left as is.
func (p *Product) RecomputeStatus(now time.Time) bool {
	if p.Status == ProductStatusFulfilled {
		return false
	}
	if p.Status == "" {
		p.Status = ProductStatusPending
	}
	if !p.Complete() {
		return false
	}
	p.Status = ProductStatusFulfilled
	p.CreatedAt = now
	return true
}
