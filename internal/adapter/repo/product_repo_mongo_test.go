package repo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"productstudio/internal/domain"
)

func TestFulfillableFilter(t *testing.T) {
	filter := fulfillableFilter(1001)
	m := filter.Map()

	if m[fieldSKU] != int64(1001) {
		t.Fatalf("unexpected sku clause: %v", m[fieldSKU])
	}
	status, ok := m[fieldStatus].(bson.D)
	if !ok || status.Map()["$ne"] != string(domain.ProductStatusFulfilled) {
		t.Fatalf("unexpected status clause: %v", m[fieldStatus])
	}
	for _, slot := range domain.RequiredSlots {
		clause, ok := m[string(slot)].(bson.D)
		if !ok {
			t.Fatalf("missing clause for %q", slot)
		}
		nin, ok := clause.Map()["$nin"].(bson.A)
		if !ok || len(nin) != 2 || nin[0] != nil || nin[1] != "" {
			t.Fatalf("unexpected clause for %q: %v", slot, clause)
		}
	}
	if _, ok := m[string(domain.SlotPreImageURL)]; ok {
		t.Fatal("pre-image slot must not gate fulfillment")
	}
}

func TestSlotUpdateTouchesOneField(t *testing.T) {
	update := slotUpdate(domain.SlotCastImageURL, "http://localhost:8080/public/products/1001/cast.png")
	set, ok := update.Map()["$set"].(bson.D)
	if !ok || len(set) != 1 {
		t.Fatalf("expected single-field $set, got %v", update)
	}
	if set[0].Key != "Cast Image URL" {
		t.Fatalf("unexpected field %q", set[0].Key)
	}
}

func TestUnstatusedFilter(t *testing.T) {
	m := unstatusedFilter(7).Map()

	if m[fieldSKU] != int64(7) {
		t.Fatalf("unexpected sku clause: %v", m[fieldSKU])
	}
	status, ok := m[fieldStatus].(bson.D)
	if !ok {
		t.Fatalf("unexpected status clause: %v", m[fieldStatus])
	}
	in, ok := status.Map()["$in"].(bson.A)
	if !ok || len(in) != 2 || in[0] != nil || in[1] != "" {
		t.Fatalf("unexpected status clause: %v", status)
	}
	if len(m) != 2 {
		t.Fatalf("filter must only match on sku and status: %v", m)
	}
}

func TestMongoErrorMapping(t *testing.T) {
	if err := mongoError(mongo.ErrNoDocuments, "load", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mongoError(errors.New("timeout"), "load", 1); !errors.Is(err, domain.ErrPersistFailed) {
		t.Fatalf("expected ErrPersistFailed, got %v", err)
	}
}
