package gormstore

import (
	"errors"
	"testing"

	"schoolsite-backend/internal/domain/sponsorship"
)

func TestSponsorship_DuplicateTransaction(t *testing.T) {
	db := openTestDB(t)
	kids := NewChildRepository(db)
	ledger := NewSponsorshipRepository(db)
	c := makeChild("Zawadi", 100)
	if err := kids.Create(ctxBG, c); err != nil {
		t.Fatalf("Create child: %v", err)
	}

	if err := ledger.Create(ctxBG, makeSponsorship(c.ID, "tx-dup", 25, sponsorship.StatusCompleted)); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	err := ledger.Create(ctxBG, makeSponsorship(c.ID, "tx-dup", 25, sponsorship.StatusCompleted))
	if !errors.Is(err, sponsorship.ErrDuplicateTransaction) {
		t.Fatalf("duplicate err = %v, want ErrDuplicateTransaction", err)
	}

	rows, err := ledger.ListByChild(ctxBG, c.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ledger rows = %d, %v; want 1", len(rows), err)
	}
	got, err := ledger.GetByTransactionID(ctxBG, "tx-dup")
	if err != nil || got.Amount != 25 {
		t.Fatalf("GetByTransactionID = %+v, %v", got, err)
	}
	if _, err := ledger.GetByTransactionID(ctxBG, "nope"); !errors.Is(err, sponsorship.ErrNotFound) {
		t.Fatalf("missing err = %v, want ErrNotFound", err)
	}
}
