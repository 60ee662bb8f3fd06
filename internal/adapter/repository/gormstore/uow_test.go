package gormstore

import (
	"errors"
	"testing"

	"schoolsite-backend/internal/domain/child"
	"schoolsite-backend/internal/domain/sponsorship"
	"schoolsite-backend/internal/domain/uow"
)

func TestGormUoW_WithinChildTx_Commit(t *testing.T) {
	db := openTestDB(t)
	guow := NewGormUoW(db)
	kids := NewChildRepository(db)
	c := makeChild("Imani", 200)
	if err := kids.Create(ctxBG, c); err != nil {
		t.Fatalf("seed child: %v", err)
	}

	err := guow.WithinChildTx(ctxBG, c.ID, func(r uow.Repos, locked *child.Child) error {
		if locked.ID != c.ID {
			t.Fatalf("locked child = %s", locked.ID)
		}
		return r.Sponsorships.Create(ctxBG, makeSponsorship(c.ID, "tx-commit", 200, sponsorship.StatusCompleted))
	})
	if err != nil {
		t.Fatalf("WithinChildTx: %v", err)
	}

	got, err := kids.GetByID(ctxBG, c.ID, false)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.AmountRaised != 200 || got.Status != child.StatusFullySponsored {
		t.Fatalf("after commit raised=%v status=%s", got.AmountRaised, got.Status)
	}
}

func TestGormUoW_WithinChildTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	guow := NewGormUoW(db)
	kids := NewChildRepository(db)
	ledger := NewSponsorshipRepository(db)
	c := makeChild("Neema", 200)
	if err := kids.Create(ctxBG, c); err != nil {
		t.Fatalf("seed child: %v", err)
	}

	sentinel := errors.New("boom")
	err := guow.WithinChildTx(ctxBG, c.ID, func(r uow.Repos, _ *child.Child) error {
		if err := r.Sponsorships.Create(ctxBG, makeSponsorship(c.ID, "tx-roll", 50, sponsorship.StatusCompleted)); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}
	if _, err := ledger.GetByTransactionID(ctxBG, "tx-roll"); !errors.Is(err, sponsorship.ErrNotFound) {
		t.Fatalf("row survived rollback: %v", err)
	}
}

func TestGormUoW_WithinChildTx_ChildNotFound(t *testing.T) {
	db := openTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinChildTx(ctxBG, "missing", func(uow.Repos, *child.Child) error {
		t.Fatal("callback should not run when the child is missing")
		return nil
	})
	if !errors.Is(err, child.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
