package sponsorship

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"schoolsite-backend/internal/domain/child"
	"schoolsite-backend/internal/domain/sponsorship"
	"schoolsite-backend/internal/domain/uow"
	"schoolsite-backend/internal/infrastructure/logger"
	"schoolsite-backend/internal/usecase/upload"
	"schoolsite-backend/pkg/id"
	"schoolsite-backend/pkg/paging"
)

type Usecase struct {
	children child.Repository
	ledger   sponsorship.Repository
	uow      uow.UnitOfWork
	photos   PhotoStore
	log      *logger.Logger
}

func NewUsecase(children child.Repository, ledger sponsorship.Repository, tx uow.UnitOfWork, photos PhotoStore, log *logger.Logger) *Usecase {
	return &Usecase{children: children, ledger: ledger, uow: tx, photos: photos, log: log.With("usecase", "sponsorship")}
}

func (u *Usecase) ListChildren(ctx context.Context, in ListInput) (paging.Result[child.Child], error) {
	p := paging.New(in.Page, in.Limit)
	status := child.Status(strings.TrimSpace(in.Status))
	if status != "" && !status.Valid() {
		return paging.Result[child.Child]{}, fmt.Errorf("%w: unknown status %q", child.ErrInvalid, in.Status)
	}
	rows, total, err := u.children.List(ctx, child.Filter{
		IncludeArchived: in.IncludeArchived,
		Status:          status,
		Offset:          p.Offset(),
		Limit:           p.Limit,
	})
	if err != nil {
		return paging.Result[child.Child]{}, fmt.Errorf("list children: %w", err)
	}
	return paging.NewResult(p, rows, total), nil
}

func (u *Usecase) GetChild(ctx context.Context, childID string, includeArchived bool) (*child.Child, error) {
	return u.children.GetByID(ctx, childID, includeArchived)
}

func validateChild(in ChildInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return fmt.Errorf("%w: first_name is required", child.ErrInvalid)
	}
	if in.AmountNeeded < 0 {
		return fmt.Errorf("%w: amount_needed must not be negative", child.ErrInvalid)
	}
	return nil
}

func applyChild(c *child.Child, in ChildInput) {
	c.FirstName = strings.TrimSpace(in.FirstName)
	c.LastName = strings.TrimSpace(in.LastName)
	c.Bio = in.Bio
	c.ClassYear = strings.TrimSpace(in.ClassYear)
	c.AmountNeeded = in.AmountNeeded
}

func (u *Usecase) CreateChild(ctx context.Context, in ChildInput) (*child.Child, error) {
	if err := validateChild(in); err != nil {
		return nil, err
	}
	c := &child.Child{ID: id.New()}
	applyChild(c, in)
	if err := u.children.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create child: %w", err)
	}
	c.Resolve()
	return c, nil
}

func (u *Usecase) UpdateChild(ctx context.Context, childID string, in ChildInput) (*child.Child, error) {
	if err := validateChild(in); err != nil {
		return nil, err
	}
	c, err := u.children.GetByID(ctx, childID, true)
	if err != nil {
		return nil, err
	}
	applyChild(c, in)
	if err := u.children.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update child: %w", err)
	}
	c.Resolve()
	return c, nil
}

func (u *Usecase) ArchiveChild(ctx context.Context, childID string) error {
	return u.children.Archive(ctx, childID)
}

// SetPhoto uploads a new photo and drops the previous object once the row points at the new one.
func (u *Usecase) SetPhoto(ctx context.Context, childID string, f upload.File) (*child.Child, error) {
	c, err := u.children.GetByID(ctx, childID, true)
	if err != nil {
		return nil, err
	}
	res, err := u.photos.UploadPhoto(ctx, c.ID, f)
	if err != nil {
		return nil, err
	}
	old := c.PhotoPath
	c.PhotoURL, c.PhotoPath = res.URL, res.Path
	if err := u.children.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update child photo: %w", err)
	}
	if old != "" && old != res.Path {
		if err := u.photos.Remove(ctx, old); err != nil {
			u.log.Warn("old photo not removed", "child_id", c.ID, "path", old, "error", err)
		}
	}
	return c, nil
}

func (u *Usecase) Ledger(ctx context.Context, childID string) ([]sponsorship.Sponsorship, error) {
	if _, err := u.children.GetByID(ctx, childID, true); err != nil {
		return nil, err
	}
	return u.ledger.ListByChild(ctx, childID)
}

// RecordManual appends an offline gift to the ledger.
func (u *Usecase) RecordManual(ctx context.Context, childID string, in ManualInput) (*sponsorship.Sponsorship, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", sponsorship.ErrInvalid)
	}
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if len(cur) != 3 {
		return nil, fmt.Errorf("%w: currency must be a 3-letter code", sponsorship.ErrInvalid)
	}
	freq, ok := parseFrequency(in.Frequency)
	if !ok {
		return nil, fmt.Errorf("%w: unknown frequency %q", sponsorship.ErrInvalid, in.Frequency)
	}
	txID := strings.TrimSpace(in.TransactionID)
	if txID == "" {
		txID = "manual-" + id.NewHex(12)
	}
	s := &sponsorship.Sponsorship{
		ID:            id.New(),
		ChildID:       childID,
		DonorName:     strings.TrimSpace(in.DonorName),
		DonorEmail:    strings.TrimSpace(in.DonorEmail),
		Amount:        in.Amount,
		Currency:      cur,
		Frequency:     freq,
		TransactionID: txID,
		Status:        sponsorship.StatusCompleted,
		Source:        sponsorship.SourceManual,
	}
	err := u.uow.WithinChildTx(ctx, childID, func(r uow.Repos, c *child.Child) error {
		if c.Archived {
			return child.ErrNotFound
		}
		return r.Sponsorships.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// RecordDonation appends a completed webhook payment. A repeated transaction id is
// acknowledged without a second row; non-completed payments are ignored.
func (u *Usecase) RecordDonation(ctx context.Context, ev DonationEvent) (*RecordResult, error) {
	if !ev.Completed {
		u.log.Info("donation ignored", "transaction_id", ev.TransactionID, "status", ev.RawStatus)
		return &RecordResult{Ignored: true}, nil
	}

	res := &RecordResult{}
	err := u.uow.WithinChildTx(ctx, ev.ChildID, func(r uow.Repos, c *child.Child) error {
		if c.Archived {
			return ErrUnknownChild
		}
		existing, err := r.Sponsorships.GetByTransactionID(ctx, ev.TransactionID)
		switch {
		case err == nil:
			res.Sponsorship = existing
			return sponsorship.ErrDuplicateTransaction
		case !errors.Is(err, sponsorship.ErrNotFound):
			return err
		}
		s := &sponsorship.Sponsorship{
			ID:            id.New(),
			ChildID:       c.ID,
			DonorName:     ev.DonorName,
			DonorEmail:    ev.DonorEmail,
			Amount:        ev.Amount,
			Currency:      ev.Currency,
			Frequency:     ev.Frequency,
			TransactionID: ev.TransactionID,
			Status:        sponsorship.StatusCompleted,
			Source:        sponsorship.SourceWebhook,
		}
		if err := r.Sponsorships.Create(ctx, s); err != nil {
			return err
		}
		res.Sponsorship = s
		return nil
	})
	switch {
	case err == nil:
		res.Recorded = true
		u.log.Info("donation recorded", "transaction_id", ev.TransactionID, "child_id", ev.ChildID, "amount", ev.Amount)
		return res, nil
	case errors.Is(err, sponsorship.ErrDuplicateTransaction):
		// the failed insert rolled the transaction back; nothing else was written
		res.Duplicate = true
		u.log.Info("duplicate donation acknowledged", "transaction_id", ev.TransactionID)
		return res, nil
	case errors.Is(err, child.ErrNotFound):
		return nil, ErrUnknownChild
	default:
		return nil, err
	}
}
