package application

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"schoolsite-backend/internal/domain/application"
	"schoolsite-backend/internal/domain/job"
	"schoolsite-backend/internal/infrastructure/logger"
	mailer "schoolsite-backend/internal/infrastructure/mail"
	"schoolsite-backend/pkg/id"
	"schoolsite-backend/pkg/paging"
)

const notifyTimeout = 10 * time.Second

type Usecase struct {
	apps   application.Repository
	jobs   job.Repository
	texts  TextStore
	mailer Mailer
	log    *logger.Logger
	now    func() time.Time
}

func NewUsecase(apps application.Repository, jobs job.Repository, texts TextStore, m Mailer, log *logger.Logger) *Usecase {
	return &Usecase{apps: apps, jobs: jobs, texts: texts, mailer: m, log: log.With("usecase", "application"), now: time.Now}
}

func required(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing %s", application.ErrInvalid, strings.Join(missing, ", "))
	}
	return nil
}

// Submit records a candidate's application. Status is always pending, whatever the client sent.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*application.Application, error) {
	if err := required(map[string]string{
		"job_id":     in.JobID,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
		"cv_url":     in.CVURL,
	}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.CoverLetterURL) == "" && strings.TrimSpace(in.CoverLetter) == "" {
		return nil, fmt.Errorf("%w: missing cover_letter_url", application.ErrInvalid)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fmt.Errorf("%w: malformed email", application.ErrInvalid)
	}

	j, err := u.jobs.GetByID(ctx, strings.TrimSpace(in.JobID))
	if err != nil {
		return nil, err
	}
	j.Resolve(job.Today(u.now()))
	if j.EffectiveStatus != job.StatusActive {
		return nil, application.ErrJobClosed
	}

	coverURL := strings.TrimSpace(in.CoverLetterURL)
	if coverURL == "" {
		res, err := u.texts.StoreText(ctx, j.ID, "cover-letter", in.CoverLetter)
		if err != nil {
			return nil, fmt.Errorf("store cover letter: %w", err)
		}
		coverURL = res.URL
	}

	a := &application.Application{
		ID:                   id.New(),
		JobID:                j.ID,
		FirstName:            strings.TrimSpace(in.FirstName),
		LastName:             strings.TrimSpace(in.LastName),
		Email:                strings.TrimSpace(in.Email),
		Phone:                in.Phone,
		Whatsapp:             in.Whatsapp,
		CVURL:                in.CVURL,
		CVFilename:           in.CVFilename,
		CoverLetterURL:       coverURL,
		AcademicDocumentsURL: in.AcademicDocumentsURL,
		Status:               application.StatusPending,
		IPAddress:            in.IPAddress,
		UserAgent:            in.UserAgent,
	}
	if a.AcademicDocumentsURL == nil {
		a.AcademicDocumentsURL = []string{}
	}
	if err := u.apps.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	a.Job = j

	u.notify(ctx, a, j)
	return a, nil
}

// notify is best-effort: the application is already stored.
func (u *Usecase) notify(ctx context.Context, a *application.Application, j *job.Job) {
	if u.mailer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	applicant := mail.Address{Name: a.FirstName + " " + a.LastName, Address: a.Email}
	msgs := []mailer.Message{{
		To:      []mail.Address{applicant},
		Subject: "We received your application for " + j.Title,
		Text: fmt.Sprintf("Dear %s,\n\nThank you for applying for %s. Our team will review your application and get back to you.\n",
			a.FirstName, j.Title),
	}}
	if j.ApplicationEmail != "" {
		msgs = append(msgs, mailer.Message{
			To:      []mail.Address{{Address: j.ApplicationEmail}},
			ReplyTo: &applicant,
			Subject: "New application: " + j.Title,
			Text: fmt.Sprintf("%s %s applied for %s.\nCV: %s\nCover letter: %s\n",
				a.FirstName, a.LastName, j.Title, a.CVURL, a.CoverLetterURL),
		})
	}
	for _, m := range msgs {
		if err := u.mailer.Send(ctx, m); err != nil {
			u.log.Warn("application email failed", "application_id", a.ID, "subject", m.Subject, "error", err)
		}
	}
}

func (u *Usecase) List(ctx context.Context, in ListInput) (paging.Result[application.Application], error) {
	p := paging.New(in.Page, in.Limit)
	status := application.Status(strings.TrimSpace(in.Status))
	if status != "" && !status.Valid() {
		return paging.Result[application.Application]{}, application.ErrInvalidStatus
	}
	rows, total, err := u.apps.List(ctx, application.Filter{
		JobID:  strings.TrimSpace(in.JobID),
		Status: status,
		Offset: p.Offset(),
		Limit:  p.Limit,
	})
	if err != nil {
		return paging.Result[application.Application]{}, fmt.Errorf("list applications: %w", err)
	}
	today := job.Today(u.now())
	for i := range rows {
		if rows[i].Job != nil {
			rows[i].Job.Resolve(today)
		}
	}
	return paging.NewResult(p, rows, total), nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*application.Application, error) {
	a, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if a.Job != nil {
		a.Job.Resolve(job.Today(u.now()))
	}
	return a, nil
}

// Review applies an admin status change and/or notes. Illegal transitions are rejected.
func (u *Usecase) Review(ctx context.Context, applicationID string, in ReviewInput) (*application.Application, error) {
	if in.Status == nil && in.AdminNotes == nil {
		return nil, fmt.Errorf("%w: nothing to update", application.ErrInvalid)
	}
	a, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	to := a.Status
	if in.Status != nil {
		to = application.Status(strings.TrimSpace(*in.Status))
		if !to.Valid() {
			return nil, application.ErrInvalidStatus
		}
		if !application.CanTransition(a.Status, to) {
			return nil, fmt.Errorf("%w: %s -> %s", application.ErrInvalidTransition, a.Status, to)
		}
	}
	if err := u.apps.UpdateReview(ctx, a.ID, a.Status, to, in.AdminNotes); err != nil {
		return nil, err
	}
	return u.Get(ctx, a.ID)
}
