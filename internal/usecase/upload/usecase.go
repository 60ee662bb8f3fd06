package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"schoolsite-backend/internal/infrastructure/logger"
	"schoolsite-backend/pkg/id"
)

type Usecase struct {
	store ObjectStore
	ttl   time.Duration
	log   *logger.Logger
	now   func() time.Time
}

func NewUsecase(store ObjectStore, signedURLTTL time.Duration, log *logger.Logger) *Usecase {
	return &Usecase{store: store, ttl: signedURLTTL, log: log.With("usecase", "upload"), now: time.Now}
}

var reSegment = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// documentPrefix scopes applicant documents by job; files sent before a job is chosen go to general.
func documentPrefix(jobID string) (string, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return "job-applications/general", nil
	}
	if !reSegment.MatchString(jobID) {
		return "", fmt.Errorf("%w: malformed job id", ErrInvalid)
	}
	return "job-applications/" + jobID, nil
}

// UploadDocument stores a CV, cover letter or academic document.
func (u *Usecase) UploadDocument(ctx context.Context, f File, jobID string) (*Result, error) {
	prefix, err := documentPrefix(jobID)
	if err != nil {
		return nil, err
	}
	return u.put(ctx, prefix, f, documentTypes)
}

// UploadPhoto stores a child profile photo under children/<childID>.
func (u *Usecase) UploadPhoto(ctx context.Context, childID string, f File) (*Result, error) {
	if !reSegment.MatchString(childID) {
		return nil, fmt.Errorf("%w: malformed child id", ErrInvalid)
	}
	return u.put(ctx, "children/"+childID, f, photoTypes)
}

// StoreText saves free text as a text/plain document next to the job's uploads.
func (u *Usecase) StoreText(ctx context.Context, jobID, baseName, text string) (*Result, error) {
	prefix, err := documentPrefix(jobID)
	if err != nil {
		return nil, err
	}
	body := []byte(text)
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty text", ErrInvalid)
	}
	if len(body) > MaxSize {
		return nil, ErrTooLarge
	}
	key := path.Join(prefix, u.objectName(".txt"))
	if err := u.store.Put(ctx, key, "text/plain; charset=utf-8", bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("store text: %w", err)
	}
	return &Result{URL: u.sign(ctx, key), Filename: baseName + ".txt", Path: key}, nil
}

// Remove deletes a stored object; used when a photo is replaced.
func (u *Usecase) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return u.store.Delete(ctx, key)
}

func (u *Usecase) put(ctx context.Context, prefix string, f File, allowed allowList) (*Result, error) {
	ext, contentType, err := checkType(f, allowed)
	if err != nil {
		return nil, err
	}
	if f.Size > MaxSize {
		return nil, ErrTooLarge
	}
	if f.Body == nil {
		return nil, fmt.Errorf("%w: missing file body", ErrInvalid)
	}
	// read one byte past the limit so an under-declared size is still caught
	data, err := io.ReadAll(io.LimitReader(f.Body, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalid)
	}

	key := path.Join(prefix, u.objectName(ext))
	if err := u.store.Put(ctx, key, contentType, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	return &Result{URL: u.sign(ctx, key), Filename: filepath.Base(f.Filename), Path: key}, nil
}

// checkType requires the extension and the declared media type to be allowed and to agree.
func checkType(f File, allowed allowList) (ext, contentType string, err error) {
	ext = strings.ToLower(filepath.Ext(f.Filename))
	want, ok := allowed[ext]
	if !ok {
		return "", "", fmt.Errorf("%w: extension %q", ErrUnsupportedType, ext)
	}
	mt, _, perr := mime.ParseMediaType(f.ContentType)
	if perr != nil {
		return "", "", fmt.Errorf("%w: content type %q", ErrUnsupportedType, f.ContentType)
	}
	if mt != want {
		return "", "", fmt.Errorf("%w: %s does not match %s", ErrUnsupportedType, mt, ext)
	}
	return ext, want, nil
}

func (u *Usecase) objectName(ext string) string {
	return fmt.Sprintf("%d-%s%s", u.now().UnixMilli(), id.NewHex(8), ext)
}

// sign falls back to the raw object path; the upload itself already succeeded.
func (u *Usecase) sign(ctx context.Context, key string) string {
	url, err := u.store.SignedURL(ctx, key, u.ttl)
	if err != nil {
		u.log.Warn("signed url failed, returning object path", "path", key, "error", err)
		return key
	}
	return url
}
