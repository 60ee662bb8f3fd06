package upload

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"schoolsite-backend/internal/infrastructure/logger"
	"schoolsite-backend/internal/testutil/storagemock"
)

func newTestUsecase(store *storagemock.Store) *Usecase {
	u := NewUsecase(store, 365*24*time.Hour, logger.NewNop())
	u.now = func() time.Time { return time.UnixMilli(1741620600123) }
	return u
}

func pdf(name, contentType string, body []byte) File {
	return File{Filename: name, ContentType: contentType, Size: int64(len(body)), Body: bytes.NewReader(body)}
}

func TestUploadDocument(t *testing.T) {
	store := storagemock.New()
	u := newTestUsecase(store)

	res, err := u.UploadDocument(context.Background(), pdf("My CV.PDF", "application/pdf", []byte("%PDF-1.7")), "job-123")
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}
	if !strings.HasPrefix(res.Path, "job-applications/job-123/1741620600123-") || !strings.HasSuffix(res.Path, ".pdf") {
		t.Fatalf("path = %q", res.Path)
	}
	if len(res.Path) != len("job-applications/job-123/1741620600123-")+16+len(".pdf") {
		t.Fatalf("path = %q, want 16 hex chars of randomness", res.Path)
	}
	if res.Filename != "My CV.PDF" {
		t.Fatalf("filename = %q", res.Filename)
	}
	if !strings.HasPrefix(res.URL, "https://signed.example/"+res.Path) || !strings.Contains(res.URL, "ttl=8760h") {
		t.Fatalf("url = %q", res.URL)
	}
	if obj := store.Objects[res.Path]; obj.ContentType != "application/pdf" {
		t.Fatalf("stored content type = %q", obj.ContentType)
	}
}

func TestUploadDocument_GeneralPrefix(t *testing.T) {
	u := newTestUsecase(storagemock.New())
	docx := "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	res, err := u.UploadDocument(context.Background(), pdf("letter.docx", docx, []byte("PK")), "")
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}
	if !strings.HasPrefix(res.Path, "job-applications/general/") {
		t.Fatalf("path = %q", res.Path)
	}
}

func TestUploadDocument_Rejections(t *testing.T) {
	big := bytes.Repeat([]byte("a"), MaxSize+1)
	tests := []struct {
		name    string
		file    File
		jobID   string
		wantErr error
	}{
		{"executable", pdf("cv.exe", "application/pdf", []byte("x")), "", ErrUnsupportedType},
		{"image as document", pdf("cv.png", "image/png", []byte("x")), "", ErrUnsupportedType},
		{"mime and extension disagree", pdf("cv.pdf", "application/msword", []byte("x")), "", ErrUnsupportedType},
		{"missing content type", pdf("cv.pdf", "", []byte("x")), "", ErrUnsupportedType},
		{"declared too large", File{Filename: "cv.pdf", ContentType: "application/pdf", Size: MaxSize + 1, Body: bytes.NewReader(nil)}, "", ErrTooLarge},
		{"under-declared too large", File{Filename: "cv.pdf", ContentType: "application/pdf", Size: 10, Body: bytes.NewReader(big)}, "", ErrTooLarge},
		{"empty", pdf("cv.pdf", "application/pdf", nil), "", ErrInvalid},
		{"path traversal job id", pdf("cv.pdf", "application/pdf", []byte("x")), "../admin", ErrInvalid},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			store := storagemock.New()
			_, err := newTestUsecase(store).UploadDocument(context.Background(), tt.file, tt.jobID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if store.Len() != 0 {
				t.Fatalf("rejected upload reached storage")
			}
		})
	}
}

func TestUploadDocument_ExactlyMaxSize(t *testing.T) {
	body := bytes.Repeat([]byte("a"), MaxSize)
	if _, err := newTestUsecase(storagemock.New()).UploadDocument(context.Background(), pdf("cv.pdf", "application/pdf", body), ""); err != nil {
		t.Fatalf("5 MiB exactly should pass: %v", err)
	}
}

func TestUpload_SigningFailureFallsBackToPath(t *testing.T) {
	store := storagemock.New()
	store.SignErr = storagemock.ErrSign
	res, err := newTestUsecase(store).UploadDocument(context.Background(), pdf("cv.pdf", "application/pdf; charset=binary", []byte("x")), "")
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}
	if res.URL != res.Path {
		t.Fatalf("url = %q, want raw path %q", res.URL, res.Path)
	}
}

func TestUpload_StoreFailure(t *testing.T) {
	store := storagemock.New()
	store.PutErr = errors.New("bucket gone")
	if _, err := newTestUsecase(store).UploadDocument(context.Background(), pdf("cv.pdf", "application/pdf", []byte("x")), ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestUploadPhoto(t *testing.T) {
	store := storagemock.New()
	u := newTestUsecase(store)
	res, err := u.UploadPhoto(context.Background(), "child-1", File{Filename: "me.webp", ContentType: "image/webp", Size: 3, Body: strings.NewReader("RIF")})
	if err != nil {
		t.Fatalf("UploadPhoto: %v", err)
	}
	if !strings.HasPrefix(res.Path, "children/child-1/") {
		t.Fatalf("path = %q", res.Path)
	}
	if _, err := u.UploadPhoto(context.Background(), "child-1", pdf("cv.pdf", "application/pdf", []byte("x"))); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("pdf photo err = %v", err)
	}
	if err := u.Remove(context.Background(), res.Path); err != nil || store.Len() != 0 {
		t.Fatalf("Remove: %v (objects=%d)", err, store.Len())
	}
}

func TestStoreText(t *testing.T) {
	store := storagemock.New()
	res, err := newTestUsecase(store).StoreText(context.Background(), "job-1", "cover-letter", "Dear hiring team")
	if err != nil {
		t.Fatalf("StoreText: %v", err)
	}
	obj := store.Objects[res.Path]
	if string(obj.Data) != "Dear hiring team" || !strings.HasPrefix(obj.ContentType, "text/plain") {
		t.Fatalf("stored = %q (%s)", obj.Data, obj.ContentType)
	}
	if !strings.HasPrefix(res.Path, "job-applications/job-1/") || res.Filename != "cover-letter.txt" {
		t.Fatalf("result = %+v", res)
	}
	if _, err := newTestUsecase(store).StoreText(context.Background(), "job-1", "cover-letter", "   "); !errors.Is(err, ErrInvalid) {
		t.Fatalf("blank text err = %v", err)
	}
}
