package storagemock

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"
)

var ErrSign = errors.New("storagemock: signing disabled")

type Object struct {
	ContentType string
	Data        []byte
}

// Store keeps objects in memory. PutErr and SignErr force failures.
type Store struct {
	mu      sync.Mutex
	Objects map[string]Object
	Deleted []string
	PutErr  error
	SignErr error
}

func New() *Store { return &Store{Objects: map[string]Object{}} }

func (s *Store) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Objects == nil {
		s.Objects = map[string]Object{}
	}
	s.Objects[key] = Object{ContentType: contentType, Data: b}
	return nil
}

func (s *Store) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.SignErr != nil {
		return "", s.SignErr
	}
	return "https://signed.example/" + key + "?ttl=" + ttl.String(), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, key)
	s.Deleted = append(s.Deleted, key)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Objects)
}
