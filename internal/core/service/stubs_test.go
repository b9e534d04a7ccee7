package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// In-memory collaborators shared by the service tests.

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateUser
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) CountByEmail(_ context.Context, email, excludeID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) && u.ID != excludeID {
			n++
		}
	}
	return n, nil
}

type stubSessionStore struct {
	mu      sync.Mutex
	markers map[string]domain.SessionMarker
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{markers: make(map[string]domain.SessionMarker)}
}

func (s *stubSessionStore) Get(_ context.Context, sid string) (*domain.SessionMarker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	marker, ok := s.markers[sid]
	if !ok {
		return nil, nil
	}
	return &marker, nil
}

func (s *stubSessionStore) Put(_ context.Context, sid string, marker domain.SessionMarker, _ bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[sid] = marker
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markers, sid)
	return nil
}

type stubFileRepo struct {
	mu    sync.Mutex
	files map[string]*domain.File
}

func newStubFileRepo() *stubFileRepo {
	return &stubFileRepo{files: make(map[string]*domain.File)}
}

func (r *stubFileRepo) Create(_ context.Context, file *domain.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *file
	r.files[file.ID] = &clone
	return nil
}

func (r *stubFileRepo) FindByFilename(_ context.Context, filename string) (*domain.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.Filename == filename {
			clone := *f
			return &clone, nil
		}
	}
	return nil, domain.ErrFileNotFound
}

func (r *stubFileRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.files[id]; !ok {
		return domain.ErrFileNotFound
	}
	delete(r.files, id)
	return nil
}

func (r *stubFileRepo) ClearAuthor(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.AuthorID == userID {
			f.AuthorID = ""
		}
	}
	return nil
}

type sentMail struct {
	template string
	userID   string
	token    string
}

type stubMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *stubMailer) SendUserCreated(user *domain.User, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{template: "user_created", userID: user.ID, token: token})
}

func (m *stubMailer) SendPasswordReset(user *domain.User, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{template: "password_reset", userID: user.ID, token: token})
}

type memBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (s *memBlobStore) Save(filename string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[filename] = data
	return nil
}

func (s *memBlobStore) Open(filename string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[filename]
	if !ok {
		return nil, domain.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memBlobStore) Remove(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, filename)
	return nil
}
