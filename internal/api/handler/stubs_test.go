package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/core/ports"
)

// Stub services shared by the handler tests. Each call records its input and
// plays back whatever the test configured.

type stubUserService struct {
	created []ports.CreateUserInput
	updated map[string]ports.UpdateUserInput
	deleted []string
	user    *domain.User
	users   []domain.User
	err     error

	tokenCalls []string
	passwords  []string
}

func (s *stubUserService) Create(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
	s.created = append(s.created, input)
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) Get(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) List(context.Context) ([]domain.User, error) {
	return s.users, s.err
}

func (s *stubUserService) Update(_ context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if s.updated == nil {
		s.updated = map[string]ports.UpdateUserInput{}
	}
	s.updated[id] = input
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func (s *stubUserService) SendCreatedEmail(_ context.Context, id string) error {
	s.tokenCalls = append(s.tokenCalls, "created:"+id)
	return s.err
}

func (s *stubUserService) SendResetEmail(_ context.Context, email string) error {
	s.tokenCalls = append(s.tokenCalls, "reset:"+email)
	return s.err
}

func (s *stubUserService) PasswordTokenState(_ context.Context, token string) error {
	s.tokenCalls = append(s.tokenCalls, "state:"+token)
	return s.err
}

func (s *stubUserService) SetPassword(_ context.Context, token, password string) error {
	s.tokenCalls = append(s.tokenCalls, "set:"+token)
	s.passwords = append(s.passwords, password)
	return s.err
}

func (s *stubUserService) ResetPassword(_ context.Context, token, password string) error {
	s.tokenCalls = append(s.tokenCalls, "resetpw:"+token)
	s.passwords = append(s.passwords, password)
	return s.err
}

type stubMessageService struct {
	messages []domain.Message
	posted   []string
	deleted  []string
	err      error
}

func (s *stubMessageService) List(context.Context) ([]domain.Message, error) {
	return s.messages, s.err
}

func (s *stubMessageService) Post(_ context.Context, text string) (*domain.Message, error) {
	s.posted = append(s.posted, text)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Message{ID: "m1", Text: text}, nil
}

func (s *stubMessageService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

type stubFileService struct {
	file      *domain.File
	content   string
	mime      string
	err       error
	deletedBy domain.Principal
	deleted   []string
}

func (s *stubFileService) Upload(_ context.Context, principal domain.Principal, content io.Reader, originalFilename string) (*domain.File, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.file, nil
}

func (s *stubFileService) Open(context.Context, string) (*domain.File, io.ReadCloser, string, error) {
	if s.err != nil {
		return nil, nil, "", s.err
	}
	return s.file, io.NopCloser(strings.NewReader(s.content)), s.mime, nil
}

func (s *stubFileService) Delete(_ context.Context, principal domain.Principal, filename string) error {
	s.deletedBy = principal
	s.deleted = append(s.deleted, filename)
	return s.err
}

// newJSONContext builds an echo context carrying a JSON body, wired with the
// request validator the router installs.
func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
