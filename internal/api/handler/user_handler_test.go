package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
	"github.com/visitorgate/visitor-admin/internal/core/presence"
)

type stubUserService struct {
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.UserAccount, error)
	listFn   func(ctx context.Context) (*ports.UserList, error)
	updateFn func(ctx context.Context, in ports.UpdateUserInput) (*domain.UserAccount, error)
	deleteFn func(ctx context.Context, uid string) error
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.UserAccount, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) List(ctx context.Context) (*ports.UserList, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Update(ctx context.Context, in ports.UpdateUserInput) (*domain.UserAccount, error) {
	return s.updateFn(ctx, in)
}

func (s *stubUserService) Delete(ctx context.Context, uid string) error {
	return s.deleteFn(ctx, uid)
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) (*ports.UserList, error) {
			label := presence.StatusLabel(domain.UserAccount{IsOnline: true}, time.Now())
			return &ports.UserList{
				Users: []ports.UserView{{
					User:  domain.UserAccount{UID: "a", Email: "a@x.io", Role: domain.RoleAdmin, IsOnline: true},
					Label: label,
					Color: presence.ColorGreen,
				}},
				Online: 1,
				Total:  1,
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/v1/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Online != 1 || resp.Total != 1 {
		t.Fatalf("unexpected counts: %+v", resp)
	}
	if u := resp.Users[0]; !u.IsOnline || u.StatusLabel != "Online" || u.StatusColor != string(presence.ColorGreen) {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserHandler_Create(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.UserAccount, error) {
			if in.Email != "new@gate.test" || in.Role != domain.RoleUser {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.UserAccount{UID: "u-9", Email: in.Email, Role: in.Role, Platform: domain.PlatformMobile}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/v1/users", `{"email":"new@gate.test","password":"secret1","role":"user"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	c, _ = newJSONContext(http.MethodPost, "/v1/users", `{"email":"new@gate.test","password":"123"}`)
	if code := httpCode(t, h.Create(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for short password, got %d", code)
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.UserAccount, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewUserHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/v1/users", `{"email":"dup@gate.test","password":"secret1"}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserHandler_Update(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, in ports.UpdateUserInput) (*domain.UserAccount, error) {
			if in.UID != "u-2" || in.Role == nil || *in.Role != domain.RoleAdmin || in.DisplayName != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.UserAccount{UID: in.UID, Role: *in.Role}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodPatch, "/v1/users/u-2", `{"role":"admin"}`)
	c.SetParamNames("uid")
	c.SetParamValues("u-2")
	if err := h.Update(withClaims(c, "admin-1", domain.RoleAdmin)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_Rejections(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	cases := map[string]struct {
		target string
		body   string
	}{
		"empty body":   {target: "u-2", body: `{}`},
		"own role":     {target: "admin-1", body: `{"role":"user"}`},
		"unknown role": {target: "u-2", body: `{"role":"owner"}`},
	}
	for name, tc := range cases {
		c, _ := newJSONContext(http.MethodPatch, "/v1/users/"+tc.target, tc.body)
		c.SetParamNames("uid")
		c.SetParamValues(tc.target)
		if code := httpCode(t, h.Update(withClaims(c, "admin-1", domain.RoleAdmin))); code != http.StatusUnprocessableEntity {
			t.Errorf("%s: expected 422, got %d", name, code)
		}
	}
}

func TestUserHandler_Delete(t *testing.T) {
	var deleted string
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, uid string) error {
			deleted = uid
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodDelete, "/v1/users/u-2", "")
	c.SetParamNames("uid")
	c.SetParamValues("u-2")
	if err := h.Delete(withClaims(c, "admin-1", domain.RoleAdmin)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != "u-2" {
		t.Fatalf("expected 204 deleting u-2, got %d deleting %q", rec.Code, deleted)
	}

	c, _ = newJSONContext(http.MethodDelete, "/v1/users/admin-1", "")
	c.SetParamNames("uid")
	c.SetParamValues("admin-1")
	if code := httpCode(t, h.Delete(withClaims(c, "admin-1", domain.RoleAdmin))); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for self-delete, got %d", code)
	}
}
