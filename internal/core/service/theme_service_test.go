package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/guda/guda-backend/internal/core/domain"
)

type stubThemeRepo struct {
	themes map[string]*domain.Theme
	n      int
}

func newStubThemeRepo() *stubThemeRepo {
	return &stubThemeRepo{themes: make(map[string]*domain.Theme)}
}

func (r *stubThemeRepo) Create(_ context.Context, t *domain.Theme) (*domain.Theme, error) {
	r.n++
	clone := *t
	clone.ID = fmt.Sprintf("t%d", r.n)
	r.themes[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubThemeRepo) List(_ context.Context) ([]domain.Theme, error) {
	out := []domain.Theme{}
	for _, t := range r.themes {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubThemeRepo) FindByID(_ context.Context, id string) (*domain.Theme, error) {
	t, ok := r.themes[id]
	if !ok {
		return nil, domain.ErrThemeNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubThemeRepo) Update(_ context.Context, id string, patch *domain.Theme) (*domain.Theme, error) {
	t, ok := r.themes[id]
	if !ok {
		return nil, domain.ErrThemeNotFound
	}
	if patch.Color != "" {
		t.Color = patch.Color
	}
	clone := *t
	return &clone, nil
}

func (r *stubThemeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.themes[id]; !ok {
		return domain.ErrThemeNotFound
	}
	delete(r.themes, id)
	return nil
}

func TestThemeService_AdminWritesPublicReads(t *testing.T) {
	f := newFixture()
	repo := newStubThemeRepo()
	svc := NewThemeService(f.gate, repo, zerolog.Nop())
	_, creds := f.seedAdmin(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, creds, &domain.Theme{Color: "#fff", FontSize: "14px"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil || got.Color != "#fff" {
		t.Fatalf("get: %+v (%v)", got, err)
	}
	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %d (%v)", len(list), err)
	}

	updated, err := svc.Update(ctx, creds, created.ID, &domain.Theme{Color: "#000"})
	if err != nil || updated.Color != "#000" || updated.FontSize != "14px" {
		t.Fatalf("update: %+v (%v)", updated, err)
	}

	if err := svc.Delete(ctx, creds, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestThemeService_Create_RequiresColorAndFontSize(t *testing.T) {
	f := newFixture()
	repo := newStubThemeRepo()
	svc := NewThemeService(f.gate, repo, zerolog.Nop())
	_, creds := f.seedAdmin(t)

	if _, err := svc.Create(context.Background(), creds, &domain.Theme{Color: "#fff"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(repo.themes) != 0 {
		t.Fatalf("nothing must be stored")
	}
}

func TestThemeService_Delete_UserCredentialsRejected(t *testing.T) {
	f := newFixture()
	repo := newStubThemeRepo()
	svc := NewThemeService(f.gate, repo, zerolog.Nop())
	_, adminCreds := f.seedAdmin(t)
	_, userCreds := f.seedUser(t)

	created, err := svc.Create(context.Background(), adminCreds, &domain.Theme{Color: "#fff", FontSize: "1em"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), userCreds, created.ID); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
	if _, ok := repo.themes[created.ID]; !ok {
		t.Fatalf("theme must survive")
	}
}
