// Package testutil holds in-memory stand-ins for the stores and the mail
// transport, shared by service and handler tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/mailer"
	"portfolio/internal/models"
)

// ErrStoreDown is a convenient failure to inject through a Fail field.
var ErrStoreDown = errors.New("connection refused")

type ProjectStore struct {
	mu       sync.Mutex
	Projects map[uuid.UUID]models.Project
	clock    time.Time
	Fail     error
}

func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		Projects: map[uuid.UUID]models.Project{},
		clock:    time.Date(2025, 9, 28, 12, 0, 0, 0, time.UTC),
	}
}

func (f *ProjectStore) sorted() []models.Project {
	out := make([]models.Project, 0, len(f.Projects))
	for _, p := range f.Projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateCreated.After(out[j].DateCreated) })
	return out
}

func (f *ProjectStore) ListRecent(_ context.Context, n int) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}
	all := f.sorted()
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (f *ProjectStore) ListAll(_ context.Context, category string) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}
	out := []models.Project{}
	for _, p := range f.sorted() {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *ProjectStore) DistinctCategories(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}
	seen := map[string]bool{}
	out := []string{}
	for _, p := range f.Projects {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *ProjectStore) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}
	p, ok := f.Projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *ProjectStore) Upsert(_ context.Context, id *uuid.UUID, apply func(*models.Project)) (*models.Project, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, false, f.Fail
	}
	if id != nil {
		if p, ok := f.Projects[*id]; ok {
			apply(&p)
			f.Projects[p.ID] = p
			return &p, false, nil
		}
	}
	f.clock = f.clock.Add(time.Minute)
	p := models.Project{ID: uuid.New(), DateCreated: f.clock}
	apply(&p)
	f.Projects[p.ID] = p
	return &p, true, nil
}

func (f *ProjectStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return false, f.Fail
	}
	if _, ok := f.Projects[id]; !ok {
		return false, nil
	}
	delete(f.Projects, id)
	return true, nil
}

type CredentialStore struct {
	Users map[string]models.AdminUser
	Fail  error
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{Users: map[string]models.AdminUser{}}
}

func (f *CredentialStore) FindByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	if f.Fail != nil {
		return nil, f.Fail
	}
	u, ok := f.Users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *CredentialStore) CreateIfAbsent(_ context.Context, user *models.AdminUser) (bool, error) {
	if f.Fail != nil {
		return false, f.Fail
	}
	user.Prepare()
	if _, ok := f.Users[user.Username]; ok {
		return false, nil
	}
	f.Users[user.Username] = *user
	return true, nil
}

type ContactStore struct {
	Messages []models.ContactMessage
	Fail     error
}

func (f *ContactStore) Create(_ context.Context, msg *models.ContactMessage) error {
	if f.Fail != nil {
		return f.Fail
	}
	f.Messages = append(f.Messages, *msg)
	return nil
}

func (f *ContactStore) ListRecent(_ context.Context, n int) ([]models.ContactMessage, error) {
	if f.Fail != nil {
		return nil, f.Fail
	}
	out := make([]models.ContactMessage, 0, n)
	for i := len(f.Messages) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, f.Messages[i])
	}
	return out, nil
}

type Mailer struct {
	Sent []mailer.Message
	Fail error
}

func (f *Mailer) Send(_ context.Context, msg mailer.Message) error {
	if f.Fail != nil {
		return f.Fail
	}
	f.Sent = append(f.Sent, msg)
	return nil
}

type SessionStore struct {
	Sessions map[string]map[string]string
	Flashes  map[string][]models.Flash
	Fail     error
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		Sessions: map[string]map[string]string{},
		Flashes:  map[string][]models.Flash{},
	}
}

func (f *SessionStore) Create(_ context.Context, id string, _ time.Duration) error {
	if f.Fail != nil {
		return f.Fail
	}
	f.Sessions[id] = map[string]string{}
	return nil
}

func (f *SessionStore) Exists(_ context.Context, id string) (bool, error) {
	if f.Fail != nil {
		return false, f.Fail
	}
	_, ok := f.Sessions[id]
	return ok, nil
}

func (f *SessionStore) SetFlag(_ context.Context, id, field string) error {
	if f.Fail != nil {
		return f.Fail
	}
	if f.Sessions[id] == nil {
		f.Sessions[id] = map[string]string{}
	}
	f.Sessions[id][field] = "1"
	return nil
}

func (f *SessionStore) DeleteFlag(_ context.Context, id, field string) error {
	if f.Fail != nil {
		return f.Fail
	}
	delete(f.Sessions[id], field)
	return nil
}

func (f *SessionStore) HasFlag(_ context.Context, id, field string) (bool, error) {
	if f.Fail != nil {
		return false, f.Fail
	}
	_, ok := f.Sessions[id][field]
	return ok, nil
}

func (f *SessionStore) PushFlash(_ context.Context, id string, flash models.Flash, _ time.Duration) error {
	if f.Fail != nil {
		return f.Fail
	}
	f.Flashes[id] = append(f.Flashes[id], flash)
	return nil
}

func (f *SessionStore) PopFlashes(_ context.Context, id string) ([]models.Flash, error) {
	if f.Fail != nil {
		return nil, f.Fail
	}
	out := f.Flashes[id]
	delete(f.Flashes, id)
	return out, nil
}
