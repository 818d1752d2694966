// Package googletasks implements store.Store on top of a Google Tasks list.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"tasktrack/internal/config"
	"tasktrack/internal/domain"
	"tasktrack/internal/store"
)

const (
	// DefaultListID is the special ID for the user's default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks fetched per list request.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// ErrAuth is returned when Google rejects the stored credentials.
var ErrAuth = errors.New("token expired or revoked (run: tasktrack login)")

// ErrTimeout is returned when an API call exceeds APITimeout.
var ErrTimeout = errors.New("request timed out")

// Compile-time check to ensure Store implements store.Store.
var _ store.Store = (*Store)(nil)

// binding ties a local integer identity to a remote task id.
type binding struct {
	id       int
	remoteID string
}

// Store keeps tasks in one Google Tasks list. Remote ids are strings, so the
// store hands out integer ids itself (first id 1, manual ids kept as given)
// and remembers which remote task each one refers to. Bindings live in
// process memory; remote tasks seen for the first time get fresh ids.
type Store struct {
	svc    *tasks.Service
	listID string

	mu       sync.Mutex
	bindings []binding // insertion order
	nextID   int
}

// OAuthConfig reads oauth_client.json from the config directory.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// LoadToken reads token.json from the config directory.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// SaveToken writes token to token.json with mode 0600.
func SaveToken(cfg *config.Config, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.TokenPath(), data, 0600)
}

// New creates a Store for cfg.Google.TaskList.
// Requires oauth_client.json and token.json in the config directory.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	// Token source refreshes the access token as needed.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	listID := cfg.Google.TaskList
	if listID == "" {
		listID = DefaultListID
	}
	return NewWithHTTPClient(ctx, httpClient, listID)
}

// NewWithHTTPClient creates a Store with a custom HTTP client and extra
// client options (tests point option.WithEndpoint at a fake server).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, listID string, opts ...option.ClientOption) (*Store, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Store{svc: svc, listID: listID, nextID: 1}, nil
}

// FindAll returns the list's tasks: bound tasks in insertion order, then
// tasks created elsewhere, which are bound to new ids on the way.
func (s *Store) FindAll(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remote, err := s.listRemote(ctx)
	if err != nil {
		return nil, err
	}

	byRemoteID := make(map[string]*tasks.Task, len(remote))
	for _, rt := range remote {
		byRemoteID[rt.Id] = rt
	}

	kept := make([]binding, 0, len(remote))
	seen := make(map[string]bool, len(remote))
	result := make([]domain.Task, 0, len(remote))

	for _, b := range s.bindings {
		rt, ok := byRemoteID[b.remoteID]
		if !ok {
			continue // deleted remotely
		}
		kept = append(kept, b)
		seen[b.remoteID] = true
		result = append(result, toDomain(b.id, rt))
	}

	for _, rt := range remote {
		if seen[rt.Id] {
			continue
		}
		b := binding{id: s.nextID, remoteID: rt.Id}
		s.nextID++
		kept = append(kept, b)
		seen[rt.Id] = true
		result = append(result, toDomain(b.id, rt))
	}

	s.bindings = kept
	return result, nil
}

// FindByID implements store.Store.
func (s *Store) FindByID(ctx context.Context, id int) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, store.ErrNotFound
	}
	remoteID := s.bindings[i].remoteID

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	rt, err := s.svc.Tasks.Get(s.listID, remoteID).Context(ctx).Do()
	if err != nil {
		err = wrapError(err)
		if store.IsNotFound(err) {
			s.unbind(i)
		}
		return domain.Task{}, err
	}
	if rt.Deleted {
		s.unbind(i)
		return domain.Task{}, store.ErrNotFound
	}
	return toDomain(id, rt), nil
}

// Save inserts the task remotely, then assigns its id. The counter only
// moves once the insert succeeded.
func (s *Store) Save(ctx context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	rt, err := s.svc.Tasks.Insert(s.listID, toRemote(*t)).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}

	if t.ID == 0 {
		t.ID = s.nextID
		s.nextID++
	}
	s.bindings = append(s.bindings, binding{id: t.ID, remoteID: rt.Id})
	return nil
}

// Update replaces the remote task bound to t.ID.
func (s *Store) Update(ctx context.Context, t domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(t.ID)
	if i < 0 {
		return store.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	remote := toRemote(t)
	remote.Id = s.bindings[i].remoteID
	if _, err := s.svc.Tasks.Update(s.listID, remote.Id, remote).Context(ctx).Do(); err != nil {
		err = wrapError(err)
		if store.IsNotFound(err) {
			s.unbind(i)
		}
		return err
	}
	return nil
}

// Delete removes the remote task bound to id. Unbound ids and tasks already
// gone remotely are not errors.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := s.svc.Tasks.Delete(s.listID, s.bindings[i].remoteID).Context(ctx).Do(); err != nil {
		if err = wrapError(err); !store.IsNotFound(err) {
			return err
		}
	}
	s.unbind(i)
	return nil
}

// listRemote fetches every task in the list, completed and hidden included.
func (s *Store) listRemote(ctx context.Context) ([]*tasks.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []*tasks.Task
	err := s.svc.Tasks.List(s.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			result = append(result, resp.Items...)
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// indexOf returns the position of the first binding for id, or -1.
func (s *Store) indexOf(id int) int {
	for i, b := range s.bindings {
		if b.id == id {
			return i
		}
	}
	return -1
}

func (s *Store) unbind(i int) {
	s.bindings = append(s.bindings[:i], s.bindings[i+1:]...)
}

func toDomain(id int, rt *tasks.Task) domain.Task {
	return domain.Task{
		ID:          id,
		Title:       rt.Title,
		Description: rt.Notes,
		Completed:   rt.Status == statusCompleted,
	}
}

func toRemote(t domain.Task) *tasks.Task {
	rt := &tasks.Task{
		Title:  t.Title,
		Notes:  t.Description,
		Status: statusNeedsAction,
	}
	if t.Completed {
		rt.Status = statusCompleted
	} else {
		// Reopening requires clearing the completion timestamp.
		rt.NullFields = []string{"Completed"}
	}
	return rt
}

// wrapError maps API errors onto store and package errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return store.ErrNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrAuth
		}
	}

	return err
}
