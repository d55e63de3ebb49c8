// Package client is the command line side of timetrack: an HTTP client
// for the API plus the little state a terminal session keeps.
package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"timetrack/internal/app/client/config"
	"timetrack/internal/domain/category"
	"timetrack/internal/domain/timelog"
	"timetrack/internal/domain/user"
)

var (
	ErrNotLoggedIn = errors.New("not logged in, run: timetrack-client auth login")
	ErrNoRunning   = errors.New("no running time entry")
)

type App struct {
	cfg *config.Config
	log *slog.Logger
	api *HTTPClient
	now func() time.Time
}

func New(cfg *config.Config, log *slog.Logger) *App {
	return &App{
		cfg: cfg,
		log: log,
		api: NewHTTPClient(cfg, log),
		now: time.Now,
	}
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.api.HealthCheck(ctx)
}

func (a *App) Register(ctx context.Context, req user.CreateRequest) (user.User, error) {
	return a.api.Register(ctx, req)
}

// Login checks the credentials and remembers the account for later
// commands.
func (a *App) Login(ctx context.Context, email, password string) (uuid.UUID, error) {
	id, err := a.api.Login(ctx, email, password)
	if err != nil {
		return uuid.Nil, err
	}
	if err := a.saveSession(id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (a *App) Logout() error {
	if err := os.Remove(a.cfg.SessionPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (a *App) CurrentUser() (uuid.UUID, error) {
	data, err := os.ReadFile(a.cfg.SessionPath)
	if os.IsNotExist(err) {
		return uuid.Nil, ErrNotLoggedIn
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("read session: %w", err)
	}
	id, err := uuid.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return uuid.Nil, ErrNotLoggedIn
	}
	return id, nil
}

func (a *App) Categories(ctx context.Context) ([]category.Category, error) {
	userID, err := a.CurrentUser()
	if err != nil {
		return nil, err
	}
	return a.api.Categories(ctx, userID)
}

func (a *App) CreateCategory(ctx context.Context, name, color string) (category.Category, error) {
	userID, err := a.CurrentUser()
	if err != nil {
		return category.Category{}, err
	}
	return a.api.CreateCategory(ctx, userID, category.CreateRequest{Name: name, Color: color})
}

func (a *App) Times(ctx context.Context) ([]timelog.Entry, error) {
	userID, err := a.CurrentUser()
	if err != nil {
		return nil, err
	}
	return a.api.Times(ctx, userID)
}

// Start opens a running entry beginning now.
func (a *App) Start(ctx context.Context, name string, categoryID *uuid.UUID) (timelog.Entry, error) {
	userID, err := a.CurrentUser()
	if err != nil {
		return timelog.Entry{}, err
	}
	return a.api.CreateTime(ctx, userID, timelog.CreateRequest{
		Name:       name,
		StartTime:  a.now().UTC().Truncate(time.Second),
		CategoryID: categoryID,
	})
}

// Stop ends the entry with id now. A nil id stops the most recently
// started running entry.
func (a *App) Stop(ctx context.Context, id *uuid.UUID) (timelog.Entry, error) {
	if id == nil {
		running, err := a.latestRunning(ctx)
		if err != nil {
			return timelog.Entry{}, err
		}
		id = &running.ID
	}

	end := a.now().UTC().Truncate(time.Second)
	return a.api.UpdateTime(ctx, *id, timelog.Patch{EndTime: &end})
}

func (a *App) Delete(ctx context.Context, id uuid.UUID) error {
	return a.api.DeleteTime(ctx, id)
}

func (a *App) latestRunning(ctx context.Context) (timelog.Entry, error) {
	entries, err := a.Times(ctx)
	if err != nil {
		return timelog.Entry{}, err
	}

	var latest *timelog.Entry
	for i := range entries {
		e := &entries[i]
		if e.EndTime != nil {
			continue
		}
		if latest == nil || e.StartTime.After(latest.StartTime) {
			latest = e
		}
	}
	if latest == nil {
		return timelog.Entry{}, ErrNoRunning
	}
	return *latest, nil
}

func (a *App) saveSession(id uuid.UUID) error {
	if err := os.MkdirAll(filepath.Dir(a.cfg.SessionPath), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(a.cfg.SessionPath, []byte(id.String()+"\n"), 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
