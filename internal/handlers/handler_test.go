// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared fakes and helpers for handler tests.
// Handlers depend on small interfaces, so these tests need no database.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"brandstudio/internal/design"
	"brandstudio/internal/middleware"
	"brandstudio/internal/models"
	"brandstudio/internal/store"
)

var testUser = &models.User{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Email: "demo@example.com"}

// fakeDesigner returns a fixed result or error and records the request.
type fakeDesigner struct {
	result *design.Result
	err    error
	got    *design.Request
}

func (f *fakeDesigner) Run(_ context.Context, req design.Request) (*design.Result, error) {
	f.got = &req
	if req.Prompt == "" && req.TemplateID == nil {
		return nil, design.ErrEmptyPrompt
	}
	return f.result, f.err
}

type fakeUploader struct {
	mu      sync.Mutex
	folders []string
	types   []string
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, folder, contentType string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders = append(f.folders, folder)
	f.types = append(f.types, contentType)
	return "https://cdn.example.com/" + folder + "/" + uuid.NewString(), nil
}

type fakeAnalyzer struct {
	analysis *models.BrandAnalysis
	err      error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ []string) (*models.BrandAnalysis, error) {
	return f.analysis, f.err
}

type fakeProfiles struct {
	created *models.BrandProfile
	err     error
	stored  []models.BrandProfile
	findErr error
}

func (f *fakeProfiles) Create(p *models.BrandProfile) (*models.BrandProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := *p
	out.ID = uuid.New()
	out.CreatedAt = time.Now()
	f.created = &out
	return &out, nil
}

func (f *fakeProfiles) FindByID(id uuid.UUID) (*models.BrandProfile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.stored {
		if f.stored[i].ID == id {
			return &f.stored[i], nil
		}
	}
	return nil, nil
}

// fakeAgentLogs returns fixed rows and records the requested limit.
type fakeAgentLogs struct {
	logs  []models.AgentLog
	err   error
	user  uuid.UUID
	limit int
}

func (f *fakeAgentLogs) ListByUser(userID uuid.UUID, limit int) ([]models.AgentLog, error) {
	f.user, f.limit = userID, limit
	return f.logs, f.err
}

type fakeTemplates struct {
	items []models.WorkflowTemplate
	err   error
}

func (f *fakeTemplates) ListActive() ([]models.WorkflowTemplate, error) {
	return f.items, f.err
}

func (f *fakeTemplates) FindByID(id uuid.UUID) (*models.WorkflowTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, nil
}

// memPosts is an in-memory PostRepository.
type memPosts struct {
	mu    sync.Mutex
	posts map[uuid.UUID]models.GeneratedPost
	err   error
}

func newMemPosts() *memPosts {
	return &memPosts{posts: map[uuid.UUID]models.GeneratedPost{}}
}

func (m *memPosts) Create(p *models.GeneratedPost) (*models.GeneratedPost, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *p
	out.ID = uuid.New()
	out.CreatedAt = time.Now().Add(time.Duration(len(m.posts)) * time.Millisecond)
	m.posts[out.ID] = out
	return &out, nil
}

func (m *memPosts) ListByUser(userID uuid.UUID) ([]models.GeneratedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.GeneratedPost
	for _, p := range m.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memPosts) FindByID(id uuid.UUID) (*models.GeneratedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPosts) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// solidLoader serves a 4x4 red image for every src.
type solidLoader struct{ err error }

func (l solidLoader) Load(context.Context, string) (image.Image, error) {
	if l.err != nil {
		return nil, l.err
	}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return img, nil
}

// recordingLoader behaves like solidLoader and records every src.
type recordingLoader struct {
	mu   sync.Mutex
	srcs []string
}

func (l *recordingLoader) Load(ctx context.Context, src string) (image.Image, error) {
	l.mu.Lock()
	l.srcs = append(l.srcs, src)
	l.mu.Unlock()
	return solidLoader{}.Load(ctx, src)
}

var errUpstream = errors.New("upstream unavailable")

// serve runs h behind a chi route so {id} params resolve, with the test
// user in context.
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)
	req = req.WithContext(middleware.WithUser(req.Context(), testUser))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

// decodeBody unmarshals a JSON response.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return out
}

func sampleDesign() models.Design {
	return models.Design{
		Elements: []models.DesignElement{
			{ID: "image", Type: models.ElementImage, Width: 100, Height: 100, Src: "https://cdn.example.com/a.png"},
			{ID: "headline", Type: models.ElementText, X: 10, Y: 10, Width: 80, Height: 20, Text: "Fresh Roast", Color: "#ffffff"},
		},
		Brand: models.BrandSnapshot{Name: "Acme Coffee"},
	}
}
