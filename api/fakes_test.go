package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rpupo63/research-lab-backend/errs"
	"github.com/rpupo63/research-lab-backend/models"
	"github.com/rpupo63/research-lab-backend/services"
)

// fakeClock advances one second per reading.
type fakeClock struct {
	mu   sync.Mutex
	next time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{next: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Second)
	return now
}

// memStore keeps rows in insertion order and hands out deep copies, the way
// a database round trip would.
type memStore[T any, P recordPtr[T]] struct {
	mu     sync.Mutex
	rows   []T
	nextID uint
	entity string
	clock  *fakeClock
	err    error
}

func newMemStore[T any, P recordPtr[T]](entity string, clock *fakeClock) *memStore[T, P] {
	return &memStore[T, P]{entity: entity, clock: clock}
}

func cloneRow[T any](row T) T {
	data, _ := json.Marshal(row)
	var copied T
	_ = json.Unmarshal(data, &copied)
	return copied
}

func (s *memStore[T, P]) FindAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	rows := make([]T, 0, len(s.rows))
	for i := len(s.rows) - 1; i >= 0; i-- {
		rows = append(rows, cloneRow(s.rows[i]))
	}
	return rows, nil
}

func (s *memStore[T, P]) FindByID(ctx context.Context, id uint) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	for _, row := range s.rows {
		if P(&row).Base().ID == id {
			copied := cloneRow(row)
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore[T, P]) Add(ctx context.Context, row *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	p := P(row)
	p.Normalize()
	s.nextID++
	p.Base().ID = s.nextID
	p.Base().StampCreated(s.clock.now())
	s.rows = append(s.rows, cloneRow(*row))
	return nil
}

func (s *memStore[T, P]) Update(ctx context.Context, row *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	p := P(row)
	p.Normalize()
	for i := range s.rows {
		stored := P(&s.rows[i]).Base()
		if stored.ID == p.Base().ID {
			p.Base().CreatedAt = stored.CreatedAt
			p.Base().StampUpdated(s.clock.now())
			s.rows[i] = cloneRow(*row)
			return nil
		}
	}
	return errs.NewNotFound(s.entity)
}

func (s *memStore[T, P]) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	for i := range s.rows {
		if P(&s.rows[i]).Base().ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFound(s.entity)
}

func (s *memStore[T, P]) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type memResearchStore struct {
	*memStore[models.Research, *models.Research]
}

func (s memResearchStore) FindByIDs(ctx context.Context, ids []uint) ([]models.Research, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	research := make([]models.Research, 0, len(ids))
	for _, row := range all {
		if wanted[row.ID] {
			research = append(research, row)
		}
	}
	return research, nil
}

type fakeUploader struct {
	filename    string
	contentType string
	body        string
	err         error
}

func (f *fakeUploader) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (services.StoredObject, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return services.StoredObject{}, err
	}
	f.filename = filename
	f.contentType = contentType
	f.body = string(data)
	if f.err != nil {
		return services.StoredObject{}, f.err
	}
	key := "lab-website/0f8fad5b-" + services.SanitizeFilename(filename)
	return services.StoredObject{
		URL:         "https://lab-assets.s3.us-east-1.amazonaws.com/" + key,
		Key:         key,
		Bucket:      "lab-assets",
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	}, nil
}

type testAPI struct {
	router       *chi.Mux
	research     memResearchStore
	projects     *memStore[models.Project, *models.Project]
	publications *memStore[models.Publication, *models.Publication]
	gallery      *memStore[models.GalleryItem, *models.GalleryItem]
}

func newTestAPI(t *testing.T, c map[string]string, uploader Uploader) *testAPI {
	t.Helper()
	clock := newFakeClock()
	api := &testAPI{
		research:     memResearchStore{newMemStore[models.Research, *models.Research]("research", clock)},
		projects:     newMemStore[models.Project, *models.Project]("project", clock),
		publications: newMemStore[models.Publication, *models.Publication]("publication", clock),
		gallery:      newMemStore[models.GalleryItem, *models.GalleryItem]("gallery item", clock),
	}
	api.router = newRouter(stores{
		research:     api.research,
		projects:     api.projects,
		publications: api.publications,
		gallery:      api.gallery,
	}, uploader, withConfig(c), withStartupTime(time.Now().Add(-time.Minute)))
	return api
}

func (a *testAPI) do(t *testing.T, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
}
