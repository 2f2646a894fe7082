package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ntu-info/emogo-backend-chaudharyinder/constant"
	"github.com/ntu-info/emogo-backend-chaudharyinder/dto"
	"github.com/ntu-info/emogo-backend-chaudharyinder/entities"
	"github.com/ntu-info/emogo-backend-chaudharyinder/handler"
	"github.com/ntu-info/emogo-backend-chaudharyinder/pkg/videostore"
	"github.com/ntu-info/emogo-backend-chaudharyinder/repository"
	"github.com/ntu-info/emogo-backend-chaudharyinder/service"
)

// memRepo implements the store contract in memory: insert generates the
// id, find sorts on the raw timestamp string descending, deletes report
// their count.
type memRepo struct {
	mu      sync.Mutex
	records map[primitive.ObjectID]*entities.Record
	failing bool
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[primitive.ObjectID]*entities.Record)}
}

func (m *memRepo) Insert(_ context.Context, record *entities.Record) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return primitive.NilObjectID, errors.New("connection reset")
	}

	id := primitive.NewObjectID()
	stored := *record
	stored.ID = id
	m.records[id] = &stored
	return id, nil
}

func (m *memRepo) Find(_ context.Context, query dto.ListQuery) ([]*entities.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]*entities.Record, 0)
	for _, record := range m.records {
		if query.Mood != "" && record.Mood != query.Mood {
			continue
		}
		matched = append(matched, record)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp > matched[j].Timestamp
	})

	if query.Skip > 0 {
		if query.Skip >= int64(len(matched)) {
			return []*entities.Record{}, nil
		}
		matched = matched[query.Skip:]
	}
	if query.Limit > 0 && int64(len(matched)) > query.Limit {
		matched = matched[:query.Limit]
	}

	return matched, nil
}

func (m *memRepo) FindByID(_ context.Context, id primitive.ObjectID) (*entities.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return record, nil
}

func (m *memRepo) DeleteByID(_ context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return 0, nil
	}
	delete(m.records, id)
	return 1, nil
}

func (m *memRepo) DeleteVideoless(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for id, record := range m.records {
		if record.VlogFile == "" || record.VlogFile == constant.DefaultVlogFile {
			delete(m.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func setupRouter(t *testing.T, repo repository.RecordRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	videos, err := videostore.NewLocal(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	h := handler.New(service.NewService(repo), videos)

	r := gin.New()
	r.SetHTMLTemplate(handler.Templates())
	r.GET("/", h.Health)
	r.POST("/record", h.CreateRecord)
	r.GET("/record/:id", h.GetRecord)
	r.DELETE("/record/:id", h.DeleteRecord)
	r.GET("/records", h.ListRecords)
	r.DELETE("/records/cleanup", h.CleanupRecords)
	r.POST("/videos", h.UploadVideo)
	r.GET("/export", h.Dashboard)
	return r
}

func perform(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func recordPayload(mood, timestamp string) map[string]any {
	return map[string]any{
		"mood":      mood,
		"latitude":  40.7128,
		"longitude": -74.0060,
		"timestamp": timestamp,
	}
}

func createRecord(t *testing.T, r *gin.Engine, payload map[string]any) string {
	t.Helper()

	w := perform(r, http.MethodPost, "/record", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.RecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)
	require.Len(t, resp.ID, 24)
	return resp.ID
}

func TestHealth(t *testing.T) {
	r := setupRouter(t, newMemRepo())

	w := perform(r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "operational")
}

func TestCreateAndGetRecord(t *testing.T) {
	r := setupRouter(t, newMemRepo())

	payload := recordPayload("happy", "2025-01-01T00:00:00Z")
	payload["note"] = "Beautiful day in NYC"
	id := createRecord(t, r, payload)

	w := perform(r, http.MethodGet, "/record/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var record entities.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "happy", record.Mood)
	assert.Equal(t, id, record.ID.Hex())
	assert.Equal(t, constant.DefaultVlogFile, record.VlogFile)
	require.NotNil(t, record.Note)
	assert.Equal(t, "Beautiful day in NYC", *record.Note)
}

func TestCreateRecord_Validation(t *testing.T) {
	r := setupRouter(t, newMemRepo())

	t.Run("out-of-range latitude", func(t *testing.T) {
		payload := recordPayload("happy", "2025-01-01T00:00:00Z")
		payload["latitude"] = 91.0

		w := perform(r, http.MethodPost, "/record", payload)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "latitude", resp.Field)
	})

	t.Run("oversized mood", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/record", recordPayload(strings.Repeat("a", 51), "2025-01-01T00:00:00Z"))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "mood", resp.Field)
	})

	t.Run("whitespace-only timestamp", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/record", recordPayload("happy", "  "))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/record", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestCreateRecord_StoreFailure(t *testing.T) {
	repo := newMemRepo()
	repo.failing = true
	r := setupRouter(t, repo)

	w := perform(r, http.MethodPost, "/record", recordPayload("happy", "2025-01-01T00:00:00Z"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset", "store detail must not leak to clients")
}

func TestGetRecord_Errors(t *testing.T) {
	r := setupRouter(t, newMemRepo())

	t.Run("malformed id", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/record/not-a-valid-id", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("well-formed but absent id", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/record/"+primitive.NewObjectID().Hex(), nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteRecord_Idempotence(t *testing.T) {
	r := setupRouter(t, newMemRepo())
	id := createRecord(t, r, recordPayload("happy", "2025-01-01T00:00:00Z"))

	w := perform(r, http.MethodDelete, "/record/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.RecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.Deleted)

	w = perform(r, http.MethodDelete, "/record/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = perform(r, http.MethodDelete, "/record/not-a-valid-id", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCleanup(t *testing.T) {
	r := setupRouter(t, newMemRepo())

	createRecord(t, r, recordPayload("happy", "2025-01-01T00:00:00Z")) // vlog omitted

	withEmpty := recordPayload("sad", "2025-01-02T00:00:00Z")
	withEmpty["vlog_file"] = ""
	createRecord(t, r, withEmpty)

	withVideo := recordPayload("calm", "2025-01-03T00:00:00Z")
	withVideo["vlog_file"] = "real_vlog.mp4"
	keptID := createRecord(t, r, withVideo)

	w := perform(r, http.MethodDelete, "/records/cleanup", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.RecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.DeletedCount)
	assert.Equal(t, int64(2), *resp.DeletedCount)

	w = perform(r, http.MethodGet, "/record/"+keptID, nil)
	require.Equal(t, http.StatusOK, w.Code, "the record with a real vlog must survive cleanup")

	// Re-running reports zero, never an error.
	w = perform(r, http.MethodDelete, "/records/cleanup", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.DeletedCount)
	assert.Equal(t, int64(0), *resp.DeletedCount)
}

func TestListRecords(t *testing.T) {
	r := setupRouter(t, newMemRepo())

	createRecord(t, r, recordPayload("happy", "2025-01-01T00:00:00Z"))
	createRecord(t, r, recordPayload("sad", "2025-01-02T00:00:00Z"))
	createRecord(t, r, recordPayload("happy", "2025-01-03T00:00:00Z"))

	list := func(t *testing.T, path string) dto.ListRecordsResponse {
		t.Helper()
		w := perform(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.ListRecordsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	t.Run("default list is newest first", func(t *testing.T) {
		resp := list(t, "/records")
		require.Equal(t, 3, resp.Count)
		assert.Equal(t, "2025-01-03T00:00:00Z", resp.Records[0].Timestamp)
	})

	t.Run("mood filter is exact", func(t *testing.T) {
		resp := list(t, "/records?mood=happy")
		require.Equal(t, 2, resp.Count)
		for _, record := range resp.Records {
			assert.Equal(t, "happy", record.Mood)
		}

		resp = list(t, "/records?mood=Happy")
		assert.Equal(t, 0, resp.Count)
	})

	t.Run("limit caps the batch", func(t *testing.T) {
		resp := list(t, "/records?mood=happy&limit=1")
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "2025-01-03T00:00:00Z", resp.Records[0].Timestamp)
	})

	t.Run("skip offsets the batch", func(t *testing.T) {
		resp := list(t, "/records?limit=2&skip=2")
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "2025-01-01T00:00:00Z", resp.Records[0].Timestamp)
	})
}

func TestUploadVideo(t *testing.T) {
	r := setupRouter(t, newMemRepo())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "my_vlog.mp4")
	require.NoError(t, err)
	_, err = part.Write([]byte("video bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/videos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.UploadVideoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasSuffix(resp.File, "_my_vlog.mp4"))
	assert.Equal(t, fmt.Sprintf("http://localhost:8080/videos/%s", resp.File), resp.URL)

	t.Run("missing file part", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/videos", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDashboard(t *testing.T) {
	r := setupRouter(t, newMemRepo())

	w := perform(r, http.MethodGet, "/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "EmoGo Dashboard")
	assert.Contains(t, w.Body.String(), "moodChart")
}
