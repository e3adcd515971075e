package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TwisterMc/JobTwister/internal/events"
	"github.com/TwisterMc/JobTwister/internal/models"
	"github.com/TwisterMc/JobTwister/internal/repositories/store"
	"github.com/TwisterMc/JobTwister/internal/services"
)

func newJobRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Job{}, &models.Interview{}, &models.Settings{}))

	h := NewJobHandler(services.NewJobService(store.NewJobRepo(db), events.NewHub()))

	r := gin.New()
	r.GET("/api/jobs", h.List)
	r.POST("/api/jobs", h.Create)
	r.GET("/api/jobs/:id", h.Get)
	r.DELETE("/api/jobs/:id", h.Delete)
	r.POST("/api/jobs/:id/interviews", h.AddInterview)
	r.GET("/api/stats", h.Stats)
	return r
}

func TestCreateAndGetJob(t *testing.T) {
	r := newJobRouter(t)

	body := `{"company_name":"Acme","job_title":"Engineer","workplace_type":"Hybrid"}`
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	req = httptest.NewRequest(http.MethodGet, "/api/jobs/"+created.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"company_name":"Acme"`)
}

func TestGetMissingJobIs404(t *testing.T) {
	r := newJobRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestDeleteJob(t *testing.T) {
	r := newJobRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs",
		strings.NewReader(`{"company_name":"Acme"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req = httptest.NewRequest(http.MethodDelete, "/api/jobs/"+created.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/jobs/"+created.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddInterviewEndpoint(t *testing.T) {
	r := newJobRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs",
		strings.NewReader(`{"company_name":"Acme"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req = httptest.NewRequest(http.MethodPost, "/api/jobs/"+created.ID+"/interviews",
		strings.NewReader(`{"date":"2025-04-01T10:00:00Z","notes":"screen"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var updated models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Len(t, updated.Interviews, 1)
	assert.Equal(t, 1, updated.Interviews[0].Round)
}

func TestListWithSearchQuery(t *testing.T) {
	r := newJobRouter(t)

	for _, name := range []string{"Acme", "Globex"} {
		req := httptest.NewRequest(http.MethodPost, "/api/jobs",
			strings.NewReader(`{"company_name":"`+name+`"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?q=glob", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var jobs []models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Globex", jobs[0].CompanyName)
}

func TestStatsEndpoint(t *testing.T) {
	r := newJobRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"applied":0,"interviewed":0,"denied":0}`, w.Body.String())
}
