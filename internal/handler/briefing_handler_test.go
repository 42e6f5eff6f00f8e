package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/jmherd/daily-briefing/internal/model"
)

type fakeProfileStore struct {
	profiles map[string]model.Profile
	err      error
	saved    map[string]model.Profile
}

func (f *fakeProfileStore) Load() (map[string]model.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles, nil
}

func (f *fakeProfileStore) Get(name string) (*model.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[name]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProfileStore) Save(profiles map[string]model.Profile) error {
	f.saved = profiles
	return f.err
}

type fakeHistoryStore struct {
	entries []model.HistoryEntry
}

func (f *fakeHistoryStore) Load(profileName string) []model.HistoryEntry {
	return f.entries
}

type fakeBriefer struct {
	result *model.BriefingResult
	chunks []string
	err    error
}

func (f *fakeBriefer) Run(ctx context.Context, profileName string, profile model.Profile) (*model.BriefingResult, error) {
	return f.result, f.err
}

func (f *fakeBriefer) RunStream(ctx context.Context, profileName string, profile model.Profile, onChunk func(text string)) (*model.BriefingResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, chunk := range f.chunks {
		onChunk(chunk)
	}
	return f.result, nil
}

func testProfiles() map[string]model.Profile {
	return map[string]model.Profile{
		"morning": {
			City:                "Tampa, US",
			Units:               model.UnitsImperial,
			Topics:              []string{"technology"},
			BriefingTone:        "casual",
			MaxArticlesPerTopic: 2,
		},
	}
}

func newTestRouter(briefer Briefer, profiles ProfileStore, history HistoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	bh := NewBriefingHandler(briefer, profiles, history)
	ph := NewProfileHandler(profiles)
	r.POST("/briefings/:name", bh.GenerateBriefing)
	r.GET("/briefings/:name/history", bh.GetHistory)
	r.GET("/profiles", ph.GetProfiles)
	r.PUT("/profiles/:name", ph.PutProfile)
	r.DELETE("/profiles/:name", ph.DeleteProfile)
	r.GET("/health", bh.GetHealth)
	return r
}

func TestGenerateBriefing(t *testing.T) {
	briefer := &fakeBriefer{result: &model.BriefingResult{
		Briefing:    "Good morning, Tampa!",
		GeneratedAt: "09:14 AM",
	}}
	r := newTestRouter(briefer, &fakeProfileStore{profiles: testProfiles()}, &fakeHistoryStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/briefings/morning", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res model.BriefingResult
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Good morning, Tampa!", res.Briefing)
	assert.Equal(t, "09:14 AM", res.GeneratedAt)
}

func TestGenerateBriefing_UnknownProfile(t *testing.T) {
	r := newTestRouter(&fakeBriefer{}, &fakeProfileStore{profiles: testProfiles()}, &fakeHistoryStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/briefings/nope", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateBriefing_ModelFailure(t *testing.T) {
	briefer := &fakeBriefer{err: errors.New("model overloaded")}
	r := newTestRouter(briefer, &fakeProfileStore{profiles: testProfiles()}, &fakeHistoryStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/briefings/morning", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGenerateBriefing_Stream(t *testing.T) {
	briefer := &fakeBriefer{
		chunks: []string{"Good ", "morning!"},
		result: &model.BriefingResult{Briefing: "Good morning!", GeneratedAt: "09:14 AM"},
	}
	r := newTestRouter(briefer, &fakeProfileStore{profiles: testProfiles()}, &fakeHistoryStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/briefings/morning?stream=true", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event:chunk"))
	assert.Equal(t, 1, strings.Count(body, "event:done"))
	assert.Equal(t, true, strings.Contains(body, "Good morning!"))
}

func TestGetHistory(t *testing.T) {
	history := &fakeHistoryStore{entries: []model.HistoryEntry{
		{Date: "2026-08-30", GeneratedAt: "09:14 AM", Briefing: "today"},
		{Date: "2026-08-29", GeneratedAt: "08:02 AM", Briefing: "yesterday"},
	}}
	r := newTestRouter(&fakeBriefer{}, &fakeProfileStore{profiles: testProfiles()}, history)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/briefings/morning/history", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res HistoryResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "morning", res.Profile)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "2026-08-30", res.Entries[0].Date)
}

func TestPutProfile(t *testing.T) {
	store := &fakeProfileStore{profiles: testProfiles()}
	r := newTestRouter(&fakeBriefer{}, store, &fakeHistoryStore{})

	payload := `{"city":"Denver, US","units":"metric","topics":[" climate ",""],"briefing_tone":"dry","max_articles_per_topic":3}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/profiles/evening", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, len(store.saved))
	assert.Equal(t, "Denver, US", store.saved["evening"].City)
	// Topics are trimmed and blanks dropped.
	assert.Equal(t, []string{"climate"}, store.saved["evening"].Topics)
}

func TestPutProfile_Invalid(t *testing.T) {
	store := &fakeProfileStore{profiles: testProfiles()}
	r := newTestRouter(&fakeBriefer{}, store, &fakeHistoryStore{})

	payload := `{"city":"Denver, US","units":"kelvin","topics":["climate"],"max_articles_per_topic":3}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/profiles/evening", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProfile_NotFound(t *testing.T) {
	r := newTestRouter(&fakeBriefer{}, &fakeProfileStore{profiles: testProfiles()}, &fakeHistoryStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/profiles/nope", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeBriefer{}, &fakeProfileStore{profiles: testProfiles()}, &fakeHistoryStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
