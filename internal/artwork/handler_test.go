package artwork

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/valmaiimtiyaz/artzybackend/internal/auth"
)

func TestYear_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    *int
		wantErr bool
	}{
		{name: "number", in: `2020`, want: intPtr(2020)},
		{name: "numeric string", in: `"1999"`, want: intPtr(1999)},
		{name: "empty string", in: `""`},
		{name: "null", in: `null`},
		{name: "word", in: `"soon"`, wantErr: true},
		{name: "fraction", in: `19.5`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var y Year
			err := json.Unmarshal([]byte(tt.in), &y)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, y.Value)
		})
	}
}

func intPtr(v int) *int { return &v }

func newTestMux(t *testing.T) (*http.ServeMux, *memArtworks) {
	t.Helper()
	svc, m := newTestService()
	h := NewHandler(svc, zap.NewNop().Sugar())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/artworks", h.Create)
	mux.HandleFunc("GET /api/artworks", h.ListOwn)
	mux.HandleFunc("GET /api/artworks/{id}", h.GetOwn)
	mux.HandleFunc("PUT /api/artworks/{id}", h.Update)
	mux.HandleFunc("DELETE /api/artworks/{id}", h.Delete)
	mux.HandleFunc("GET /api/artworks/user/{username}", h.ListByUsername)
	mux.HandleFunc("GET /api/public/artworks/{id}", h.GetPublic)
	return mux, m
}

func do(mux http.Handler, method, path string, as *auth.Identity, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req = req.WithContext(auth.WithIdentity(req.Context(), *as))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHandler_CreateAndGet(t *testing.T) {
	mux, _ := newTestMux(t)
	body := map[string]any{"image": "img.png", "title": "Sunset", "artist": "Alice", "year": "2020", "category": "Painting"}

	rec := do(mux, http.MethodPost, "/api/artworks", &alice, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created map[string]any
	decodeBody(t, rec, &created)
	assert.Equal(t, "Painting", created["category"])
	assert.EqualValues(t, 2020, created["year"])
	assert.EqualValues(t, 0, created["like_count"])

	rec = do(mux, http.MethodGet, "/api/artworks/1", &alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(mux, http.MethodGet, "/api/artworks/1", &bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Artwork not found!"}`, rec.Body.String())
}

func TestHandler_CreateValidation(t *testing.T) {
	mux, _ := newTestMux(t)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{name: "missing title", body: map[string]any{"image": "i", "artist": "a", "category": "Painting"}, want: http.StatusBadRequest},
		{name: "unknown category", body: map[string]any{"image": "i", "title": "t", "artist": "a", "category": "Nope"}, want: http.StatusBadRequest},
		{name: "year out of range", body: map[string]any{"image": "i", "title": "t", "artist": "a", "year": 12345, "category": "Painting"}, want: http.StatusBadRequest},
		{name: "bad year", body: map[string]any{"image": "i", "title": "t", "artist": "a", "year": "soon", "category": "Painting"}, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, http.MethodPost, "/api/artworks", &alice, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_RequiresIdentity(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := do(mux, http.MethodGet, "/api/artworks", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	mux, m := newTestMux(t)
	body := map[string]any{"image": "img.png", "title": "Sunset", "artist": "Alice", "category": "Painting"}
	require.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/artworks", &alice, body).Code)

	body["title"] = "Dusk"
	rec := do(mux, http.MethodPut, "/api/artworks/1", &bob, body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Artwork not found or unauthorized"}`, rec.Body.String())

	rec = do(mux, http.MethodPut, "/api/artworks/1", &alice, body)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated struct {
		Message string         `json:"message"`
		Artwork map[string]any `json:"artwork"`
	}
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Artwork updated successfully!", updated.Message)
	assert.Equal(t, "Dusk", updated.Artwork["title"])

	// a foreign delete succeeds but leaves the row in place
	rec = do(mux, http.MethodDelete, "/api/artworks/1", &bob, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, m.rows, int64(1))

	rec = do(mux, http.MethodDelete, "/api/artworks/1", &alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Artwork deleted!"}`, rec.Body.String())
	assert.NotContains(t, m.rows, int64(1))

	assert.Equal(t, http.StatusBadRequest, do(mux, http.MethodDelete, "/api/artworks/abc", &alice, nil).Code)
}

func TestHandler_PublicGallery(t *testing.T) {
	mux, m := newTestMux(t)
	body := map[string]any{"image": "img.png", "title": "Sunset", "artist": "Alice", "category": "Painting"}
	require.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/artworks", &alice, body).Code)
	m.likes[[2]int64{bob.UserID, 1}] = true

	rec := do(mux, http.MethodGet, "/api/artworks/user/alice", &bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]any
	decodeBody(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, true, items[0]["is_liked"])

	rec = do(mux, http.MethodGet, "/api/artworks/user/alice", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &items)
	assert.Equal(t, false, items[0]["is_liked"])

	rec = do(mux, http.MethodGet, "/api/artworks/user/carol", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())

	rec = do(mux, http.MethodGet, "/api/public/artworks/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p map[string]any
	decodeBody(t, rec, &p)
	assert.Equal(t, "alice", p["artist_username"])

	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodGet, "/api/public/artworks/99", nil, nil).Code)
}
