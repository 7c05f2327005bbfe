package elastic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *ClassIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewClassIndex(es, "classes")
}

func TestClassIndex_Index(t *testing.T) {
	id := primitive.NewObjectID()
	var gotPath string
	var gotBody map[string]any
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	err := idx.Index(context.Background(), &entity.Class{ID: id, Name: "Watercolor", InstructorEmail: "teach@test.com", AvailableSeats: 4})
	require.NoError(t, err)
	assert.Equal(t, "/classes/_doc/"+id.Hex(), gotPath)
	assert.Equal(t, "Watercolor", gotBody["name"])
	assert.Equal(t, float64(4), gotBody["Available-seats"])
	assert.NotContains(t, gotBody, "_id")
}

func TestClassIndex_Search(t *testing.T) {
	id := primitive.NewObjectID()
	var gotQuery string
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotQuery = string(b)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"` + id.Hex() + `","_source":{"name":"Watercolor","email":"teach@test.com","price":25}}]}}`))
	})

	hits, err := idx.Search(context.Background(), "water", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, id, hits[0].ID)
	assert.Equal(t, "teach@test.com", hits[0].InstructorEmail)
	assert.Equal(t, 25.0, hits[0].Price)
	assert.True(t, strings.Contains(gotQuery, `"multi_match"`))
}

func TestClassIndex_SearchErrorStatus(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	_, err := idx.Search(context.Background(), "water", 5)
	assert.Error(t, err)
}
