package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/reelfind/internal/config"
)

func newTestTMDB(t *testing.T, handlerFn http.HandlerFunc) *TMDBService {
	t.Helper()
	srv := httptest.NewServer(handlerFn)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		TMDBBaseURL: srv.URL + "/",
		TMDBToken:   "test-token",
	}
	return NewTMDBService(cfg)
}

func TestSearchEmptyQueryUsesDiscoverEndpoint(t *testing.T) {
	var gotPath, gotSort, gotAuth string
	svc := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSort = r.URL.Query().Get("sort_by")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"results":[{"id":1,"title":"Top"},{"id":2,"title":"Second"}]}`))
	})

	movies, err := svc.Search(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "/discover/movie", gotPath)
	assert.Equal(t, "popularity.desc", gotSort)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Len(t, movies, 2)
}

func TestSearchNonEmptyQueryUsesSearchEndpoint(t *testing.T) {
	var gotPath, gotQuery string
	svc := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"results":[{"id":27205,"title":"Inception","release_date":"2010-07-16","vote_average":8.4,"poster_path":"/inc.jpg"}]}`))
	})

	movies, err := svc.Search(context.Background(), "space odyssey")

	require.NoError(t, err)
	assert.Equal(t, "/search/movie", gotPath)
	assert.Equal(t, "space odyssey", gotQuery)
	require.Len(t, movies, 1)
	assert.Equal(t, 27205, movies[0].ID)
	assert.Equal(t, "2010-07-16", movies[0].ReleaseDate)
	assert.Equal(t, 8.4, movies[0].VoteAverage)
}

func TestSearchMissingOptionalFieldsKeepZeroValues(t *testing.T) {
	svc := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"id":62}]}`))
	})

	movies, err := svc.Search(context.Background(), "2001")

	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, 62, movies[0].ID)
	assert.Empty(t, movies[0].Title)
	assert.Empty(t, movies[0].ReleaseDate)
	assert.Zero(t, movies[0].VoteAverage)
	assert.Empty(t, movies[0].PosterPath)
}

func TestSearchNon2xxIsFetchError(t *testing.T) {
	svc := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := svc.Search(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestSearchTransportFailureIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 直接关掉，制造连接失败

	cfg := &config.Config{TMDBBaseURL: srv.URL + "/", TMDBToken: "test-token"}
	svc := NewTMDBService(cfg)

	_, err := svc.Search(context.Background(), "heat")

	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestSearchMalformedPayloadIsNonFatal(t *testing.T) {
	cases := map[string]string{
		"缺少 results":  `{"page":1}`,
		"results 非列表": `{"results":"oops"}`,
		"非法 JSON":     `<html>gateway timeout</html>`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			movies, err := svc.Search(context.Background(), "broken")

			// 结构不合法按空结果处理，不得让整条流水线失败
			require.NoError(t, err)
			assert.NotNil(t, movies)
			assert.Empty(t, movies)
		})
	}
}
