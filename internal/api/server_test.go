package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/gofeed"

	"briefing/internal/datasource"
	"briefing/internal/model"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	static   bool
	items    []model.Article
	clusters []model.Cluster
	trends   model.TrendSnapshot
	err      error
	collects int
}

func (f *fakeSource) Static() bool { return f.static }

func (f *fakeSource) LoadFeed(context.Context) (datasource.Feed, error) {
	if f.err != nil {
		return datasource.Feed{}, &datasource.LoadError{Resource: "feed", Err: f.err}
	}
	return datasource.Feed{Items: f.items, Fallback: f.static}, nil
}

func (f *fakeSource) LoadArticle(_ context.Context, id string) (model.Article, error) {
	if f.err != nil {
		return model.Article{}, &datasource.LoadError{Resource: "article " + id, Err: f.err}
	}
	for _, a := range f.items {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Article{}, &datasource.LoadError{Resource: "article " + id, Err: datasource.ErrNotFound}
}

func (f *fakeSource) LoadClusters(context.Context) ([]model.Cluster, error) {
	if f.err != nil {
		return nil, &datasource.LoadError{Resource: "clusters", Err: f.err}
	}
	return f.clusters, nil
}

func (f *fakeSource) LoadTrends(context.Context) (model.TrendSnapshot, error) {
	if f.err != nil {
		return model.TrendSnapshot{}, &datasource.LoadError{Resource: "trends", Err: f.err}
	}
	return f.trends, nil
}

func (f *fakeSource) Collect(context.Context) (model.CollectResult, error) {
	f.collects++
	if f.static {
		return model.CollectResult{}, datasource.ErrStaticMode
	}
	return model.CollectResult{OK: true, Message: "done"}, nil
}

func stamp(d time.Duration) string {
	return testNow.Add(-d).Format(time.RFC3339)
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		items: []model.Article{
			{ID: "a1", Title: "GPU supply", SourceName: "Wire", Topic: model.TopicAI, PublishedAt: stamp(2 * time.Hour), SummaryKO: "칩 공급", IsValidSourceURL: true, CanonicalURL: "https://example.com/a1", Keywords: []string{"gpu"}},
			{ID: "a2", Title: "Old model", SourceName: "Blog", Topic: model.TopicAI, PublishedAt: stamp(40 * 24 * time.Hour)},
			{ID: "s1", Title: "Rocket", SourceName: "Space", Topic: model.TopicScienceTech, PublishedAt: stamp(20 * 24 * time.Hour)},
		},
		clusters: []model.Cluster{{ClusterID: "c1", ClusterTitle: "Compute", ArticleIDs: []string{"a2", "a1", "missing"}}},
		trends:   model.TrendSnapshot{RecentDays: 7, TopicRatio: map[model.Topic]int{model.TopicAI: 2}},
	}
}

func newTestServer(src *fakeSource) http.Handler {
	gin.SetMode(gin.TestMode)
	s := New(src, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return testNow }
	return s.Router()
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func TestListNews(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		static     bool
		wantStatus int
		wantIDs    []string
		wantPeriod model.Period
		wantNotice string
	}{
		{
			name:       "defaults",
			target:     "/api/news",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"a1"},
			wantPeriod: model.Period24h,
		},
		{
			name:       "relaxed to 30d",
			target:     "/api/news?topic=ScienceTech&period=24h",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"s1"},
			wantPeriod: model.Period30d,
			wantNotice: "기간을 자동 확장했습니다: 24h → 30d",
		},
		{
			name:       "query and oldest order",
			target:     "/api/news?topic=ai&period=all&order=oldest",
			static:     true,
			wantStatus: http.StatusOK,
			wantIDs:    []string{"a2", "a1"},
			wantPeriod: model.PeriodAll,
		},
		{
			name:       "no match",
			target:     "/api/news?q=nothing",
			wantStatus: http.StatusOK,
			wantIDs:    []string{},
			wantPeriod: model.PeriodAll,
			wantNotice: "조건에 맞는 기사가 없습니다.",
		},
		{name: "bad topic", target: "/api/news?topic=sports", wantStatus: http.StatusBadRequest},
		{name: "bad period", target: "/api/news?period=1y", wantStatus: http.StatusBadRequest},
		{name: "bad order", target: "/api/news?order=random", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			src.static = tt.static
			rec := do(t, newTestServer(src), http.MethodGet, tt.target)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got newsResponse
			decodeBody(t, rec, &got)
			ids := []string{}
			for _, a := range got.Items {
				ids = append(ids, a.ID)
			}
			if diff := cmp.Diff(tt.wantIDs, ids); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
			if got.Period != tt.wantPeriod {
				t.Errorf("period = %q, want %q", got.Period, tt.wantPeriod)
			}
			if got.Notice != tt.wantNotice {
				t.Errorf("notice = %q, want %q", got.Notice, tt.wantNotice)
			}
			if got.Fallback != tt.static {
				t.Errorf("fallback = %v, want %v", got.Fallback, tt.static)
			}
		})
	}
}

func TestLoadFailureIsBadGateway(t *testing.T) {
	src := newFakeSource()
	src.err = errors.New("connection refused")
	h := newTestServer(src)

	for _, target := range []string{"/api/news", "/api/articles/a1", "/api/clusters", "/api/clusters/c1", "/api/trends", "/feed.xml"} {
		rec := do(t, h, http.MethodGet, target)
		if rec.Code != http.StatusBadGateway {
			t.Errorf("GET %s status = %d, want 502", target, rec.Code)
		}
	}
}

func TestGetArticle(t *testing.T) {
	h := newTestServer(newFakeSource())

	rec := do(t, h, http.MethodGet, "/api/articles/a1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var a model.Article
	decodeBody(t, rec, &a)
	if diff := cmp.Diff("GPU supply", a.Title); diff != "" {
		t.Errorf("title mismatch (-want +got):\n%s", diff)
	}

	rec = do(t, h, http.MethodGet, "/api/articles/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetCluster(t *testing.T) {
	h := newTestServer(newFakeSource())

	rec := do(t, h, http.MethodGet, "/api/clusters/c1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got clusterResponse
	decodeBody(t, rec, &got)

	var ids []string
	for _, a := range got.Articles {
		ids = append(ids, a.ID)
	}
	if diff := cmp.Diff([]string{"a1", "a2"}, ids); diff != "" {
		t.Errorf("member ids mismatch (-want +got):\n%s", diff)
	}

	rec = do(t, h, http.MethodGet, "/api/clusters/c404")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetTrendsDefaultsTopicRatio(t *testing.T) {
	rec := do(t, newTestServer(newFakeSource()), http.MethodGet, "/api/trends")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got model.TrendSnapshot
	decodeBody(t, rec, &got)
	want := map[model.Topic]int{model.TopicAI: 2, model.TopicScienceTech: 0, model.TopicOther: 0}
	if diff := cmp.Diff(want, got.TopicRatio); diff != "" {
		t.Errorf("topic ratio mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect(t *testing.T) {
	src := newFakeSource()
	rec := do(t, newTestServer(src), http.MethodPost, "/api/collect")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	src = newFakeSource()
	src.static = true
	rec = do(t, newTestServer(src), http.MethodPost, "/api/collect")
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	if src.collects != 0 {
		t.Errorf("collect was called %d times in static mode", src.collects)
	}
}

func TestHealth(t *testing.T) {
	src := newFakeSource()
	src.static = true
	rec := do(t, newTestServer(src), http.MethodGet, "/healthz")

	var got map[string]any
	decodeBody(t, rec, &got)
	if diff := cmp.Diff(map[string]any{"status": "ok", "static": true}, got); diff != "" {
		t.Errorf("health mismatch (-want +got):\n%s", diff)
	}
}

func TestFeedXML(t *testing.T) {
	rec := do(t, newTestServer(newFakeSource()), http.MethodGet, "/feed.xml?topic=AI&period=all")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	feed, err := gofeed.NewParser().ParseString(rec.Body.String())
	if err != nil {
		t.Fatalf("parse rss: %v", err)
	}
	if diff := cmp.Diff("rss", feed.FeedType); diff != "" {
		t.Errorf("feed type mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("http://example.com/", feed.Link); diff != "" {
		t.Errorf("channel link mismatch (-want +got):\n%s", diff)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(feed.Items))
	}

	first := feed.Items[0]
	if diff := cmp.Diff("GPU supply", first.Title); diff != "" {
		t.Errorf("title mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("https://example.com/a1", first.Link); diff != "" {
		t.Errorf("link mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("a1", first.GUID); diff != "" {
		t.Errorf("guid mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"AI"}, first.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	if first.PublishedParsed == nil || !first.PublishedParsed.Equal(testNow.Add(-2*time.Hour)) {
		t.Errorf("published = %v, want %v", first.PublishedParsed, testNow.Add(-2*time.Hour))
	}
	if feed.Items[1].Link != "" {
		t.Errorf("invalid source url exported as link: %q", feed.Items[1].Link)
	}

	rec = do(t, newTestServer(newFakeSource()), http.MethodGet, "/feed.xml?period=forever")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFeedXMLChannelLink(t *testing.T) {
	tests := []struct {
		name      string
		publicURL string
		headers   map[string]string
		want      string
	}{
		{
			name: "request host",
			want: "http://example.com/",
		},
		{
			name:    "behind a TLS proxy",
			headers: map[string]string{"X-Forwarded-Proto": "https", "X-Forwarded-Host": "news.example.org"},
			want:    "https://news.example.org/",
		},
		{
			name:    "first value of a proxy chain",
			headers: map[string]string{"X-Forwarded-Proto": "HTTPS, http"},
			want:    "https://example.com/",
		},
		{
			name:      "configured public url wins",
			publicURL: "https://briefing.example.net/reader/",
			headers:   map[string]string{"X-Forwarded-Proto": "http"},
			want:      "https://briefing.example.net/reader/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			s := New(newFakeSource(), slog.New(slog.NewTextHandler(io.Discard, nil)))
			s.now = func() time.Time { return testNow }
			s.SetPublicURL(tt.publicURL)

			req := httptest.NewRequest(http.MethodGet, "/feed.xml?period=all", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			s.Router().ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}

			feed, err := gofeed.NewParser().ParseString(rec.Body.String())
			if err != nil {
				t.Fatalf("parse rss: %v", err)
			}
			if diff := cmp.Diff(tt.want, feed.Link); diff != "" {
				t.Errorf("channel link mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
