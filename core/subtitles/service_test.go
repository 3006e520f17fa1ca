package subtitles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"film2subtitle-api/core/domain"
	apperrors "film2subtitle-api/core/errors"
	"film2subtitle-api/core/interfaces"
)

const searchHTML = `<html><body>
<div class="sub-article-detail">
  <a href="https://film2subtitle.com/subtitle/ozark/"><img src="https://film2subtitle.com/img/ozark.jpg"></a>
  <h1>زیرنویس سریال Ozark</h1>
  <ul><li class="sub-meta-item"><span class="sub-meta-left">امتیاز: 8.4</span></li></ul>
</div>
<a class="page-numbers" href="/page/2/?s=ozark">2</a>
</body></html>`

const downloadHTML = `<html><body>
<div class="sub-article-detail"><h1>Ozark</h1></div>
<div class="sub-download-box">فصل اول
  <a href="https://film2subtitle.com/dl/Ozark.S01E02.zip">E02</a>
</div>
</body></html>`

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Film2Subtitle</title>
<item>
  <title>زیرنویس سریال Ozark</title>
  <link>https://film2subtitle.com/subtitle/ozark/</link>
  <pubDate>Mon, 02 Jan 2023 15:04:05 +0000</pubDate>
  <category>سریال</category>
</item>
<item><title>Dark</title><link>https://film2subtitle.com/subtitle/dark/</link></item>
</channel></rss>`

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 1, NormalizePage(0))
	assert.Equal(t, 1, NormalizePage(1))
	assert.Equal(t, 3, NormalizePage(-3))
	assert.Equal(t, 7, NormalizePage(7))
}

func TestSearchPath(t *testing.T) {
	assert.Equal(t, "/", SearchPath(1))
	assert.Equal(t, "/page/2/", SearchPath(2))
}

func TestLegacySearch(t *testing.T) {
	var gotPath, gotQuery string
	session := markupSession(searchHTML)
	inner := session.fetchMarkupFunc
	session.fetchMarkupFunc = func(ctx context.Context, path string, opts *interfaces.RequestOptions) (*goquery.Document, error) {
		gotPath = path
		gotQuery = opts.Params.Get("s")
		return inner(ctx, path, opts)
	}
	service := NewService(interfaces.Dependencies{Session: session}, 0)

	result, err := service.LegacySearch(context.Background(), "ozark", -1)

	require.NoError(t, err)
	assert.Equal(t, "/", gotPath)
	assert.Equal(t, "ozark", gotQuery)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 2, result.NextPage)
	require.Len(t, result.Results, 1)
	assert.InDelta(t, 8.4, result.Results[0].Metadata.IMDbRating, 0.0001)
}

func TestLegacySearch_LaterPagePath(t *testing.T) {
	var gotPath string
	session := &mockSession{
		fetchMarkupFunc: func(ctx context.Context, path string, opts *interfaces.RequestOptions) (*goquery.Document, error) {
			gotPath = path
			return nil, apperrors.NewNotFoundError("Not Found")
		},
	}
	service := NewService(interfaces.Dependencies{Session: session}, 0)

	_, err := service.LegacySearch(context.Background(), "ozark", 4)

	assert.Equal(t, "/page/4/", gotPath)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLegacySearch_EmptyQuery(t *testing.T) {
	session := &mockSession{}
	service := NewService(interfaces.Dependencies{Session: session}, 0)

	_, err := service.LegacySearch(context.Background(), "   ", 1)

	assert.ErrorIs(t, err, apperrors.ErrEmptyQuery)
	assert.Zero(t, session.callCount())
}

func TestLegacySearch_UsesCache(t *testing.T) {
	cache := newMockCache()
	session := markupSession(searchHTML)
	service := NewService(interfaces.Dependencies{Session: session, Cache: cache}, 5*time.Minute)

	first, err := service.LegacySearch(context.Background(), "ozark", 1)
	require.NoError(t, err)
	second, err := service.LegacySearch(context.Background(), "ozark", 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, session.callCount())
	assert.Contains(t, cache.data, "search:legacy:ozark:1")
	assert.Equal(t, 5*time.Minute, cache.ttls["search:legacy:ozark:1"])
}

func TestLegacySearch_UnreadableCacheEntry(t *testing.T) {
	cache := newMockCache()
	cache.data["search:legacy:ozark:1"] = []byte("not json")
	logger := newMockLogger()
	session := markupSession(searchHTML)
	service := NewService(interfaces.Dependencies{Session: session, Cache: cache, Logger: logger}, 0)

	_, err := service.LegacySearch(context.Background(), "ozark", 1)

	require.NoError(t, err)
	assert.Equal(t, 1, session.callCount())
	assert.Contains(t, logger.messages["warn"], "Discarding unreadable cache entry")
}

func TestLegacySearch_NoSession(t *testing.T) {
	service := NewService(interfaces.Dependencies{}, 0)

	_, err := service.LegacySearch(context.Background(), "ozark", 1)

	assert.EqualError(t, err, "session not configured")
}

func TestDownloadPage(t *testing.T) {
	logger := newMockLogger()
	service := NewService(interfaces.Dependencies{Session: markupSession(downloadHTML), Logger: logger}, 0)

	page, err := service.DownloadPage(context.Background(), "https://film2subtitle.com/subtitle/ozark/")

	require.NoError(t, err)
	assert.Equal(t, domain.SubtitleTypeSeries, page.DownloadBox.Type)
	assert.Equal(t, "https://film2subtitle.com/dl/Ozark.S01E02.zip", page.DownloadBox.Season("s01")["e02"])
	require.Len(t, page.Articles, 1)
	assert.Contains(t, logger.messages["debug"], "Download page parsed")
}

func TestDownloadPage_InvalidURLMakesNoRequest(t *testing.T) {
	tests := []string{
		"https://example.com/subtitle/ozark/",
		"film2subtitle.com/subtitle/ozark/",
		"",
	}

	for _, raw := range tests {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			session := &mockSession{}
			service := NewService(interfaces.Dependencies{Session: session}, 0)

			page, err := service.DownloadPage(context.Background(), raw)

			assert.Nil(t, page)
			assert.True(t, apperrors.IsInvalidURL(err))
			assert.Zero(t, session.callCount())
		})
	}
}

func TestDownloadPage_MissingBox(t *testing.T) {
	service := NewService(interfaces.Dependencies{Session: markupSession(searchHTML)}, 0)

	_, err := service.DownloadPage(context.Background(), "https://film2subtitle.com/subtitle/ozark/")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "No download box found.")
}

func TestDownloadPage_TransportErrorPropagates(t *testing.T) {
	session := &mockSession{
		fetchMarkupFunc: func(ctx context.Context, path string, opts *interfaces.RequestOptions) (*goquery.Document, error) {
			return nil, &apperrors.ConnectivityError{Op: "GET", URL: path, Err: context.DeadlineExceeded}
		},
	}
	service := NewService(interfaces.Dependencies{Session: session}, 0)

	_, err := service.DownloadPage(context.Background(), "https://film2subtitle.com/subtitle/ozark/")

	assert.True(t, apperrors.IsConnectivity(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, strings.HasPrefix(err.Error(), "fetch download page: "))
	assert.Equal(t, 503, apperrors.StatusCode(err))
}

func TestDownloadPage_CachedSeriesKeepsTypes(t *testing.T) {
	cache := newMockCache()
	session := markupSession(downloadHTML)
	service := NewService(interfaces.Dependencies{Session: session, Cache: cache}, 0)
	url := "https://film2subtitle.com/subtitle/ozark/"

	_, err := service.DownloadPage(context.Background(), url)
	require.NoError(t, err)
	cached, err := service.DownloadPage(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, 1, session.callCount())
	assert.Contains(t, cache.data, "download:"+url)
	assert.Equal(t, "https://film2subtitle.com/dl/Ozark.S01E02.zip", cached.DownloadBox.Season("s01")["e02"])
}

func TestLatest(t *testing.T) {
	session := &mockSession{
		requestFunc: func(ctx context.Context, method, path string, opts *interfaces.RequestOptions) (interfaces.Response, error) {
			assert.Equal(t, "/feed/", path)
			return &mockResponse{statusCode: 200, body: feedXML}, nil
		},
	}
	service := NewService(interfaces.Dependencies{Session: session}, 0)

	entries, err := service.Latest(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "زیرنویس سریال Ozark", entries[0].Title)
	assert.Equal(t, "https://film2subtitle.com/subtitle/ozark/", entries[0].URL)
	require.NotNil(t, entries[0].Published)
	assert.Equal(t, 2023, entries[0].Published.Year())
	assert.Equal(t, []string{"سریال"}, entries[0].Categories)
	assert.Nil(t, entries[1].Published)
	assert.Equal(t, []string{}, entries[1].Categories)
}

func TestLatest_InvalidFeed(t *testing.T) {
	session := &mockSession{
		requestFunc: func(ctx context.Context, method, path string, opts *interfaces.RequestOptions) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: "not a feed"}, nil
		},
	}
	service := NewService(interfaces.Dependencies{Session: session}, 0)

	_, err := service.Latest(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse feed")
}

func TestQuickSearch(t *testing.T) {
	session := &mockSession{
		fetchJSONFunc: func(ctx context.Context, path string, dest any, opts *interfaces.RequestOptions) error {
			assert.Equal(t, "/wp-json/wp/v2/search", path)
			assert.Equal(t, "ozark", opts.Params.Get("search"))
			items := dest.(*[]quickSearchItem)
			*items = []quickSearchItem{{ID: 12, Title: "Ozark", URL: "https://film2subtitle.com/subtitle/ozark/", Type: "post", Subtype: "post"}}
			return nil
		},
	}
	service := NewService(interfaces.Dependencies{Session: session}, 0)

	hits, err := service.QuickSearch(context.Background(), "ozark")

	require.NoError(t, err)
	assert.Equal(t, []domain.QuickSearchHit{{ID: 12, Title: "Ozark", URL: "https://film2subtitle.com/subtitle/ozark/", Type: "post", Subtype: "post"}}, hits)
}

func TestQuickSearch_Errors(t *testing.T) {
	session := &mockSession{
		fetchJSONFunc: func(ctx context.Context, path string, dest any, opts *interfaces.RequestOptions) error {
			return &apperrors.APIError{Message: "Service Unavailable", Status: 503}
		},
	}
	service := NewService(interfaces.Dependencies{Session: session}, 0)

	_, err := service.QuickSearch(context.Background(), "")
	assert.True(t, errors.Is(err, apperrors.ErrEmptyQuery))
	assert.Zero(t, session.callCount())

	_, err = service.QuickSearch(context.Background(), "ozark")
	assert.True(t, apperrors.IsAPIError(err))
}
