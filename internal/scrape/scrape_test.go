package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestScrape_OpenGraphPreferred(t *testing.T) {
	server := serveHTML(t, `<!DOCTYPE html>
<html><head>
<title>Plain Title</title>
<meta property="og:title" content="OG Title">
<meta name="twitter:title" content="Twitter Title">
<meta property="og:description" content="OG description">
<meta name="description" content="Meta description">
</head><body></body></html>`)

	meta := New().Scrape(context.Background(), server.URL)
	require.NotNil(t, meta)

	assert.Equal(t, "OG Title", meta.Title)
	require.NotNil(t, meta.Description)
	assert.Equal(t, "OG description", *meta.Description)
	assert.Nil(t, meta.ImageURL)
}

func TestScrape_FallbackChain(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantTitle string
	}{
		{
			"twitter card when no og",
			`<head><meta name="twitter:title" content="Twitter Title"><title>Plain</title></head>`,
			"Twitter Title",
		},
		{
			"title element last",
			`<head><title>  Plain Title  </title></head>`,
			"Plain Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serveHTML(t, "<html>"+tt.html+"<body></body></html>")
			meta := New().Scrape(context.Background(), server.URL)
			require.NotNil(t, meta)
			assert.Equal(t, tt.wantTitle, meta.Title)
		})
	}
}

func TestScrape_NoTitleIsFailure(t *testing.T) {
	server := serveHTML(t, `<html><head>
<meta property="og:image" content="https://example.com/x.jpg">
</head><body>text</body></html>`)

	meta := New().Scrape(context.Background(), server.URL)
	assert.Nil(t, meta)
}

func TestScrape_AttributeOrderVariance(t *testing.T) {
	// content before the identifying attribute
	server := serveHTML(t, `<html><head>
<meta content="Reversed Title" property="og:title">
</head><body></body></html>`)

	meta := New().Scrape(context.Background(), server.URL)
	require.NotNil(t, meta)
	assert.Equal(t, "Reversed Title", meta.Title)
}

func TestScrape_EntityDecoding(t *testing.T) {
	server := serveHTML(t, `<html><head>
<meta property="og:title" content="Fish &amp; Chips &quot;Deluxe&quot;">
<meta property="og:description" content="Less&nbsp;than &lt;5&gt; minutes &#x2F; serving">
</head><body></body></html>`)

	meta := New().Scrape(context.Background(), server.URL)
	require.NotNil(t, meta)

	assert.Equal(t, `Fish & Chips "Deluxe"`, meta.Title)
	require.NotNil(t, meta.Description)
	assert.Equal(t, "Less than <5> minutes / serving", *meta.Description)
}

func TestScrape_ImageResolution(t *testing.T) {
	tests := []struct {
		name  string
		image string
		want  func(serverURL string) string
	}{
		{
			"absolute passes through",
			"https://cdn.example.com/dish.jpg",
			func(string) string { return "https://cdn.example.com/dish.jpg" },
		},
		{
			"relative resolved against page URL",
			"/images/dish.jpg",
			func(serverURL string) string { return serverURL + "/images/dish.jpg" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serveHTML(t, `<html><head>
<meta property="og:title" content="Dish">
<meta property="og:image" content="`+tt.image+`">
</head><body></body></html>`)

			meta := New().Scrape(context.Background(), server.URL)
			require.NotNil(t, meta)
			require.NotNil(t, meta.ImageURL)
			assert.Equal(t, tt.want(server.URL), *meta.ImageURL)
		})
	}
}

func TestScrape_TwitterImageFallback(t *testing.T) {
	server := serveHTML(t, `<html><head>
<meta property="og:title" content="Dish">
<meta name="twitter:image" content="https://cdn.example.com/tw.jpg">
</head><body></body></html>`)

	meta := New().Scrape(context.Background(), server.URL)
	require.NotNil(t, meta)
	require.NotNil(t, meta.ImageURL)
	assert.Equal(t, "https://cdn.example.com/tw.jpg", *meta.ImageURL)
}

func TestScrape_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	meta := New().Scrape(context.Background(), server.URL)
	assert.Nil(t, meta)
}

func TestScrape_TransportErrorNeverRaises(t *testing.T) {
	meta := New().Scrape(context.Background(), "http://127.0.0.1:1/unreachable")
	assert.Nil(t, meta)
}

func TestScrape_FollowsRedirects(t *testing.T) {
	target := serveHTML(t, `<html><head><meta property="og:title" content="Moved Dish"></head></html>`)
	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirecting.Close()

	meta := New().Scrape(context.Background(), redirecting.URL)
	require.NotNil(t, meta)
	assert.Equal(t, "Moved Dish", meta.Title)
}
