package jable

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"modelwatch/lib/telemetry"
	"modelwatch/lib/timezone"
	"modelwatch/services/catalog"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cleanup := telemetry.SetupForTesting("test:scrapers/jable")
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func loadFixture(t *testing.T, name string) *goquery.Document {
	buf, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(buf)))
	require.NoError(t, err)
	return doc
}

// fixtureFetcher serves detail pages from testdata instead of the
// network.
type fixtureFetcher struct {
	t    *testing.T
	name string
	fail bool
}

func (f fixtureFetcher) document(_ context.Context, url string) (*goquery.Document, error) {
	if f.fail {
		return nil, fmt.Errorf("detail fetch refused: %s", url)
	}
	return loadFixture(f.t, f.name), nil
}

func TestExtractAvatar(t *testing.T) {
	doc := loadFixture(t, "model_page.html")
	require.Equal(t, "https://assets.example.test/avatars/mika.jpg", ExtractAvatar(doc))

	doc = loadFixture(t, "model_page_no_avatar.html")
	require.Equal(t, catalog.DefaultAvatar, ExtractAvatar(doc))
}

func TestExtractVideos(t *testing.T) {
	doc := loadFixture(t, "model_page.html")
	fetcher := fixtureFetcher{t: t, name: "video_page.html"}

	videos, err := ExtractVideos(context.Background(), fetcher, doc, "mika", 0)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	v := videos[0]
	require.Equal(t, "mika", v.Model)
	require.Equal(t, "ABC-001", v.ID)
	require.Equal(t, "初めての共演スペシャル", v.Name)
	require.Equal(t, "https://catalog.example.test/videos/abc-001/", v.Link)
	require.Equal(t, "https://assets.example.test/covers/abc-001.jpg", v.Image)
	require.Equal(t, 1234567, v.Views)
	require.Equal(t, 8910, v.Likes)
	require.Equal(t, []string{"劇情", "中文字幕", "高清"}, v.Tags)
	require.True(t, v.Subtitled)

	// the fixture says "3 天前"; compute the expectation on both
	// sides of the call so a date rollover mid-test cannot flake
	before := FormatDate(Resolve(timezone.Now(), 3, UnitDay))
	after := FormatDate(Resolve(timezone.Now(), 3, UnitDay))
	require.Contains(t, []string{before, after}, v.UploadTime)

	require.Equal(t, "ABC-002", videos[1].ID)
	require.Equal(t, 98765, videos[1].Views)
	require.Equal(t, 432, videos[1].Likes)
}

func TestExtractVideosLimit(t *testing.T) {
	doc := loadFixture(t, "model_page.html")
	fetcher := fixtureFetcher{t: t, name: "video_page.html"}

	videos, err := ExtractVideos(context.Background(), fetcher, doc, "mika", 1)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	require.Equal(t, "ABC-001", videos[0].ID)
}

func TestExtractVideosSkipsBrokenCards(t *testing.T) {
	doc := loadFixture(t, "model_page_no_avatar.html")
	fetcher := fixtureFetcher{t: t, name: "video_page.html"}

	// the first card has no image element, only the second survives
	videos, err := ExtractVideos(context.Background(), fetcher, doc, "mika", 0)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	require.Equal(t, "GOOD-001", videos[0].ID)
}

func TestExtractVideosSkipsCardsWithDeadDetailPages(t *testing.T) {
	doc := loadFixture(t, "model_page.html")
	fetcher := fixtureFetcher{t: t, fail: true}

	videos, err := ExtractVideos(context.Background(), fetcher, doc, "mika", 0)
	require.NoError(t, err)
	require.Len(t, videos, 0)
}
