package jable

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"modelwatch/lib/htmlutil"
	"modelwatch/lib/timezone"
	"modelwatch/services/catalog"

	"github.com/PuerkitoBio/goquery"
)

// tag the site attaches to videos carrying subtitles
const subtitledTag = "中文字幕"

const cardSelector = "div.col-6.col-sm-4.col-lg-3"

// detailFetcher fetches a video's own page, needed for tags and the
// relative upload date which the listing page does not carry.
type detailFetcher interface {
	document(ctx context.Context, url string) (*goquery.Document, error)
}

// ExtractAvatar returns the avatar image source of a model page, or
// the placeholder when the page has none. Models without avatars are
// common, absence is not an error.
func ExtractAvatar(doc *goquery.Document) string {
	src, ok := htmlutil.FirstAttr(doc.Find("img.avatar").First(), "src", "data-src")
	if !ok {
		return catalog.DefaultAvatar
	}
	return src
}

// ExtractVideos walks the video cards of a model page, up to limit
// cards (0 = unbounded). A card that fails to parse is skipped with a
// warning so one broken card cannot sink the whole page.
func ExtractVideos(ctx context.Context, fetcher detailFetcher, doc *goquery.Document, model string, limit int) ([]catalog.Video, error) {
	var videos []catalog.Video

	doc.Find(cardSelector).EachWithBreak(func(i int, card *goquery.Selection) bool {
		if limit > 0 && len(videos) >= limit {
			return false
		}

		video, err := extractCard(ctx, fetcher, card, model)
		if err != nil {
			slog.WarnContext(ctx, "skipping unparseable video card",
				"model", model, "card", i, "err", err)
			return true
		}
		videos = append(videos, video)
		return true
	})

	return videos, nil
}

func extractCard(ctx context.Context, fetcher detailFetcher, card *goquery.Selection, model string) (catalog.Video, error) {
	label := card.Find("h6 a").First()
	if label.Length() == 0 {
		label = card.Find("h6").First()
	}
	if label.Length() == 0 {
		return catalog.Video{}, fmt.Errorf("card has no title label")
	}

	// the label is "<id> <display name>", first token is the id
	id, name, _ := strings.Cut(htmlutil.CleanText(label.Nodes[0]), " ")
	if id == "" {
		return catalog.Video{}, fmt.Errorf("card label is empty")
	}

	image, ok := htmlutil.FirstAttr(card.Find("img").First(), "data-src", "src")
	if !ok {
		return catalog.Video{}, fmt.Errorf("card has no image source")
	}

	link, ok := card.Find("a").First().Attr("href")
	if !ok {
		return catalog.Video{}, fmt.Errorf("card has no link")
	}

	views, likes, err := extractCounts(card)
	if err != nil {
		return catalog.Video{}, err
	}

	tags, uploadTime, err := extractDetail(ctx, fetcher, link)
	if err != nil {
		return catalog.Video{}, err
	}

	return catalog.Video{
		Model:      model,
		ID:         id,
		Name:       name,
		Link:       link,
		Image:      image,
		Views:      views,
		Likes:      likes,
		Tags:       tags,
		UploadTime: uploadTime,
		Subtitled:  slices.Contains(tags, subtitledTag),
	}, nil
}

// extractCounts pulls the view and like counts out of a card's
// sub-title line. The counts are bare text nodes wedged between icon
// elements, so this walks the child nodes and takes the numeric text
// nodes in order: views first, likes second.
func extractCounts(card *goquery.Selection) (views int, likes int, err error) {
	sub := card.Find("p.sub-title").First()
	if sub.Length() == 0 {
		return 0, 0, fmt.Errorf("card has no sub-title line")
	}

	var counts []int
	for node := sub.Nodes[0].FirstChild; node != nil; node = node.NextSibling {
		n, err := parseCount(htmlutil.GetText(node))
		if err != nil {
			continue
		}
		counts = append(counts, n)
	}
	if len(counts) < 2 {
		return 0, 0, fmt.Errorf("sub-title has %d counts, want 2", len(counts))
	}
	return counts[0], counts[1], nil
}

var countSeparators = strings.NewReplacer(" ", "", " ", "", ",", "", "\n", "")

// parseCount strips the locale's thousand separators before parsing.
func parseCount(text string) (int, error) {
	text = countSeparators.Replace(text)
	if text == "" {
		return 0, fmt.Errorf("empty count")
	}
	return strconv.Atoi(text)
}

// extractDetail fetches a video's page for its tag list and relative
// upload date.
func extractDetail(ctx context.Context, fetcher detailFetcher, link string) ([]string, string, error) {
	doc, err := fetcher.document(ctx, link)
	if err != nil {
		return nil, "", err
	}

	var tags []string
	doc.Find("h5.tags.h6-md a").Each(func(_ int, tag *goquery.Selection) {
		tags = append(tags, htmlutil.CleanText(tag.Nodes[0]))
	})

	uploadTime, err := extractUploadTime(doc)
	if err != nil {
		return nil, "", err
	}
	return tags, uploadTime, nil
}

// extractUploadTime resolves the "N 單位前" label on a video page into
// an absolute stored date.
func extractUploadTime(doc *goquery.Document) (string, error) {
	stamp := doc.Find("span.mr-3").First()
	if stamp.Length() == 0 {
		return "", fmt.Errorf("video page has no upload time")
	}

	fields := strings.Fields(htmlutil.CleanText(stamp.Nodes[0]))
	if len(fields) < 2 {
		return "", fmt.Errorf("malformed upload time %q", strings.Join(fields, " "))
	}
	quantity, err := strconv.Atoi(fields[0])
	if err != nil {
		return "", fmt.Errorf("malformed upload time quantity %q: %w", fields[0], err)
	}

	resolved := Resolve(timezone.Now(), quantity, ParseUnit(fields[1]))
	return FormatDate(resolved), nil
}
