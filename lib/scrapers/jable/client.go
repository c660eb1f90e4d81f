package jable

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"modelwatch/lib/telemetry"
	"modelwatch/services/catalog"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("modelwatch.scrapers.jable")

// Client fetches catalog pages through an anti-bot bypassing HTTP
// client and turns them into typed records. It implements
// catalog.Source.
type Client struct {
	http *resty.Client
	// page cap per model, 0 scrapes every card
	limit int
}

type ClientOptions struct {
	// maximum video cards to extract per model page, 0 = unbounded
	Limit int
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "modelwatch.scrapers.jable.http")

	return &Client{http: client, limit: opts.Limit}, nil
}

func (c *Client) document(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch %s: %s", url, res.Status())
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// Scrape fetches one model's page and extracts its avatar and video
// records, following each card's link for tags and upload date.
func (c *Client) Scrape(ctx context.Context, model catalog.Model) (catalog.Extraction, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("model", model.Name))

	doc, err := c.document(ctx, model.Link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch model page")
		return catalog.Extraction{}, err
	}

	videos, err := ExtractVideos(ctx, c, doc, model.Name, c.limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract videos")
		return catalog.Extraction{}, err
	}

	return catalog.Extraction{
		Avatar: ExtractAvatar(doc),
		Videos: videos,
	}, nil
}
