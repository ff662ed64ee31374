package cmd

import (
	"context"
	"fmt"
	"time"
	"vbscout-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

// some athletics CMSes reject requests without a browser-looking agent
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

type restyFetcher struct {
	client *resty.Client
}

func newFetcher() restyFetcher {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetTimeout(30 * time.Second).
		SetRetryCount(2)
	telemetry.InstrumentResty(client, "vbscout.fetch")
	return restyFetcher{client: client}
}

func (f restyFetcher) Fetch(ctx context.Context, url string) (string, error) {
	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", err
	}
	if res.StatusCode() >= 400 {
		return "", fmt.Errorf("fetch %s: status %d", url, res.StatusCode())
	}
	return res.String(), nil
}
