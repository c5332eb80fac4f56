package lists

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	apperrors "github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/errors"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/hashing"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/utils"
)

const (
	// DownloadAnchorSelector matches the "click here to download manually" link.
	DownloadAnchorSelector = `a[data-bi-id="downloadretry"]`

	// maxDocumentSize caps both the landing page and the JSON payload.
	maxDocumentSize = 64 << 20
)

// HTTPClient is the subset of *http.Client used by the downloader.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	PageURL   string
	SectionID string
	UserAgent string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient HTTPClient
}

// Downloader fetches the prefixes of one section of the vendor service tag document.
type Downloader struct {
	httpClient HTTPClient
	pageURL    string
	sectionID  string
	userAgent  string
}

func NewDownloader(opts Options) *Downloader {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Downloader{
		httpClient: httpClient,
		pageURL:    opts.PageURL,
		sectionID:  opts.SectionID,
		userAgent:  opts.UserAgent,
	}
}

// FetchPrefixes downloads the landing page, follows the download link and
// returns the address prefixes of the configured section in source order.
func (d *Downloader) FetchPrefixes(ctx context.Context) ([]string, error) {
	pageURL, err := url.Parse(d.pageURL)
	if err != nil {
		return nil, apperrors.NewSourceError("invalid source page URL", err)
	}

	log.Infof("Downloading source page %s", d.pageURL)
	page, err := d.get(ctx, d.pageURL)
	if err != nil {
		return nil, apperrors.NewSourceError("failed to download source page", err)
	}

	documentURL, err := ExtractDownloadURL(page, pageURL)
	if err != nil {
		return nil, apperrors.NewSourceError("failed to locate download link", err)
	}

	log.Infof("Downloading prefix document %s", documentURL)
	payload, err := d.get(ctx, documentURL)
	if err != nil {
		return nil, apperrors.NewSourceError("failed to download prefix document", err)
	}

	prefixes, err := ExtractSectionPrefixes(payload, d.sectionID)
	if err != nil {
		return nil, apperrors.NewSourceError(fmt.Sprintf("failed to read section %q", d.sectionID), err)
	}

	log.Info("Prefix list downloaded",
		"section", d.sectionID,
		"prefixes", len(prefixes),
		"change_number", gjson.GetBytes(payload, "changeNumber").Int())
	return prefixes, nil
}

func (d *Downloader) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer utils.DrainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, rawURL)
	}

	checksum := hashing.NewChecksumReader(io.LimitReader(resp.Body, maxDocumentSize+1))
	body, err := io.ReadAll(checksum)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", rawURL, err)
	}
	if len(body) > maxDocumentSize {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", rawURL, maxDocumentSize)
	}

	log.Debug("Downloaded document", "url", rawURL, "bytes", len(body), "sha256", checksum.Checksum())
	return body, nil
}

// ExtractDownloadURL finds the download-retry anchor in page and resolves its href against base.
func ExtractDownloadURL(page []byte, base *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	anchor := doc.Find(DownloadAnchorSelector).First()
	if anchor.Length() == 0 {
		return "", fmt.Errorf("no element matches %s", DownloadAnchorSelector)
	}

	href, ok := anchor.Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", fmt.Errorf("download link has no href")
	}

	target, err := base.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid download link %q: %w", href, err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return "", fmt.Errorf("unsupported download link scheme %q", target.Scheme)
	}

	return target.String(), nil
}

// ExtractSectionPrefixes returns values[id == sectionID].properties.addressPrefixes.
func ExtractSectionPrefixes(payload []byte, sectionID string) ([]string, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("document is not valid JSON")
	}

	values := gjson.GetBytes(payload, "values")
	if !values.IsArray() {
		return nil, fmt.Errorf("document has no \"values\" array")
	}

	var section gjson.Result
	values.ForEach(func(_, value gjson.Result) bool {
		if value.Get("id").String() == sectionID {
			section = value
			return false
		}
		return true
	})
	if !section.Exists() {
		return nil, fmt.Errorf("section %q not found", sectionID)
	}

	list := section.Get("properties.addressPrefixes")
	if !list.IsArray() {
		return nil, fmt.Errorf("section %q has no addressPrefixes array", sectionID)
	}

	prefixes := make([]string, 0, len(list.Array()))
	for i, item := range list.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("addressPrefixes[%d] of section %q is not a string: %s", i, sectionID, item.Raw)
		}
		prefixes = append(prefixes, item.String())
	}

	return prefixes, nil
}
