package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/valyala/fasttemplate"

	apperrors "github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/errors"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/utils"
)

const (
	DetailStatus    = "status"
	DetailARMCode   = "arm_code"
	DetailOperation = "operation"

	maxErrorBody = 512
)

var resourceURLTemplate = fasttemplate.New(
	"{{endpoint}}/subscriptions/{{subscription_id}}/resourceGroups/{{resource_group}}"+
		"/providers/Microsoft.Network/ipGroups/{{ip_group}}?api-version={{api_version}}",
	"{{", "}}")

// HTTPClient is the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the ARM IP group endpoint.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	httpClient HTTPClient
	endpoint   string
	apiVersion string
}

// NewClient creates a client for the management endpoint.
// If httpClient is nil, http.DefaultClient is used.
func NewClient(endpoint, apiVersion string, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiVersion: apiVersion,
	}
}

// ResourceURL returns the request URL for id.
func (c *Client) ResourceURL(id ResourceID) string {
	return resourceURLTemplate.ExecuteString(map[string]interface{}{
		"endpoint":        c.endpoint,
		"subscription_id": url.PathEscape(id.SubscriptionID),
		"resource_group":  url.PathEscape(id.ResourceGroup),
		"ip_group":        url.PathEscape(id.Name),
		"api_version":     url.QueryEscape(c.apiVersion),
	})
}

// GetIPGroup reads the current state of the IP group.
func (c *Client) GetIPGroup(ctx context.Context, token string, id ResourceID) (*IPGroup, error) {
	log.Debugf("Reading IP group %s", id)

	group, err := doJSON[IPGroup](ctx, c, http.MethodGet, token, id, nil)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperrors.NewResourceError(fmt.Sprintf("GET %s returned an empty response body", id), nil).
			WithDetail(DetailOperation, http.MethodGet)
	}
	return group, nil
}

// PutIPGroup replaces the IP group with group's tags, location and addresses.
// Other fields of group are ignored. The returned group is the service's
// view after the write, or nil when the response has no body.
func (c *Client) PutIPGroup(ctx context.Context, token string, id ResourceID, group *IPGroup) (*IPGroup, error) {
	if group == nil {
		return nil, apperrors.NewInternalError("nil IP group", nil)
	}

	addresses := group.Properties.IPAddresses
	if addresses == nil {
		addresses = []string{}
	}
	body, err := json.Marshal(updateRequest{
		Tags:       group.Tags,
		Location:   group.Location,
		Properties: updateProperties{IPAddresses: addresses},
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode IP group", err)
	}

	log.Debugf("Writing IP group %s with %d addresses", id, len(addresses))
	return doJSON[IPGroup](ctx, c, http.MethodPut, token, id, body)
}

// doJSON performs one authorized request and decodes the JSON response.
// An empty 2xx body yields a nil result.
func doJSON[T any](ctx context.Context, c *Client, method, token string, id ResourceID, body []byte) (*T, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.ResourceURL(id), reader)
	if err != nil {
		return nil, apperrors.NewResourceError(fmt.Sprintf("failed to build %s request", method), err).
			WithDetail(DetailOperation, method)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewResourceError(fmt.Sprintf("%s %s failed", method, id), err).
			WithDetail(DetailOperation, method)
	}
	defer utils.DrainAndClose(resp.Body)

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewResourceError("failed to read response body", err).
			WithDetail(DetailOperation, method)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(method, id, resp.StatusCode, payload)
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, nil
	}

	var result T
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, apperrors.NewResourceError("failed to decode response", err).
			WithDetail(DetailOperation, method)
	}
	return &result, nil
}

// statusError builds a RESOURCE_ERROR, using the ARM error envelope when present.
func statusError(method string, id ResourceID, status int, payload []byte) error {
	message := strings.TrimSpace(string(payload))
	code := ""
	if gjson.ValidBytes(payload) {
		code = gjson.GetBytes(payload, "error.code").String()
		if m := gjson.GetBytes(payload, "error.message").String(); m != "" {
			message = m
		}
	}
	if len(message) > maxErrorBody {
		message = message[:maxErrorBody] + "..."
	}

	text := fmt.Sprintf("%s %s returned %d %s", method, id, status, http.StatusText(status))
	if code != "" {
		text += ": " + code
	}
	if message != "" {
		text += ": " + message
	}

	e := apperrors.New(apperrors.ErrCodeResource, text).
		WithDetail(DetailOperation, method).
		WithDetail(DetailStatus, fmt.Sprint(status))
	if code != "" {
		e = e.WithDetail(DetailARMCode, code)
	}
	return e
}
