// Package gas implements the client for the Google-Apps-Script-style remote
// endpoint backing the ledger. Reads are GET actions encoded in the query
// string; writes are JSON POSTs with fire-and-forget semantics.
package gas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kasku-app/kasku"
)

// endpointFormat builds the deployment URL from the deployment identifier
// embedded in the startup configuration.
const endpointFormat = "https://script.google.com/macros/s/%s/exec"

// Client talks to one deployment of the endpoint. Every load is a fresh
// read: responses are never cached, and getData carries a cache-busting
// timestamp on top.
type Client struct {
	endpoint string
	hc       *http.Client
	log      zerolog.Logger
	now      func() time.Time
}

// New returns a client for the given deployment identifier. A missing
// identifier is a fatal configuration error, raised before any other logic
// runs.
func New(deploymentID string, log zerolog.Logger) (*Client, error) {
	if deploymentID == "" {
		return nil, fmt.Errorf("%w: missing deployment identifier", kasku.ErrFatalConfig)
	}
	return &Client{
		endpoint: fmt.Sprintf(endpointFormat, url.PathEscape(deploymentID)),
		hc:       &http.Client{Timeout: 30 * time.Second},
		log:      log,
		now:      time.Now,
	}, nil
}

// NewWithURL is New for tests and self-hosted deployments, taking the full
// endpoint URL.
func NewWithURL(endpoint string, log zerolog.Logger) *Client {
	return &Client{endpoint: endpoint, hc: &http.Client{Timeout: 30 * time.Second}, log: log, now: time.Now}
}

// get performs a GET for the given action and unmarshals the JSON response.
func (c *Client) get(ctx context.Context, params url.Values, data any) error {
	addr := c.endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("cannot reach endpoint: %w", err)
	}
	defer resp.Body.Close()
	c.log.Debug().Str("action", params.Get("action")).Str("status", resp.Status).Msg("GET")
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// statusEnvelope is the {status, data} wrapper on getOptions and getSheets.
type statusEnvelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func (c *Client) getEnvelope(ctx context.Context, action string, data any) error {
	params := url.Values{}
	params.Set("action", action)
	var env statusEnvelope
	if err := c.get(ctx, params, &env); err != nil {
		return err
	}
	if env.Status != "success" {
		return fmt.Errorf("endpoint %s returned status %q", action, env.Status)
	}
	return json.Unmarshal(env.Data, data)
}

// optionsData is the wire shape of the configuration record.
type optionsData struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Pin      string   `json:"pin"`
	Photo    string   `json:"photo"`
	Pihak    []string `json:"pihak"`
}

// Options fetches the ledger configuration.
func (c *Client) Options(ctx context.Context) (kasku.Options, error) {
	var data optionsData
	if err := c.getEnvelope(ctx, "getOptions", &data); err != nil {
		return kasku.Options{}, err
	}
	opt := kasku.Options{
		Title:    data.Title,
		Subtitle: data.Subtitle,
		PIN:      data.Pin,
		Photo:    data.Photo,
	}
	// Fewer than two served names replaces the whole pair with the defaults;
	// a full pair is kept verbatim, blanks included.
	if len(data.Pihak) >= 2 {
		opt.Pihak[0] = data.Pihak[0]
		opt.Pihak[1] = data.Pihak[1]
	} else {
		opt.Pihak = kasku.DefaultOptions().Pihak
	}
	return opt, nil
}

// Sheets fetches the raw sheet name list, hidden sheets included.
func (c *Client) Sheets(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.getEnvelope(ctx, "getSheets", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// dataResponse is the wire shape of getData: rows are well-typed, saldo is
// loosely typed (spreadsheet cells arrive as numbers or strings) and is
// extracted tolerantly.
type dataResponse struct {
	Saldo json.RawMessage `json:"saldo"`
	Data  []kasku.Row     `json:"data"`
}

// Data fetches the rows and balance snapshot of one sheet. The t parameter
// defeats any intermediate cache; server row order is preserved.
func (c *Client) Data(ctx context.Context, sheet string) ([]kasku.Row, kasku.Saldo, error) {
	params := url.Values{}
	params.Set("action", "getData")
	params.Set("sheet", sheet)
	params.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	var resp dataResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, kasku.Saldo{}, err
	}
	saldo := kasku.Saldo{
		ATM:        saldoValue(resp.Saldo, "$.atm"),
		CashPihak1: saldoValue(resp.Saldo, "$.cashPihak1"),
		CashPihak2: saldoValue(resp.Saldo, "$.cashPihak2"),
	}
	return resp.Data, saldo, nil
}

// saldoValue digs one balance out of the loose saldo object. Missing keys
// and unparseable cells count as zero, as they always did.
func saldoValue(raw json.RawMessage, path string) kasku.Rupiah {
	if len(raw) == 0 {
		return kasku.R(0)
	}
	var jobj any
	if err := json.Unmarshal(raw, &jobj); err != nil {
		return kasku.R(0)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return kasku.R(0)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case float64:
		return kasku.R(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return kasku.R(0)
		}
		return kasku.RD(d)
	}
	return kasku.R(0)
}

// Submit sends a write payload, fire and forget. Transport success is
// treated as logical success: the endpoint contract gives writes no readable
// body, so the response is drained and discarded, status included. A
// server-side rejection is therefore indistinguishable from a commit; the
// full reload that follows every mutation reconciles it.
func (c *Client) Submit(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("cannot reach endpoint: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	c.log.Debug().Str("status", resp.Status).Int("bytes", len(body)).Msg("POST")
	return nil
}
