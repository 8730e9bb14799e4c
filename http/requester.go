package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fwojciec/tunescrape"
)

// DefaultBaseURL is the archive's MediaWiki entry point.
const DefaultBaseURL = "http://tunearch.org/w/index.php"

// themeCodeLabel is the printout label under which theme codes are returned.
const themeCodeLabel = "Theme Code Index"

// Ensure PageRequester implements tunescrape.PageRequester at compile time.
var _ tunescrape.PageRequester = (*PageRequester)(nil)

// PageRequester queries the archive's Special:Ask endpoint for pages of tunes.
type PageRequester struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewPageRequester creates a PageRequester for the given index URL.
// An empty baseURL uses DefaultBaseURL.
func NewPageRequester(baseURL string, opts ...Option) *PageRequester {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	o := buildOptions(opts)
	return &PageRequester{
		baseURL:   baseURL,
		client:    o.client,
		userAgent: o.userAgent,
	}
}

// RequestPage fetches one page of the tune index.
func (r *PageRequester) RequestPage(ctx context.Context, q tunescrape.PageQuery) ([]*tunescrape.Entry, error) {
	if q.Size <= 0 {
		return nil, tunescrape.Errorf(tunescrape.EINVALID, "page size must be positive, got %d", q.Size)
	}
	if q.Page < 0 {
		return nil, tunescrape.Errorf(tunescrape.EINVALID, "page index must not be negative, got %d", q.Page)
	}

	target, err := r.QueryURL(q)
	if err != nil {
		return nil, err
	}

	body, err := get(ctx, r.client, r.userAgent, target)
	if err != nil {
		return nil, err
	}

	entries, err := decodeResults(body)
	if err != nil {
		return nil, tunescrape.Errorf(tunescrape.EINTERNAL, "decode index response from %s: %v", target, err)
	}
	return entries, nil
}

// QueryURL builds the Special:Ask URL for a page query.
func (r *PageRequester) QueryURL(q tunescrape.PageQuery) (string, error) {
	base, err := url.Parse(r.baseURL)
	if err != nil {
		return "", tunescrape.Errorf(tunescrape.EINVALID, "invalid base URL: %v", err)
	}

	args := url.Values{}
	args.Set("title", "Special:Ask")
	args.Set("q", askQuery(q.Partition))
	args.Set("po", "?Theme code index="+themeCodeLabel)
	args.Set("sort[0]", "Theme_code_index")
	args.Set("order[0]", "ASC")
	args.Set("order_num", "ASC")
	args.Set("p[format]", "json")
	args.Set("p[searchlabel]", "JSON")
	args.Set("p[offset]", strconv.Itoa(q.Offset()))
	args.Set("p[limit]", strconv.Itoa(q.Size))

	base.RawQuery = args.Encode()
	return base.String(), nil
}

// askQuery returns the Semantic MediaWiki query for a partition.
// Prefix partitions match any code starting with the prefix; terminal
// partitions match the exact code or the code followed by a space.
func askQuery(p *tunescrape.Partition) string {
	const category = "[[Category:Tune]]"
	switch {
	case p == nil:
		return category
	case p.IsTerminal():
		code := p.Prefix()
		return fmt.Sprintf("%s[[Theme code index::%s||~%s *]]", category, code, code)
	default:
		return fmt.Sprintf("%s[[Theme code index::~%s*]]", category, p.Code)
	}
}

type envelope struct {
	Results json.RawMessage `json:"results"`
}

type result struct {
	FullText  string          `json:"fulltext"`
	FullURL   string          `json:"fullurl"`
	Printouts json.RawMessage `json:"printouts"`
}

// decodeResults extracts entries from the JSON envelope in server order.
// A results value that is not an object (the archive sends [] when nothing
// matches) yields zero entries.
func decodeResults(body []byte) ([]*tunescrape.Entry, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(env.Results)
	if len(raw) == 0 || raw[0] != '{' {
		return []*tunescrape.Entry{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	entries := []*tunescrape.Entry{}
	for dec.More() {
		// Result keys are page titles; the values carry everything we need.
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var res result
		if err := dec.Decode(&res); err != nil {
			return nil, err
		}
		entries = append(entries, &tunescrape.Entry{
			FullText:  res.FullText,
			FullURL:   res.FullURL,
			ThemeCode: themeCode(res.Printouts),
		})
	}
	return entries, nil
}

// themeCode returns the first theme code printout, or "" if there is none.
func themeCode(raw json.RawMessage) string {
	var printouts map[string][]json.RawMessage
	if err := json.Unmarshal(raw, &printouts); err != nil {
		return ""
	}
	for _, value := range printouts[themeCodeLabel] {
		var code string
		if err := json.Unmarshal(value, &code); err == nil && code != "" {
			return code
		}
	}
	return ""
}
