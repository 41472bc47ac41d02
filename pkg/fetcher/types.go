package fetcher

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/phishscan/pkg/bitquery"
	"github.com/phishscan/pkg/config"
)

// Fetcher issues the Bitquery queries behind a phishy-token check.
// Query 1 (first transfers) and Query 2 (first buys) are strictly
// sequential — Query 2's input is Query 1's output.
type Fetcher struct {
	cfg  *config.Config
	bq   *bitquery.Client
	http *http.Client // metadata URI fetches only
}

func New(cfg *config.Config, bq *bitquery.Client) *Fetcher {
	return &Fetcher{
		cfg:  cfg,
		bq:   bq,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// amount tolerates Bitquery returning aggregate sums as either JSON numbers
// or strings, and missing fields as null.
type amount float64

func (a *amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = amount(f)
	return nil
}

// timestamp parses the block-time formats Bitquery emits.
type timestamp struct {
	t  time.Time
	ok bool
}

func (ts *timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05 UTC", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			ts.t = t.UTC()
			ts.ok = true
			return nil
		}
	}
	return nil
}

func (ts timestamp) ptr() *time.Time {
	if !ts.ok {
		return nil
	}
	t := ts.t
	return &t
}
