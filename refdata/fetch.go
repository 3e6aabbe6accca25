package refdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DefaultQuoteURL is the public quote endpoint serving per-scheme latest NAVs
// as JSON, keyed by AMFI scheme code.
const DefaultQuoteURL = "https://api.mfapi.in/mf"

// SetQuoteURL overrides the quote endpoint used by Refresh.
func (t *Table) SetQuoteURL(base string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.quoteURL = base
}

func (t *Table) quoteBase() string {
	if t.quoteURL == "" {
		return DefaultQuoteURL
	}
	return t.quoteURL
}

// Refresh re-fetches the NAV of the scheme holding this ISIN from the quote
// endpoint and updates the table in place. It is the only way a loaded price
// changes; callers that want fresher data than the NAV file must ask for it.
func (t *Table) Refresh(client *http.Client, isin string) error {
	t.mu.RLock()
	base := t.quoteBase()
	var code string
	for _, row := range t.navs {
		if row.isinGrowth == isin || row.isinReinvest == isin {
			code = row.schemeCode
			break
		}
	}
	t.mu.RUnlock()
	if code == "" {
		return fmt.Errorf("%w: %s", ErrNAVNotFound, isin)
	}

	value, err := fetchLatestNAV(client, base, code)
	if err != nil {
		return fmt.Errorf("could not refresh NAV for %s: %w", isin, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i, row := range t.navs {
		if row.isinGrowth == isin || row.isinReinvest == isin {
			t.navs[i].value = value
		}
	}
	return nil
}

/*
	{
	    "meta": { "scheme_code": 119551, "scheme_name": "..." },
	    "data": [ { "date": "29-08-2026", "nav": "343.35190" } ],
	    "status": "SUCCESS"
	}
*/
func fetchLatestNAV(client *http.Client, base, schemeCode string) (decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/%s/latest", base, schemeCode)
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error in wget %q: %w", schemeCode, err)
	}
	path := "$.data[0].nav"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing quote for %q: %q %w", schemeCode, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	str, ok := jval.(string)
	if !ok {
		return decimal.Zero, fmt.Errorf("error parsing quote for %q: %q not a string: %v", schemeCode, path, jval)
	}
	return parseAmount(str)
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
