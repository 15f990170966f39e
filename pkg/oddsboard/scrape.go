package oddsboard

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractMatchesFromHTML pulls the fixture list out of the JSON payload that
// the provider's rendered league page embeds in its __NEXT_DATA__ script tag.
// Used only as a fallback when the JSON API refuses a competition.
func ExtractMatchesFromHTML(html []byte) ([]*apiMatch, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	var scriptData string
	doc.Find("script#__NEXT_DATA__").Each(func(i int, s *goquery.Selection) {
		scriptData = s.Text()
	})
	if scriptData == "" {
		return nil, fmt.Errorf("could not find __NEXT_DATA__ script tag")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(scriptData), &data); err != nil {
		return nil, fmt.Errorf("error parsing embedded JSON: %w", err)
	}

	// Navigate props.pageProps.matches
	props, ok := data["props"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("could not find 'props' in embedded data")
	}
	pageProps, ok := props["pageProps"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("could not find 'pageProps' in props")
	}
	rawMatches, ok := pageProps["matches"].([]any)
	if !ok {
		return nil, fmt.Errorf("could not find 'matches' in pageProps")
	}

	matches := make([]*apiMatch, 0, len(rawMatches))
	for i, raw := range rawMatches {
		buf, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("error re-marshaling match %d: %w", i, err)
		}
		var m apiMatch
		if err := json.Unmarshal(buf, &m); err != nil {
			return nil, fmt.Errorf("error parsing match %d: %w", i, err)
		}
		matches = append(matches, &m)
	}
	return matches, nil
}
