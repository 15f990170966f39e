package oddsboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leaguePageHTML = `<!DOCTYPE html>
<html>
<head><title>Fixtures</title></head>
<body>
<div id="__next">rendered stuff</div>
<script id="__NEXT_DATA__" type="application/json">
{
  "props": {
    "pageProps": {
      "matches": [
        {
          "id": 101,
          "utcDate": "2026-09-05T14:00:00Z",
          "status": "SCHEDULED",
          "competition": {"code": "PL", "name": "Premier League", "area": {"name": "England", "code": "ENG"}},
          "homeTeam": {"id": 1, "name": "Foo FC", "tla": "FOO"},
          "awayTeam": {"id": 2, "name": "Bar United", "tla": "BAR"}
        },
        {
          "id": 102,
          "utcDate": "2026-09-06T19:00:00Z",
          "status": "TIMED",
          "competition": {"code": "PL", "name": "Premier League", "area": {"name": "England", "code": "ENG"}},
          "homeTeam": {"id": 3, "name": "Baz City", "tla": "BAZ"},
          "awayTeam": {"id": 4, "name": "Qux Town", "tla": "QUX"}
        }
      ]
    }
  }
}
</script>
</body>
</html>`

func TestExtractMatchesFromHTML(t *testing.T) {
	matches, err := ExtractMatchesFromHTML([]byte(leaguePageHTML))
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, int64(101), matches[0].ID)
	assert.Equal(t, "Foo FC", matches[0].HomeTeam.Name)
	assert.Equal(t, "PL", matches[0].Competition.Code)
	assert.Equal(t, "TIMED", matches[1].Status)
}

func TestExtractMatchesMissingScriptTag(t *testing.T) {
	_, err := ExtractMatchesFromHTML([]byte("<html><body>nothing here</body></html>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "__NEXT_DATA__")
}

func TestExtractMatchesMalformedPayload(t *testing.T) {
	html := `<html><body><script id="__NEXT_DATA__">{"props": {}}</script></body></html>`
	_, err := ExtractMatchesFromHTML([]byte(html))
	assert.Error(t, err)
}
