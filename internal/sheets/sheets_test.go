package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

// fakeSheetsAPI serves values.get for one spreadsheet.
func fakeSheetsAPI(t *testing.T, sheetID, tab, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		path, _ := url.PathUnescape(r.URL.EscapedPath())
		want := "/v4/spreadsheets/" + sheetID + "/values/" + tabRange(tab)
		if path != want {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`))
			return
		}
		if got := r.URL.Query().Get("valueRenderOption"); got != "FORMATTED_VALUE" {
			t.Errorf("expected formatted values, got %q", got)
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testSource(t *testing.T, srv *httptest.Server) *Source {
	t.Helper()
	src, err := newSource(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return src
}

func TestFetch(t *testing.T) {
	srv := fakeSheetsAPI(t, "sheet-123", "Requests", `{
		"range": "Requests!A1:G5",
		"majorDimension": "ROWS",
		"values": [
			["Timestamp", "User", "Song", "Status"],
			["6/14/2025 17:00:00", "Alex", "Wobble", "Played"],
			["6/14/2025 19:00:00", "Jordan"],
			[],
			["", "", "  "],
			["6/14/2025 19:30:00", "Sam", "Cha Cha Slide", ""]
		]
	}`)
	src := testSource(t, srv)

	sheet, err := src.Fetch(context.Background(), "sheet-123", "Requests")
	require.NoError(t, err)
	assert.Equal(t, []string{"Timestamp", "User", "Song", "Status"}, sheet.Header)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Played", sheet.Rows[0]["Status"])
	assert.Equal(t, map[string]string{"Timestamp": "6/14/2025 19:00:00", "User": "Jordan", "Song": "", "Status": ""}, sheet.Rows[1])
	assert.Equal(t, "Sam", sheet.Rows[2]["User"])
}

func TestFetchQuotesTabNames(t *testing.T) {
	srv := fakeSheetsAPI(t, "sheet-123", "DJ's Requests", `{"values": [["Timestamp", "User"]]}`)
	src := testSource(t, srv)

	sheet, err := src.Fetch(context.Background(), "sheet-123", "DJ's Requests")
	require.NoError(t, err)
	assert.Equal(t, []string{"Timestamp", "User"}, sheet.Header)
	assert.Empty(t, sheet.Rows)
	assert.Equal(t, "'DJ''s Requests'", tabRange("DJ's Requests"))
}

func TestFetchEmptyTab(t *testing.T) {
	srv := fakeSheetsAPI(t, "sheet-123", "Requests", `{"range": "Requests!A1:Z1000"}`)
	sheet, err := testSource(t, srv).Fetch(context.Background(), "sheet-123", "Requests")
	require.NoError(t, err)
	assert.Nil(t, sheet.Header)

	// An empty tab has no header, so the normalizer rejects it.
	_, _, err = queue.Normalize(sheet, nil)
	var schemaErr *queue.SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestFetchUnknownSheetIsUnavailable(t *testing.T) {
	srv := fakeSheetsAPI(t, "sheet-123", "Requests", `{}`)
	src := testSource(t, srv)

	for _, tc := range []struct{ id, tab string }{
		{"wrong-id", "Requests"},
		{"sheet-123", "Missing Tab"},
	} {
		_, err := src.Fetch(context.Background(), tc.id, tc.tab)
		require.Error(t, err)
		assert.ErrorIs(t, err, queue.ErrSourceUnavailable)
		assert.True(t, strings.Contains(err.Error(), tc.tab))
	}
}

func TestFetchNetworkFailureIsUnavailable(t *testing.T) {
	srv := fakeSheetsAPI(t, "sheet-123", "Requests", `{}`)
	src := testSource(t, srv)
	srv.Close()

	_, err := src.Fetch(context.Background(), "sheet-123", "Requests")
	assert.ErrorIs(t, err, queue.ErrSourceUnavailable)
}

func TestNewSourceRequiresCredentials(t *testing.T) {
	_, err := NewSource(context.Background(), Credentials{})
	assert.ErrorIs(t, err, queue.ErrSourceUnavailable)
}
