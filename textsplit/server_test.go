package textsplit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/textsplit/internal/log"
	"github.com/Alfex4936/textsplit/internal/model"
)

func newTestServer(maxBody int) http.Handler {
	return NewServer(DefaultConfig(), maxBody, log.Nop()).Handler()
}

func do(h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeResult(t *testing.T, rr *httptest.ResponseRecorder) model.Result {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var res model.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	return res
}

func TestSplitHandlerJSON(t *testing.T) {
	h := newTestServer(0)
	rr := do(h, http.MethodPost, "/v1/split", "application/json; charset=utf-8",
		`{"text": "a,,b", "separator": ","}`)

	res := decodeResult(t, rr)
	require.Equal(t, 3, res.ViewCount)
	require.Equal(t, 4, res.ByteCount)
	require.Equal(t, []model.Span{
		{Idx: 0, Begin: 0, End: 1, Text: "a"},
		{Idx: 1, Begin: 2, End: 2, Text: ""},
		{Idx: 2, Begin: 3, End: 4, Text: "b"},
	}, res.Views)
}

func TestSplitHandlerRaw(t *testing.T) {
	h := newTestServer(0)
	rr := do(h, http.MethodPost, `/v1/split?sep=%5Cn&limit=2`, "text/plain", "l1\nl2\nl3\n")

	res := decodeResult(t, rr)
	require.Equal(t, "\n", res.Separator)
	require.Equal(t, 3, res.ViewCount)
	require.True(t, res.Truncated)
	require.Len(t, res.Views, 2)
	require.Equal(t, "l2", res.Views[1].Text)
}

func TestSplitHandlerEmptyText(t *testing.T) {
	h := newTestServer(0)
	res := decodeResult(t, do(h, http.MethodPost, "/v1/split", "application/json", `{"text": "", "separator": ";"}`))
	require.Zero(t, res.ViewCount)
	require.NotNil(t, res.Views)
	require.Empty(t, res.Views)
}

func TestSplitHandlerErrors(t *testing.T) {
	h := newTestServer(16)

	var tests = []struct {
		name   string
		method string
		target string
		ctype  string
		body   string
		status int
	}{
		{"wrong method", http.MethodGet, "/v1/split", "", "", http.StatusMethodNotAllowed},
		{"bad json", http.MethodPost, "/v1/split", "application/json", `{"text":`, http.StatusBadRequest},
		{"empty separator json", http.MethodPost, "/v1/split", "application/json", `{"text":"a,b"}`, http.StatusBadRequest},
		{"empty separator raw", http.MethodPost, "/v1/split", "text/plain", "a,b", http.StatusBadRequest},
		{"bad escape", http.MethodPost, `/v1/split?sep=%5Cq`, "text/plain", "a,b", http.StatusBadRequest},
		{"bad limit", http.MethodPost, `/v1/split?sep=,&limit=x`, "text/plain", "a,b", http.StatusBadRequest},
		{"too large json", http.MethodPost, "/v1/split", "application/json",
			`{"text":"` + strings.Repeat("x", 17) + `","separator":","}`, http.StatusRequestEntityTooLarge},
		{"too large raw", http.MethodPost, `/v1/split?sep=,`, "text/plain", strings.Repeat("x,", 20), http.StatusRequestEntityTooLarge},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rr := do(h, test.method, test.target, test.ctype, test.body)
			require.Equal(t, test.status, rr.Code, rr.Body.String())
		})
	}
}

func TestAuxHandlers(t *testing.T) {
	h := newTestServer(0)

	rr := do(h, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"ok","service":"textsplit"}`, rr.Body.String())

	rr = do(h, http.MethodGet, "/openapi.json", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, json.Valid(rr.Body.Bytes()))

	rr = do(h, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "redoc")

	rr = do(h, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}
