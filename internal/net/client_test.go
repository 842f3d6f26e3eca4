package net

import (
	"context"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.URL.Path == "/missing" {
			stdhttp.NotFound(w, r)
			return
		}
		if r.Header.Get("User-Agent") != ua {
			stdhttp.Error(w, "bad user agent", stdhttp.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, "a,b,c")
	}))
	defer srv.Close()

	body, err := Open(context.Background(), srv.URL+"/data.csv")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	require.Equal(t, "a,b,c", string(data))

	_, err = Open(context.Background(), srv.URL+"/missing")
	require.ErrorContains(t, err, "unexpected status 404")
}
