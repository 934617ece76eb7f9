package hmns3

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, string) {
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.Nil(t, err)
	res, err := srv.Client().Do(req)
	require.Nil(t, err)
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	require.Nil(t, err)
	return res.StatusCode, string(resBody)
}

func TestServer(t *testing.T) {
	root := t.TempDir()
	srv := httptest.NewServer(NewServer(root))
	defer srv.Close()

	t.Run("missing bucket", func(t *testing.T) {
		status, body := do(t, srv, http.MethodPut, "/site/a.txt", "hello")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, body, "<Code>NoSuchBucket</Code>")
	})
	t.Run("create bucket and object", func(t *testing.T) {
		status, _ := do(t, srv, http.MethodPut, "/site", "")
		require.Equal(t, http.StatusOK, status)

		status, _ = do(t, srv, http.MethodPut, "/site/dir/a.txt", "hello")
		require.Equal(t, http.StatusOK, status)

		content, err := os.ReadFile(filepath.Join(root, "site", "dir", "a.txt"))
		require.Nil(t, err)
		assert.Equal(t, "hello", string(content))

		status, body := do(t, srv, http.MethodGet, "/site/dir/a.txt", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "hello", body)
	})
	t.Run("keys stay inside the bucket", func(t *testing.T) {
		status, _ := do(t, srv, http.MethodPut, "/site/..%2F..%2Fescape.txt", "x")
		require.Equal(t, http.StatusOK, status)
		_, err := os.Stat(filepath.Join(root, "site", "escape.txt"))
		assert.Nil(t, err)
	})
	t.Run("missing key", func(t *testing.T) {
		status, body := do(t, srv, http.MethodGet, "/site/nope", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, body, "NoSuchKey")
	})
	t.Run("unsupported method", func(t *testing.T) {
		status, _ := do(t, srv, http.MethodDelete, "/site/dir/a.txt", "")
		assert.Equal(t, http.StatusNotImplemented, status)
	})
}
