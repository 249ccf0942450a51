package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folioadmin/internal/client"
	"folioadmin/internal/config"
	"folioadmin/internal/eventbus"
	"folioadmin/internal/logging"
)

type fakeDeleter struct {
	calls [][]int
	err   error
}

func (f *fakeDeleter) DeletePhotos(_ context.Context, ids []int) error {
	f.calls = append(f.calls, ids)
	return f.err
}

func testApp(t *testing.T) *app {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	a := &app{
		ctx:    ctx,
		cancel: cancel,
		cfg:    config.DefaultConfig(),
		logger: logging.Nop(),
		logOut: nopCloser{},
		bus:    eventbus.New(logging.Nop()),
	}
	t.Cleanup(a.Close)
	return a
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func testCommand(stdin string) (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	c := &cobra.Command{}
	c.SetIn(strings.NewReader(stdin))
	c.SetOut(out)
	c.SetErr(&bytes.Buffer{})
	return c, out
}

func TestDeleteIDsWithYes(t *testing.T) {
	d := &fakeDeleter{}
	c, out := testCommand("")

	require.NoError(t, deleteIDs(c, d, testApp(t), []int{3, 7, 3}, true))
	require.Len(t, d.calls, 1)
	assert.Equal(t, []int{3, 7}, d.calls[0], "duplicates are sent once")
	assert.Contains(t, out.String(), "Deleted 2 photo(s).")
}

func TestDeleteIDsConfirmation(t *testing.T) {
	d := &fakeDeleter{}

	c, out := testCommand("n\n")
	require.NoError(t, deleteIDs(c, d, testApp(t), []int{1, 2}, false))
	assert.Empty(t, d.calls)
	assert.Contains(t, out.String(), "Aborted.")

	c, _ = testCommand("yes\n")
	require.NoError(t, deleteIDs(c, d, testApp(t), []int{1, 2}, false))
	assert.Len(t, d.calls, 1)
}

func TestDeleteIDsServerRejected(t *testing.T) {
	d := &fakeDeleter{err: &client.StatusError{Op: "delete photos", Code: http.StatusInternalServerError, Status: "500 Internal Server Error"}}
	c, _ := testCommand("")

	err := deleteIDs(c, d, testApp(t), []int{5}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrServerRejected)
	assert.Contains(t, err.Error(), "Error deleting photos")
}

func TestDeleteIDsTransportFailure(t *testing.T) {
	d := &fakeDeleter{err: errors.New("connection reset by peer")}
	c, _ := testCommand("")

	err := deleteIDs(c, d, testApp(t), []int{5}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestDeleteIDsEmpty(t *testing.T) {
	d := &fakeDeleter{}
	c, _ := testCommand("")

	assert.Error(t, deleteIDs(c, d, testApp(t), nil, true))
	assert.Empty(t, d.calls)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		got, err := confirm(strings.NewReader(tt.input), &bytes.Buffer{}, "Delete?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestAuditLogsConfigAndErrorEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	logger, closer, err := logging.New(path, logging.LevelInfo)
	require.NoError(t, err)
	defer closer.Close()

	bus := eventbus.New(logger)
	subscribeAudit(bus, logger)
	bus.Publish(eventbus.ConfigLoadedEvent{Path: "/tmp/config.toml", BaseURL: "https://photos.example.com"})
	bus.Publish(eventbus.ErrorEvent{Message: "load photos page", Err: errors.New("boom")})
	bus.Publish(eventbus.PageLoadedEvent{PhotoCount: 2})

	require.Eventually(t, func() bool {
		data, _ := os.ReadFile(path)
		return strings.Count(string(data), `"component":"audit"`) == 3
	}, time.Second, 10*time.Millisecond)
	bus.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"ConfigLoaded"`)
	assert.Contains(t, string(data), "https://photos.example.com")
	assert.Contains(t, string(data), `"type":"Error"`)
}

func TestUploadFileDefaultsTitleToFileName(t *testing.T) {
	var title, collection string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/upload", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<input type="hidden" name="csrf_token" value="t">`)
	})
	mux.HandleFunc("POST /admin/upload", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(1 << 20)
		title, collection = r.FormValue("title"), r.FormValue("collection")
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := testApp(t)
	server := config.DefaultConfig().Server
	server.BaseURL = srv.URL
	var err error
	a.client, err = client.NewFromConfig(server, logging.Nop())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "harbor-at-dusk.jpg")
	require.NoError(t, os.WriteFile(path, []byte("\xff\xd8\xff\xe0jpeg"), 0o644))

	c, out := testCommand("")
	require.NoError(t, uploadFile(c, a, path, "", "travel"))
	assert.Equal(t, "harbor-at-dusk", title)
	assert.Equal(t, "travel", collection)
	assert.Contains(t, out.String(), `Uploaded harbor-at-dusk.jpg as "harbor-at-dusk".`)

	err = uploadFile(c, a, filepath.Join(t.TempDir(), "missing.jpg"), "", "travel")
	assert.Error(t, err)
}
