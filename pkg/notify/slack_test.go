package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slackServer emulates the external upload flow of the slack api
type slackServer struct {
	*httptest.Server
	mu       sync.Mutex
	uploaded []byte
	complete map[string]string
}

func newSlackServer(t *testing.T) *slackServer {
	s := &slackServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/files.getUploadURLExternal", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "report.xlsx", r.FormValue("filename"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"upload_url":"`+s.URL+`/upload","file_id":"F123"}`)
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if assert.NoError(t, err) {
			data, _ := io.ReadAll(file)
			s.mu.Lock()
			s.uploaded = data
			s.mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true}`)
	})
	mux.HandleFunc("/api/files.completeUploadExternal", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		s.mu.Lock()
		s.complete = map[string]string{"channel_id": r.FormValue("channel_id"), "initial_comment": r.FormValue("initial_comment")}
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"files":[{"id":"F123","title":"report.xlsx"}]}`)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func TestSlackNotifier_UploadFile(t *testing.T) {
	srv := newSlackServer(t)
	n := NewSlackNotifier("xoxb-test", "C-default", srv.URL+"/api/")

	err := n.UploadFile(context.Background(), "C123", []byte("xlsx bytes"), "report.xlsx", "weekly steam report")
	require.NoError(t, err)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, "xlsx bytes", string(srv.uploaded))
	assert.Equal(t, "C123", srv.complete["channel_id"])
	assert.Equal(t, "weekly steam report", srv.complete["initial_comment"])
}

func TestSlackNotifier_DefaultChannel(t *testing.T) {
	srv := newSlackServer(t)
	n := NewSlackNotifier("xoxb-test", "C-default", srv.URL+"/api/")
	require.NoError(t, n.UploadFile(context.Background(), "", []byte("x"), "report.xlsx", ""))
	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, "C-default", srv.complete["channel_id"])
}

func TestSlackNotifier_Errors(t *testing.T) {
	n := NewSlackNotifier("xoxb-test", "", "http://127.0.0.1:1/api/")
	err := n.UploadFile(context.Background(), "", []byte("x"), "report.xlsx", "")
	assert.ErrorIs(t, err, ErrNoChannel)

	err = n.UploadFile(context.Background(), "C1", nil, "report.xlsx", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty file")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":false,"error":"not_in_channel"}`)
	}))
	defer srv.Close()
	n = NewSlackNotifier("xoxb-test", "C1", srv.URL+"/")
	err = n.UploadFile(context.Background(), "", []byte("x"), "report.xlsx", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_in_channel")
}
