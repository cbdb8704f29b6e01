package camera

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSnapMainStream(t *testing.T) {
	t.Parallel()

	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cmd") == "Login" {
			writeJSON(t, w, loginResponse(testToken))
			return
		}
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if got := r.URL.Query().Get("cmd"); got != "Snap" {
			t.Fatalf("unexpected cmd: %s", got)
		}
		if got := r.URL.Query().Get("channel"); got != "0" {
			t.Fatalf("unexpected channel: %s", got)
		}
		if got := r.URL.Query().Get("token"); got != testToken {
			t.Fatalf("unexpected token: %s", got)
		}
		if got := r.URL.Query().Get("rs"); got != "" {
			t.Fatalf("main stream must not send rs, got %q", got)
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(jpeg)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	data, err := client.Snap(context.Background(), StreamMain)
	if err != nil {
		t.Fatalf("snap: %v", err)
	}
	if string(data) != string(jpeg) {
		t.Fatalf("unexpected image bytes: %v", data)
	}
}

func TestSnapSubStreamSendsRs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cmd") == "Login" {
			writeJSON(t, w, loginResponse(testToken))
			return
		}
		if got := r.URL.Query().Get("rs"); got != "00100" {
			t.Fatalf("unexpected rs parameter: %q", got)
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte{0xff, 0xd8})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if _, err := client.Snap(context.Background(), StreamSub); err != nil {
		t.Fatalf("snap: %v", err)
	}
}

func TestSnapRejectsNonImageResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cmd") == "Login" {
			writeJSON(t, w, loginResponse(testToken))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>error</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.Snap(context.Background(), StreamMain)
	camErr, ok := As(err)
	if !ok || camErr.Kind != KindAPI {
		t.Fatalf("expected API error for non-image body, got %v", err)
	}
}

func TestDownloadFileStreamsBody(t *testing.T) {
	t.Parallel()

	payload := strings.Repeat("video", 1000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cmd") == "Login" {
			writeJSON(t, w, loginResponse(testToken))
			return
		}
		if got := r.URL.Query().Get("cmd"); got != "Download" {
			t.Fatalf("unexpected cmd: %s", got)
		}
		if got := r.URL.Query().Get("source"); got != "Rec_001.mp4" {
			t.Fatalf("unexpected source: %s", got)
		}
		if got := r.URL.Query().Get("output"); got != "Rec_001.mp4" {
			t.Fatalf("unexpected output: %s", got)
		}
		io.WriteString(w, payload)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	body, err := client.DownloadFile(context.Background(), "Rec_001.mp4")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != payload {
		t.Fatalf("payload mismatch: got %d bytes", len(data))
	}
}

func TestSearchRecordingsWrappedResult(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cmd") {
		case "Login":
			writeJSON(t, w, loginResponse(testToken))
		case "Search":
			body := decodeBody(t, r)
			search := body[0]["param"].(map[string]any)["Search"].(map[string]any)
			if search["streamType"] != "main" {
				t.Fatalf("unexpected stream type: %v", search["streamType"])
			}
			start := search["StartTime"].(map[string]any)
			if start["year"] != float64(2026) || start["mon"] != float64(8) {
				t.Fatalf("unexpected start time: %v", start)
			}
			writeJSON(t, w, valueResponse("Search", map[string]any{
				"SearchResult": map[string]any{
					"File": []any{
						map[string]any{"name": "Rec_001.mp4", "size": 1024},
					},
				},
			}))
		default:
			t.Fatalf("unexpected cmd: %s", r.URL.Query().Get("cmd"))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	start := NewTimeSpec(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	end := NewTimeSpec(time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC))
	files, err := client.SearchRecordings(context.Background(), start, end, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(files) != 1 || files[0]["name"] != "Rec_001.mp4" {
		t.Fatalf("unexpected results: %v", files)
	}
}

func TestSearchRecordingsFlatResult(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cmd") == "Login" {
			writeJSON(t, w, loginResponse(testToken))
			return
		}
		writeJSON(t, w, valueResponse("Search", map[string]any{
			"File": []any{
				map[string]any{"name": "Rec_002.mp4"},
			},
		}))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	start := NewTimeSpec(time.Now().Add(-time.Hour))
	end := NewTimeSpec(time.Now())
	files, err := client.SearchRecordings(context.Background(), start, end, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(files) != 1 || files[0]["name"] != "Rec_002.mp4" {
		t.Fatalf("unexpected results: %v", files)
	}
}

func TestStreamURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cmd") {
		case "Login":
			writeJSON(t, w, loginResponse(testToken))
		case "GetNetPort":
			writeJSON(t, w, valueResponse("GetNetPort", map[string]any{
				"NetPort": map[string]any{"rtspPort": 554, "rtmpPort": 1935},
			}))
		default:
			t.Fatalf("unexpected cmd: %s", r.URL.Query().Get("cmd"))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	host := strings.TrimPrefix(server.URL, "http://")

	rtsp, err := client.StreamURL(context.Background(), "rtsp", StreamMain)
	if err != nil {
		t.Fatalf("rtsp url: %v", err)
	}
	want := "rtsp://admin:secret@" + host + ":554//h264Preview_01_main"
	if rtsp != want {
		t.Fatalf("unexpected rtsp url:\n got %s\nwant %s", rtsp, want)
	}

	rtmp, err := client.StreamURL(context.Background(), "rtmp", StreamSub)
	if err != nil {
		t.Fatalf("rtmp url: %v", err)
	}
	want = "rtmp://" + host + ":1935/bcs/channel0_sub.bcs?channel=0&stream=0&user=admin&password=secret"
	if rtmp != want {
		t.Fatalf("unexpected rtmp url:\n got %s\nwant %s", rtmp, want)
	}
}
