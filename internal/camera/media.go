package camera

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Stream identifiers for snapshot and live stream selection.
const (
	StreamMain = "main"
	StreamSub  = "sub"
)

// Snap captures a JPEG snapshot and returns the raw image bytes. Stream is
// StreamMain or StreamSub.
func (c *Client) Snap(ctx context.Context, stream string) ([]byte, error) {
	if err := c.ensureLoggedIn(ctx); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("cmd", "Snap")
	query.Set("channel", strconv.Itoa(c.channel))
	query.Set("token", c.token)
	if stream == StreamSub {
		query.Set("rs", fmt.Sprintf("%d0100", c.channel))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, networkErrorf("building snapshot request: %v", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, networkErrorf("HTTP error from %s: %s", c.host, resp.Status)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "image") {
		return nil, apiErrorf("snapshot response is not an image")
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(err)
	}
	return data, nil
}

// DownloadFile streams a recording file from the camera. The caller must
// close the returned reader. The request does not use the command timeout
// because recordings can take minutes to transfer.
func (c *Client) DownloadFile(ctx context.Context, filename string) (io.ReadCloser, error) {
	if err := c.ensureLoggedIn(ctx); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("cmd", "Download")
	query.Set("source", filename)
	query.Set("output", filename)
	query.Set("token", c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, networkErrorf("building download request: %v", err)
	}
	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, networkErrorf("HTTP error from %s: %s", c.host, resp.Status)
	}
	return resp.Body, nil
}

// TimeSpec is the camera's wire format for a point in time.
type TimeSpec struct {
	Year  int `json:"year"`
	Month int `json:"mon"`
	Day   int `json:"day"`
	Hour  int `json:"hour"`
	Min   int `json:"min"`
	Sec   int `json:"sec"`
}

// NewTimeSpec converts a time.Time into the camera's wire format.
func NewTimeSpec(t time.Time) TimeSpec {
	return TimeSpec{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
		Hour:  t.Hour(),
		Min:   t.Minute(),
		Sec:   t.Second(),
	}
}

// SearchRecordings lists recordings in a time range. With onlyStatus set
// to 1 the camera returns per-day status instead of a file list.
func (c *Client) SearchRecordings(ctx context.Context, start, end TimeSpec, onlyStatus int) ([]Object, error) {
	param := Object{"Search": Object{
		"channel":    c.channel,
		"onlyStatus": onlyStatus,
		"streamType": "main",
		"StartTime":  start,
		"EndTime":    end,
	}}
	value, err := c.Execute(ctx, "Search", actionGet, param)
	if err != nil {
		return nil, err
	}
	// Firmware versions disagree on whether the file list sits under a
	// SearchResult wrapper.
	if result := nested(value, "SearchResult"); result != nil {
		return unwrapList(result, "File"), nil
	}
	return unwrapList(value, "File"), nil
}

// StreamURL builds a live stream URL for the camera. Format is "rtsp" or
// "rtmp"; stream is StreamMain or StreamSub. Ports come from the camera's
// network port table, with the protocol defaults as fallback.
func (c *Client) StreamURL(ctx context.Context, format, stream string) (string, error) {
	ports, err := c.NetPort(ctx)
	if err != nil {
		return "", err
	}
	if format == "rtmp" {
		port := intFieldDefault(ports, "rtmpPort", 1935)
		return fmt.Sprintf("rtmp://%s:%d/bcs/channel%d_%s.bcs?channel=%d&stream=0&user=%s&password=%s",
			c.host, port, c.channel, stream, c.channel, c.username, c.password), nil
	}
	port := intFieldDefault(ports, "rtspPort", 554)
	streamPath := "h264Preview"
	if stream == StreamSub {
		streamPath = "h264Preview_01"
	}
	return fmt.Sprintf("rtsp://%s:%s@%s:%d//%s_%02d_%s",
		c.username, c.password, c.host, port, streamPath, c.channel+1, stream), nil
}

func intFieldDefault(value Object, key string, fallback int) int {
	if f, ok := value[key].(float64); ok {
		return int(f)
	}
	return fallback
}
