package camera

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	current := Object{"bright": float64(128), "contrast": float64(128)}
	merged := merge(current, Object{"bright": 200})
	if merged["bright"] != 200 {
		t.Fatalf("overlay value not applied: %v", merged["bright"])
	}
	if merged["contrast"] != float64(128) {
		t.Fatalf("untouched field changed: %v", merged["contrast"])
	}
	if current["bright"] != float64(128) {
		t.Fatalf("merge must not mutate its input: %v", current["bright"])
	}
}

func TestSetImageReadModifyWrite(t *testing.T) {
	t.Parallel()

	var sent map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cmd") {
		case "Login":
			writeJSON(t, w, loginResponse(testToken))
		case "GetImage":
			writeJSON(t, w, valueResponse("GetImage", map[string]any{
				"Image": map[string]any{"bright": 128, "contrast": 128},
			}))
		case "SetImage":
			body := decodeBody(t, r)
			sent = body[0]["param"].(map[string]any)["Image"].(map[string]any)
			writeJSON(t, w, []map[string]any{{"cmd": "SetImage", "code": 0}})
		default:
			t.Fatalf("unexpected cmd: %s", r.URL.Query().Get("cmd"))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if err := client.SetImage(context.Background(), Object{"bright": 200}); err != nil {
		t.Fatalf("set image: %v", err)
	}
	if sent["bright"] != float64(200) {
		t.Fatalf("changed field not applied: %v", sent["bright"])
	}
	if sent["contrast"] != float64(128) {
		t.Fatalf("unchanged field must be preserved: %v", sent["contrast"])
	}
	if sent["channel"] != float64(0) {
		t.Fatalf("channel missing from payload: %v", sent)
	}
}

func TestSetPushSendsMinimalPayload(t *testing.T) {
	t.Parallel()

	var sent map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cmd") {
		case "Login":
			writeJSON(t, w, loginResponse(testToken))
		case "SetPush":
			body := decodeBody(t, r)
			sent = body[0]["param"].(map[string]any)["Push"].(map[string]any)
			writeJSON(t, w, []map[string]any{{"cmd": "SetPush", "code": 0}})
		case "GetPush":
			t.Fatalf("toggle must not read current config first")
		default:
			t.Fatalf("unexpected cmd: %s", r.URL.Query().Get("cmd"))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if err := client.SetPush(context.Background(), true); err != nil {
		t.Fatalf("set push: %v", err)
	}
	if len(sent) != 2 {
		t.Fatalf("expected channel+enable only, got %v", sent)
	}
	if sent["enable"] != float64(1) || sent["channel"] != float64(0) {
		t.Fatalf("unexpected payload: %v", sent)
	}
}

func TestSetEncMergesStreamConfig(t *testing.T) {
	t.Parallel()

	var sent map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cmd") {
		case "Login":
			writeJSON(t, w, loginResponse(testToken))
		case "GetEnc":
			writeJSON(t, w, valueResponse("GetEnc", map[string]any{
				"Enc": map[string]any{
					"audio": 1,
					"mainStream": map[string]any{
						"bitRate":   4096,
						"frameRate": 25,
						"size":      "3840*2160",
					},
					"subStream": map[string]any{
						"bitRate":   512,
						"frameRate": 10,
						"size":      "640*360",
					},
				},
			}))
		case "SetEnc":
			body := decodeBody(t, r)
			sent = body[0]["param"].(map[string]any)["Enc"].(map[string]any)
			writeJSON(t, w, []map[string]any{{"cmd": "SetEnc", "code": 0}})
		default:
			t.Fatalf("unexpected cmd: %s", r.URL.Query().Get("cmd"))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if err := client.SetEnc(context.Background(), StreamSub, Object{"bitRate": 1024}); err != nil {
		t.Fatalf("set enc: %v", err)
	}
	sub := sent["subStream"].(map[string]any)
	if sub["bitRate"] != float64(1024) {
		t.Fatalf("overlay not applied to sub stream: %v", sub)
	}
	if sub["frameRate"] != float64(10) || sub["size"] != "640*360" {
		t.Fatalf("untouched sub stream fields changed: %v", sub)
	}
	main := sent["mainStream"].(map[string]any)
	if main["bitRate"] != float64(4096) {
		t.Fatalf("main stream must be untouched: %v", main)
	}
}

func TestSetMdAlarmSensitivity(t *testing.T) {
	t.Parallel()

	var sent map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cmd") {
		case "Login":
			writeJSON(t, w, loginResponse(testToken))
		case "GetMdAlarm":
			writeJSON(t, w, valueResponse("GetMdAlarm", map[string]any{
				"MdAlarm": map[string]any{"enable": 1, "type": "md"},
			}))
		case "SetMdAlarm":
			body := decodeBody(t, r)
			sent = body[0]["param"].(map[string]any)["MdAlarm"].(map[string]any)
			writeJSON(t, w, []map[string]any{{"cmd": "SetMdAlarm", "code": 0}})
		default:
			t.Fatalf("unexpected cmd: %s", r.URL.Query().Get("cmd"))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	sens := 75
	if err := client.SetMdAlarm(context.Background(), MdAlarmSettings{Sensitivity: &sens}); err != nil {
		t.Fatalf("set md alarm: %v", err)
	}
	list := sent["sens"].([]any)
	if len(list) != 1 {
		t.Fatalf("expected one sensitivity entry, got %v", list)
	}
	entry := list[0].(map[string]any)
	if entry["id"] != float64(0) || entry["val"] != float64(75) {
		t.Fatalf("unexpected sensitivity entry: %v", entry)
	}
	if sent["enable"] != float64(1) {
		t.Fatalf("existing enable state must be preserved: %v", sent)
	}
}

func TestPlayAudioAlarmTimedMode(t *testing.T) {
	t.Parallel()

	var sent map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cmd") {
		case "Login":
			writeJSON(t, w, loginResponse(testToken))
		case "AudioAlarmPlay":
			body := decodeBody(t, r)
			sent = body[0]["param"].(map[string]any)["AudioAlarmPlay"].(map[string]any)
			writeJSON(t, w, []map[string]any{{"cmd": "AudioAlarmPlay", "code": 0}})
		default:
			t.Fatalf("unexpected cmd: %s", r.URL.Query().Get("cmd"))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	err := client.PlayAudioAlarm(context.Background(), SirenParams{
		Mode:         "times",
		ManualSwitch: 1,
		Duration:     5,
	})
	if err != nil {
		t.Fatalf("play audio alarm: %v", err)
	}
	if sent["alarm_mode"] != "times" || sent["manual_switch"] != float64(1) {
		t.Fatalf("unexpected payload: %v", sent)
	}
	if sent["times"] != float64(5) {
		t.Fatalf("duration not forwarded: %v", sent)
	}
}

func TestPlayAudioAlarmDefaultMode(t *testing.T) {
	t.Parallel()

	var sent map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cmd") {
		case "Login":
			writeJSON(t, w, loginResponse(testToken))
		case "AudioAlarmPlay":
			body := decodeBody(t, r)
			sent = body[0]["param"].(map[string]any)["AudioAlarmPlay"].(map[string]any)
			writeJSON(t, w, []map[string]any{{"cmd": "AudioAlarmPlay", "code": 0}})
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if err := client.PlayAudioAlarm(context.Background(), SirenParams{ManualSwitch: 1}); err != nil {
		t.Fatalf("play audio alarm: %v", err)
	}
	if sent["alarm_mode"] != "manul" {
		t.Fatalf("expected firmware manual mode spelling, got %v", sent["alarm_mode"])
	}
	if _, ok := sent["times"]; ok {
		t.Fatalf("times must be omitted without a duration: %v", sent)
	}
}
