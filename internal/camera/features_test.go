package camera

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStorageInfoUnwrapsList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cmd") == "Login" {
			writeJSON(t, w, loginResponse(testToken))
			return
		}
		writeJSON(t, w, valueResponse("GetHddInfo", map[string]any{
			"HddInfo": []any{
				map[string]any{"number": 0, "capacity": 30495, "format": 1},
			},
		}))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	disks, err := client.StorageInfo(context.Background())
	if err != nil {
		t.Fatalf("storage info: %v", err)
	}
	if len(disks) != 1 {
		t.Fatalf("expected one disk, got %d", len(disks))
	}
	if disks[0]["capacity"] != float64(30495) {
		t.Fatalf("unexpected capacity: %v", disks[0]["capacity"])
	}
}

func TestWifiSignal(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cmd") == "Login" {
			writeJSON(t, w, loginResponse(testToken))
			return
		}
		writeJSON(t, w, valueResponse("GetWifiSignal", map[string]any{"wifiSignal": 3}))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	signal, err := client.WifiSignal(context.Background())
	if err != nil {
		t.Fatalf("wifi signal: %v", err)
	}
	if signal != 3 {
		t.Fatalf("unexpected signal: %d", signal)
	}
}

func TestAbilitySendsUserName(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cmd") == "Login" {
			writeJSON(t, w, loginResponse(testToken))
			return
		}
		body := decodeBody(t, r)
		user := body[0]["param"].(map[string]any)["User"].(map[string]any)
		if user["userName"] != "admin" {
			t.Fatalf("unexpected user name: %v", user)
		}
		writeJSON(t, w, valueResponse("GetAbility", map[string]any{
			"Ability": map[string]any{"scheduleVersion": map[string]any{"ver": 1}},
		}))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ability, err := client.Ability(context.Background())
	if err != nil {
		t.Fatalf("ability: %v", err)
	}
	if _, ok := ability["scheduleVersion"]; !ok {
		t.Fatalf("unexpected ability: %v", ability)
	}
}

func TestBatteryInfoUnsupported(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cmd") == "Login" {
			writeJSON(t, w, loginResponse(testToken))
			return
		}
		writeJSON(t, w, errorResponse("GetBatteryInfo", -9, "not exist"))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.BatteryInfo(context.Background())
	if !IsUnsupported(err) {
		t.Fatalf("expected unsupported error, got %v", err)
	}
}

func TestAddUser(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cmd") {
		case "Login":
			writeJSON(t, w, loginResponse(testToken))
		case "AddUser":
			body := decodeBody(t, r)
			if body[0]["action"] != float64(1) {
				t.Fatalf("expected set action, got %v", body[0]["action"])
			}
			user := body[0]["param"].(map[string]any)["User"].(map[string]any)
			if user["userName"] != "viewer" || user["level"] != "guest" {
				t.Fatalf("unexpected user payload: %v", user)
			}
			writeJSON(t, w, []map[string]any{{"cmd": "AddUser", "code": 0}})
		default:
			t.Fatalf("unexpected cmd: %s", r.URL.Query().Get("cmd"))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if err := client.AddUser(context.Background(), "viewer", "pass123", "guest"); err != nil {
		t.Fatalf("add user: %v", err)
	}
}
