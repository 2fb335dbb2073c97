package osm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSearchAdminAreas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("overpass method = %v; want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"Testtown"`) {
			t.Errorf("query without area name: %v", string(body))
		}
		fmt.Fprint(w, `{
			"version": 0.6,
			"generator": "test",
			"elements": [
				{"type": "relation", "id": 1, "tags": {"name": "Testtown", "admin_level": "6"},
				 "bounds": {"minlat": 52.0, "minlon": 9.0, "maxlat": 52.1, "maxlon": 9.2}},
				{"type": "relation", "id": 2, "tags": {"name": "Testtown", "admin_level": "4"},
				 "bounds": {"minlat": 51.0, "minlon": 8.0, "maxlat": 53.0, "maxlon": 10.0}},
				{"type": "node", "id": 3, "tags": {"name": "Testtown"}},
				{"type": "relation", "id": 4, "tags": {"admin_level": "8"}}
			]
		}`)
	}))
	defer server.Close()

	client := NewOverpassClient(server.URL)
	areas, err := client.SearchAdminAreas(context.Background(), "Testtown")
	if err != nil {
		t.Fatalf("SearchAdminAreas() error = %v", err)
	}
	if len(areas) != 2 {
		t.Fatalf("len(areas) = %v; want 2", len(areas))
	}
	// coarsest admin-level first
	if areas[0].AdminLevel != 4 || areas[1].AdminLevel != 6 {
		t.Errorf("admin levels = %v, %v; want 4, 6", areas[0].AdminLevel, areas[1].AdminLevel)
	}
	expected := [4]float64{52.1, 9.2, 52.0, 9.0}
	if areas[1].BoundingBox != expected {
		t.Errorf("BoundingBox = %v; want %v", areas[1].BoundingBox, expected)
	}
}

func TestOverpassStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOverpassClient(server.URL)
	_, err := client.Query(context.Background(), "[out:json];")
	if !errors.Is(err, ErrStatus) {
		t.Errorf("Query() error = %v; want ErrStatus", err)
	}
}

const _TestJobUUID = "123e4567-e89b-12d3-a456-426614174000"
const _TestDownloadUUID = "223e4567-e89b-12d3-a456-426614174000"

func _NewProtomapsTestServer(t *testing.T, polls_until_ready int) (*httptest.Server, *int) {
	poll_count := 0
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/downloads/osm" && r.Method == http.MethodGet:
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/downloads/osm" && r.Method == http.MethodPost:
			if r.Header.Get("Origin") == "" || r.Header.Get("Referer") == "" {
				t.Errorf("job submitted without Origin/Referer headers")
			}
			fmt.Fprintf(w, `{"uuid": "%v", "url": "%v/jobs/%v"}`, _TestJobUUID, server.URL, _TestJobUUID)
		case r.URL.Path == "/jobs/"+_TestJobUUID:
			poll_count += 1
			if poll_count >= polls_until_ready {
				fmt.Fprintf(w, `{"uuid": "%v", "complete": true}`, _TestDownloadUUID)
			} else {
				fmt.Fprint(w, `{"complete": false}`)
			}
		case r.URL.Path == "/downloads/"+_TestDownloadUUID+"/download":
			fmt.Fprint(w, "pbf-bytes")
		default:
			t.Errorf("unexpected request: %v %v", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return server, &poll_count
}

func TestProtomapsDownload(t *testing.T) {
	server, poll_count := _NewProtomapsTestServer(t, 3)
	defer server.Close()

	client := NewProtomapsClient(server.URL)
	client.SetPolling(10, time.Millisecond)
	dir := t.TempDir()
	area := AdminArea{Name: "Test Town", BoundingBox: [4]float64{52.1, 9.2, 52.0, 9.0}}

	path, err := client.DownloadExtract(context.Background(), area, dir)
	if err != nil {
		t.Fatalf("DownloadExtract() error = %v", err)
	}
	if filepath.Base(path) != "test_town.pbf" {
		t.Errorf("extract file = %v; want test_town.pbf", filepath.Base(path))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading extract: %v", err)
	}
	if string(content) != "pbf-bytes" {
		t.Errorf("extract content = %v; want pbf-bytes", string(content))
	}
	if *poll_count != 3 {
		t.Errorf("poll count = %v; want 3", *poll_count)
	}
}

func TestProtomapsPollExceeded(t *testing.T) {
	server, poll_count := _NewProtomapsTestServer(t, 1000)
	defer server.Close()

	client := NewProtomapsClient(server.URL)
	client.SetPolling(3, time.Millisecond)
	area := AdminArea{Name: "Test Town"}

	_, err := client.DownloadExtract(context.Background(), area, t.TempDir())
	if !errors.Is(err, ErrPollExceeded) {
		t.Errorf("DownloadExtract() error = %v; want ErrPollExceeded", err)
	}
	if *poll_count != 3 {
		t.Errorf("poll count = %v; want 3", *poll_count)
	}
}

func TestProtomapsMalformedJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"uuid": "not-a-uuid", "url": "http://localhost/jobs/1"}`)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewProtomapsClient(server.URL)
	_, err := client.DownloadExtract(context.Background(), AdminArea{Name: "x"}, t.TempDir())
	if !errors.Is(err, ErrJobMalformed) {
		t.Errorf("DownloadExtract() error = %v; want ErrJobMalformed", err)
	}
}

func TestProtomapsContextCancel(t *testing.T) {
	server, _ := _NewProtomapsTestServer(t, 1000)
	defer server.Close()

	client := NewProtomapsClient(server.URL)
	client.SetPolling(100, 50*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.DownloadExtract(ctx, AdminArea{Name: "x"}, t.TempDir())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("DownloadExtract() error = %v; want context deadline", err)
	}
}

func TestExtractFileName(t *testing.T) {
	cases := []struct {
		name string
		uuid string
		file string
	}{
		{"Test Town", "u1", "test_town.pbf"},
		{"Hannover", "u1", "hannover.pbf"},
		{"", "u1", "u1.pbf"},
		{"??", "u2", "u2.pbf"},
	}
	for _, c := range cases {
		file := _ExtractFileName(c.name, c.uuid)
		if file != c.file {
			t.Errorf("_ExtractFileName(%v) = %v; want %v", c.name, file, c.file)
		}
	}
}
