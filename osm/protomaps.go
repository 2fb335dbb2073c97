package osm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const DefaultProtomapsEndpoint = "https://app.protomaps.com"

var ErrStatus = errors.New("unexpected response status")
var ErrJobMalformed = errors.New("malformed extract-job response")
var ErrPollExceeded = errors.New("extract job not ready after polling limit")

//*******************************************
// protomaps client
//*******************************************

// Client for the protomaps extract service. Downloading runs as a
// remote job: submit a bounding box, poll the job until it has been
// cut, fetch the resulting pbf.
type ProtomapsClient struct {
	endpoint   string
	client     *http.Client
	max_polls  int
	poll_delay time.Duration
}

func NewProtomapsClient(endpoint string) *ProtomapsClient {
	if endpoint == "" {
		endpoint = DefaultProtomapsEndpoint
	}
	// the service tracks extract jobs with a session cookie
	jar, _ := cookiejar.New(nil)
	return &ProtomapsClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		client:     &http.Client{Jar: jar},
		max_polls:  90,
		poll_delay: 2 * time.Second,
	}
}

// SetPolling overrides how long DownloadExtract waits for a job.
func (self *ProtomapsClient) SetPolling(max_polls int, poll_delay time.Duration) {
	self.max_polls = max_polls
	self.poll_delay = poll_delay
}

type _Region struct {
	Data []float64 `json:"data"`
	Type string    `json:"type"`
}

type _JobRequest struct {
	Name   string  `json:"name"`
	Region _Region `json:"region"`
}

type _JobState struct {
	UUID     string `json:"uuid"`
	URL      string `json:"url"`
	Complete bool   `json:"complete"`
}

//*******************************************
// extract download
//*******************************************

// DownloadExtract cuts a pbf-extract covering the admin area and
// stores it in out_dir. Returns the path of the downloaded file.
func (self *ProtomapsClient) DownloadExtract(ctx context.Context, area AdminArea, out_dir string) (string, error) {
	job, err := self._SubmitJob(ctx, area)
	if err != nil {
		return "", err
	}
	slog.Info("submitted extract job", "area", area.Name, "uuid", job.UUID)
	job, err = self._AwaitJob(ctx, job)
	if err != nil {
		return "", err
	}
	return self._FetchExtract(ctx, job, area, out_dir)
}

func (self *ProtomapsClient) _SubmitJob(ctx context.Context, area AdminArea) (_JobState, error) {
	// priming request, sets the session cookie
	prime, err := http.NewRequestWithContext(ctx, http.MethodGet, self.endpoint+"/downloads/osm", nil)
	if err != nil {
		return _JobState{}, err
	}
	if resp, err := self.client.Do(prime); err == nil {
		resp.Body.Close()
	}

	body, err := json.Marshal(_JobRequest{
		Name: area.Name,
		Region: _Region{
			Data: area.BoundingBox[:],
			Type: "bbox",
		},
	})
	if err != nil {
		return _JobState{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, self.endpoint+"/downloads/osm", bytes.NewReader(body))
	if err != nil {
		return _JobState{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", self.endpoint+"/")
	req.Header.Set("Origin", self.endpoint)
	resp, err := self.client.Do(req)
	if err != nil {
		return _JobState{}, fmt.Errorf("submitting extract job: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return _JobState{}, fmt.Errorf("submitting extract job: %w: %v", ErrStatus, resp.Status)
	}
	var job _JobState
	err = json.NewDecoder(resp.Body).Decode(&job)
	if err != nil {
		return _JobState{}, fmt.Errorf("submitting extract job: %w", err)
	}
	if _, err := uuid.Parse(job.UUID); err != nil || job.URL == "" {
		return _JobState{}, fmt.Errorf("submitting extract job: %w", ErrJobMalformed)
	}
	return job, nil
}

// Polls the job until the extract has been cut. The number of polls is
// bounded, a job that stays pending longer fails with ErrPollExceeded.
func (self *ProtomapsClient) _AwaitJob(ctx context.Context, job _JobState) (_JobState, error) {
	for poll := 0; poll < self.max_polls; poll++ {
		if poll > 0 {
			select {
			case <-ctx.Done():
				return _JobState{}, ctx.Err()
			case <-time.After(self.poll_delay):
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.URL, nil)
		if err != nil {
			return _JobState{}, err
		}
		req.Header.Set("Referer", self.endpoint+"/")
		resp, err := self.client.Do(req)
		if err != nil {
			return _JobState{}, fmt.Errorf("polling extract job: %w", err)
		}
		var state _JobState
		err = json.NewDecoder(resp.Body).Decode(&state)
		resp.Body.Close()
		if err != nil {
			return _JobState{}, fmt.Errorf("polling extract job: %w", err)
		}
		if state.Complete {
			if _, err := uuid.Parse(state.UUID); err != nil {
				return _JobState{}, fmt.Errorf("polling extract job: %w", ErrJobMalformed)
			}
			return state, nil
		}
	}
	return _JobState{}, fmt.Errorf("polling extract job: %w", ErrPollExceeded)
}

func (self *ProtomapsClient) _FetchExtract(ctx context.Context, job _JobState, area AdminArea, out_dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, self.endpoint+"/downloads/"+job.UUID+"/download", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Referer", self.endpoint+"/")
	resp, err := self.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading extract: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("downloading extract: %w: %v", ErrStatus, resp.Status)
	}

	path := filepath.Join(out_dir, _ExtractFileName(area.Name, job.UUID))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	written, err := io.Copy(file, resp.Body)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("downloading extract: %w", err)
	}
	slog.Info("downloaded extract", "area", area.Name, "file", path, "bytes", written)
	return path, nil
}

func _ExtractFileName(name string, job_uuid string) string {
	cleaned := make([]rune, 0, len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			cleaned = append(cleaned, r)
		case r == ' ':
			cleaned = append(cleaned, '_')
		}
	}
	if len(cleaned) == 0 {
		return job_uuid + ".pbf"
	}
	return string(cleaned) + ".pbf"
}
