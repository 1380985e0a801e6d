package exp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Submission is the payload handed to the external trainer: the algorithm
// to run, the registered environment, the training configuration with the
// experiment embedded verbatim for replay, and the trial launch settings.
type Submission struct {
	Tag        string           `json:"exp_tag"`
	Run        string           `json:"run"`
	Env        string           `json:"env"`
	Config     TrainingConfig   `json:"config"`
	MultiAgent MultiAgentConfig `json:"multiagent"`
	FlowParams json.RawMessage  `json:"flow_params"`
	Launch     LaunchConfig     `json:"launch"`
}

// NewSubmission builds the trainer payload for an assembled experiment.
func NewSubmission(e *Experiment, launch LaunchConfig) (*Submission, error) {
	flowJSON, err := e.MarshalIndentJSON()
	if err != nil {
		return nil, fmt.Errorf("serializing experiment for replay: %w", err)
	}
	return &Submission{
		Tag:        e.Tag,
		Run:        AlgRun,
		Env:        e.GymName(),
		Config:     e.Training,
		MultiAgent: e.MultiAgent,
		FlowParams: flowJSON,
		Launch:     launch,
	}, nil
}

// Launcher hands a submission to an external trainer. The trainer owns
// everything past this boundary, including the failure budget.
type Launcher interface {
	Submit(ctx context.Context, sub *Submission) error
}

// HTTPLauncher submits experiments to a trainer head node over HTTP.
type HTTPLauncher struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPLauncher creates a launcher for the given trainer endpoint.
func NewHTTPLauncher(baseURL string) *HTTPLauncher {
	return &HTTPLauncher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Submit posts the submission to the trainer. Single-shot and
// synchronous: a transport error or non-2xx status is returned to the
// caller, with no retry here.
func (l *HTTPLauncher) Submit(ctx context.Context, sub *Submission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/experiments", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submitting experiment %s: %w", sub.Tag, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("trainer rejected experiment %s: status %d: %s", sub.Tag, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
