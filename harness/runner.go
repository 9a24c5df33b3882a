package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/tidwall/gjson"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/lingualearn/api-contract-tests/framework"
)

const maxExcerptLen = 200

// Runner executes scenarios against the backend described by a RunConfig. It is
// stateless across scenarios except for the captured-body store that serves
// explicitly declared derivations.
type Runner struct {
	config     RunConfig
	httpClient *http.Client
	logger     framework.Logger
	captured   map[string][]byte
}

func NewRunner(config RunConfig, logger framework.Logger) *Runner {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Runner{
		config:     config,
		httpClient: http.DefaultClient,
		logger:     logger,
		captured:   make(map[string][]byte),
	}
}

func (r *Runner) Config() RunConfig { return r.config }

// SetLogger redirects the runner's debug output, normally to the capturing
// logger of the test that is executing a scenario.
func (r *Runner) SetLogger(logger framework.Logger) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	r.logger = logger
}

// CapturedField evaluates a gjson path against the body captured under the named
// scenario. It reports false if the scenario captured nothing or the path does
// not resolve to a non-empty value.
func (r *Runner) CapturedField(scenario, path string) (string, bool) {
	body, ok := r.captured[scenario]
	if !ok {
		return "", false
	}
	result := gjson.GetBytes(body, path)
	if !result.Exists() || result.String() == "" {
		return "", false
	}
	return result.String(), true
}

// Execute runs a single scenario: resolves its derivations, sends the request
// with the configured per-request timeout, and checks the response against the
// scenario's status and shape contract. Failures are classified by FailureKind;
// they never panic and never abort the run.
func (r *Runner) Execute(ctx context.Context, s Scenario) ScenarioResult {
	params, err := r.resolveParams(s)
	if err != nil {
		return fail(s.Name, PrecursorFailure, err.Error())
	}

	path, err := resolvePath(s.Path, params)
	if err != nil {
		return fail(s.Name, PrecursorFailure, err.Error())
	}

	reqURL := r.config.BaseURL + path
	if len(s.Query) > 0 {
		reqURL += "?" + s.Query.Encode()
	}

	var bodyData []byte
	var contentType string
	if s.Body != nil {
		bodyData, contentType, err = s.Body.build()
		if err != nil {
			return fail(s.Name, TransportFailure, err.Error())
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, s.Method, reqURL, bytes.NewReader(bodyData))
	if err != nil {
		return fail(s.Name, TransportFailure, fmt.Sprintf("could not build request: %s", err))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	r.logger.Printf("%s %s", s.Method, reqURL)
	if len(bodyData) > 0 && contentType == "application/json" {
		r.logger.Printf("request body: %s", string(bodyData))
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fail(s.Name, TransportFailure, transportReason(err, r.config))
	}

	var respBody []byte
	if resp.Body != nil {
		respBody, err = ioutil.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fail(s.Name, TransportFailure, fmt.Sprintf("could not read response body: %s", err))
		}
	}
	r.logger.Printf("response status %d, body: %s", resp.StatusCode, bodyExcerpt(respBody))

	if s.CaptureBody {
		r.captured[s.Name] = respBody
	}

	if !s.Status.Matches(resp.StatusCode) {
		result := fail(s.Name, ContractViolation,
			fmt.Sprintf("expected status %s but got %d", s.Status.Describe(), resp.StatusCode))
		result.Status = resp.StatusCode
		result.Excerpt = bodyExcerpt(respBody)
		return result
	}

	if s.Shape != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var decoded ldvalue.Value
		if err := json.Unmarshal(respBody, &decoded); err != nil {
			result := fail(s.Name, MalformedBody,
				fmt.Sprintf("response body is not valid JSON: %s", err))
			result.Status = resp.StatusCode
			result.Excerpt = bodyExcerpt(respBody)
			return result
		}
		if err := s.Shape.Check(decoded); err != nil {
			result := fail(s.Name, ContractViolation, fmt.Sprintf("response shape: %s", err))
			result.Status = resp.StatusCode
			result.Excerpt = bodyExcerpt(respBody)
			return result
		}
	}

	result := pass(s.Name, resp.StatusCode, bodyExcerpt(respBody))
	if s.Status.Ambiguous() {
		result.Note = fmt.Sprintf("backend returned %d; the contract tolerates %s (genuinely ambiguous behavior, flagged rather than resolved)",
			resp.StatusCode, s.Status.Describe())
	}
	return result
}

func (r *Runner) resolveParams(s Scenario) (map[string]string, error) {
	params := make(map[string]string, len(s.PathParams)+len(s.Derivations))
	for name, value := range s.PathParams {
		params[name] = value
	}
	for _, d := range s.Derivations {
		body, ok := r.captured[d.FromScenario]
		if !ok {
			return nil, fmt.Errorf("scenario %q did not capture a response to derive %q from", d.FromScenario, d.Param)
		}
		result := gjson.GetBytes(body, d.Path)
		if !result.Exists() || result.String() == "" {
			return nil, fmt.Errorf("scenario %q response has no value at %q to derive %q from", d.FromScenario, d.Path, d.Param)
		}
		params[d.Param] = result.String()
	}
	return params, nil
}

func transportReason(err error, config RunConfig) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("request timed out after %s", config.Timeout)
	case errors.Is(err, context.Canceled):
		return "request was cancelled"
	default:
		return fmt.Sprintf("could not reach endpoint: %s", err)
	}
}

func bodyExcerpt(body []byte) string {
	if len(body) > maxExcerptLen {
		return string(body[:maxExcerptLen]) + "..."
	}
	return string(body)
}
