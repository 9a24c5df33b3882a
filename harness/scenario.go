package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/lingualearn/api-contract-tests/shape"
)

// Scenario is one independent contract check against one endpoint. Scenarios are
// immutable once defined: they are declared at startup, executed once, and
// discarded.
type Scenario struct {
	// Name identifies the scenario. Captured response bodies are stored under
	// this name for use by later scenarios' derivations.
	Name string

	Method string

	// Path is the endpoint path, which may contain {param} placeholders filled
	// from PathParams or Derivations.
	Path string

	PathParams map[string]string

	Query url.Values

	Body RequestBody

	// Status is the accepted-status predicate. The zero value means "exactly 200".
	Status StatusCheck

	// Shape, if non-nil, is checked against the decoded JSON body whenever the
	// response status is a success (2xx).
	Shape shape.Shape

	// Derivations declare path parameters sourced from prior scenarios' captured
	// bodies. A scenario whose derivation cannot be satisfied fails with
	// PrecursorFailure rather than sending any request.
	Derivations []Derivation

	// CaptureBody stores the raw response body under Name so that later
	// scenarios can derive values from it.
	CaptureBody bool
}

// Derivation names a path parameter whose value comes from a prior scenario's
// response: the gjson path Path is evaluated against the body captured under
// FromScenario.
type Derivation struct {
	Param        string
	FromScenario string
	Path         string
}

// StatusCheck is a predicate over a response status code. Construct one with
// Status, StatusIn, StatusRange, StatusNot, StatusBelow or StatusAtLeast.
type StatusCheck struct {
	accept    func(int) bool
	desc      string
	ambiguous bool
}

func (s StatusCheck) IsDefined() bool { return s.accept != nil }

func (s StatusCheck) Matches(code int) bool {
	if s.accept == nil {
		return code == 200
	}
	return s.accept(code)
}

// Ambiguous reports whether the predicate accepts more than one distinct
// outcome because the backend's behavior is genuinely unspecified. Passing
// scenarios with ambiguous predicates are flagged in the report.
func (s StatusCheck) Ambiguous() bool { return s.ambiguous }

func (s StatusCheck) Describe() string {
	if s.accept == nil {
		return "200"
	}
	return s.desc
}

// Status accepts exactly the given code.
func Status(code int) StatusCheck {
	return StatusCheck{
		accept: func(c int) bool { return c == code },
		desc:   strconv.Itoa(code),
	}
}

// MarkAmbiguous flags this predicate as tolerating genuinely unspecified backend
// behavior. A passing scenario with an ambiguous predicate is noted in the
// report, recording which of the accepted outcomes was actually observed.
func (s StatusCheck) MarkAmbiguous() StatusCheck {
	s.ambiguous = true
	return s
}

// StatusIn accepts any of the given codes.
func StatusIn(codes ...int) StatusCheck {
	sorted := append([]int(nil), codes...)
	sort.Ints(sorted)
	var ss []string
	for _, c := range sorted {
		ss = append(ss, strconv.Itoa(c))
	}
	return StatusCheck{
		accept: func(c int) bool {
			for _, want := range sorted {
				if c == want {
					return true
				}
			}
			return false
		},
		desc: "one of {" + strings.Join(ss, ", ") + "}",
	}
}

// StatusRange accepts any code in the half-open range [lo, hi), e.g.
// StatusRange(400, 500) for any client error.
func StatusRange(lo, hi int) StatusCheck {
	return StatusCheck{
		accept: func(c int) bool { return c >= lo && c < hi },
		desc:   fmt.Sprintf("in [%d, %d)", lo, hi),
	}
}

// StatusNot accepts any code other than the given one.
func StatusNot(code int) StatusCheck {
	return StatusCheck{
		accept: func(c int) bool { return c != code },
		desc:   fmt.Sprintf("anything but %d", code),
	}
}

// StatusBelow accepts any code lower than the given one, e.g. StatusBelow(500)
// for "anything except a server error".
func StatusBelow(code int) StatusCheck {
	return StatusCheck{
		accept: func(c int) bool { return c < code },
		desc:   fmt.Sprintf("below %d", code),
	}
}

// StatusAtLeast accepts any code greater than or equal to the given one, e.g.
// StatusAtLeast(400) for "any error response".
func StatusAtLeast(code int) StatusCheck {
	return StatusCheck{
		accept: func(c int) bool { return c >= code },
		desc:   fmt.Sprintf("at least %d", code),
	}
}

// RequestBody is the payload of a scenario's request.
type RequestBody interface {
	// build returns the encoded body and its Content-Type header value.
	build() ([]byte, string, error)
}

type jsonBody struct {
	value interface{}
}

func (b jsonBody) build() ([]byte, string, error) {
	data, err := json.Marshal(b.value)
	if err != nil {
		return nil, "", fmt.Errorf("could not encode request body: %w", err)
	}
	return data, "application/json", nil
}

// JSONBody encodes the given value as a JSON request body.
func JSONBody(value interface{}) RequestBody { return jsonBody{value} }

// MultipartFile is a single file uploaded as a multipart/form-data body, as the
// speech-recognition endpoint expects.
type MultipartFile struct {
	Field       string
	FileName    string
	ContentType string
	Content     []byte
}

func (b MultipartFile) build() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, b.Field, b.FileName))
	h.Set("Content-Type", b.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("could not build multipart body: %w", err)
	}
	if _, err := part.Write(b.Content); err != nil {
		return nil, "", fmt.Errorf("could not build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("could not build multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// EmptyMultipart is a multipart/form-data body with no parts, for checking how
// the backend handles a missing file upload.
type EmptyMultipart struct{}

func (b EmptyMultipart) build() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("could not build multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// resolvePath expands {param} placeholders in the path template. It returns an
// error naming the first placeholder that has no value.
func resolvePath(template string, params map[string]string) (string, error) {
	result := template
	for name, value := range params {
		result = strings.ReplaceAll(result, "{"+name+"}", url.PathEscape(value))
	}
	if start := strings.Index(result, "{"); start >= 0 {
		if end := strings.Index(result[start:], "}"); end > 0 {
			return "", fmt.Errorf("path parameter %s was never resolved", result[start:start+end+1])
		}
	}
	return result, nil
}
