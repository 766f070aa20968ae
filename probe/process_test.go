package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"apiprobe/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	Method  string
	Path    string
	Payload any
}

// scriptedDoer replies with canned bodies keyed by "METHOD path".
type scriptedDoer struct {
	calls   []call
	replies map[string]string
	status  map[string]int
	fail    map[string]error
}

func (d *scriptedDoer) Do(_ context.Context, method, path string, payload any) (*backend.Response, error) {
	d.calls = append(d.calls, call{Method: method, Path: path, Payload: payload})
	key := method + " " + path
	if err := d.fail[key]; err != nil {
		return nil, err
	}
	status := http.StatusOK
	if s, ok := d.status[key]; ok {
		status = s
	}
	body, ok := d.replies[key]
	if !ok {
		body = `{}`
	}
	return &backend.Response{StatusCode: status, Body: []byte(body)}, nil
}

func testFixture() Fixture {
	return Fixture{
		FullName:      "John Scientist",
		Email:         "john@example.com",
		Password:      "secure123",
		StructureName: "Water Molecule",
	}
}

func happyReplies() map[string]string {
	return map[string]string{
		"POST /api/register":                             `{"message":"User registered successfully"}`,
		"POST /api/login":                                `{"user":{"email":"john@example.com","fullName":"John Scientist"}}`,
		"GET /api/user/john@example.com":                 `{"email":"john@example.com","fullName":"John Scientist"}`,
		"POST /api/user/john@example.com/save-structure": `{"structure":{"id":12,"name":"Water Molecule"}}`,
		"GET /api/user/john@example.com/structures":      `{"structures":[{"name":"Water","data":{"nodes":[{},{},{}]}},{"name":"Empty"}]}`,
	}
}

func TestRunHappyPath(t *testing.T) {
	d := &scriptedDoer{replies: happyReplies(), status: map[string]int{"POST /api/register": http.StatusCreated}}
	var out bytes.Buffer

	res := NewRunner(d, &out).Run(context.Background(), Plan(testFixture()))
	require.NoError(t, res.Err)
	assert.Equal(t, 5, res.Calls)
	assert.Equal(t, 5, res.Completed)

	want := "\n🌐 Testing API Endpoints...\n\n" +
		"1️⃣ Testing Registration API...\n" +
		"   Status: 201\n" +
		"   Response: {\"message\":\"User registered successfully\"}\n\n" +
		"2️⃣ Testing Login API...\n" +
		"   Status: 200\n" +
		"   User: john@example.com - John Scientist\n\n" +
		"3️⃣ Testing User Profile API...\n" +
		"   Status: 200\n" +
		"   User: john@example.com - John Scientist\n\n" +
		"4️⃣ Testing Save Structure API...\n" +
		"   Status: 200\n" +
		"   Structure: Water Molecule (ID: 12)\n\n" +
		"5️⃣ Testing Get Structures API...\n" +
		"   Status: 200\n" +
		"   Total Structures: 2\n" +
		"   [1] Water (3 nodes)\n" +
		"   [2] Empty (0 nodes)\n\n" +
		"✅ All API tests passed!\n\n"
	assert.Equal(t, want, out.String())
}

func TestRunCallOrder(t *testing.T) {
	d := &scriptedDoer{replies: happyReplies()}
	NewRunner(d, io.Discard).Run(context.Background(), Plan(testFixture()))

	require.Len(t, d.calls, 5)
	got := make([]string, 0, len(d.calls))
	for _, c := range d.calls {
		got = append(got, c.Method+" "+c.Path)
	}
	assert.Equal(t, []string{
		"POST /api/register",
		"POST /api/login",
		"GET /api/user/john@example.com",
		"POST /api/user/john@example.com/save-structure",
		"GET /api/user/john@example.com/structures",
	}, got)

	assert.Equal(t, RegisterPayload{FullName: "John Scientist", Email: "john@example.com", Password: "secure123"}, d.calls[0].Payload)
	assert.Equal(t, LoginPayload{Email: "john@example.com", Password: "secure123"}, d.calls[1].Payload)
	assert.Nil(t, d.calls[2].Payload)
	sp, ok := d.calls[3].Payload.(StructurePayload)
	require.True(t, ok)
	assert.Equal(t, "Water Molecule", sp.Name)
	assert.Len(t, sp.Nodes, 3)
	assert.Len(t, sp.Bonds, 2)
	assert.Nil(t, d.calls[4].Payload)
}

func TestRunStopsOnFirstFailure(t *testing.T) {
	d := &scriptedDoer{
		replies: happyReplies(),
		fail:    map[string]error{"POST /api/login": errors.New("connection refused")},
	}
	var out bytes.Buffer

	res := NewRunner(d, &out).Run(context.Background(), Plan(testFixture()))
	var se *StepError
	require.ErrorAs(t, res.Err, &se)
	assert.Equal(t, "login", se.Step)
	assert.Equal(t, 2, res.Calls)
	assert.Equal(t, 1, res.Completed)
	assert.Len(t, d.calls, 2)

	s := out.String()
	assert.Equal(t, 1, strings.Count(s, "❌ Error:"))
	assert.Contains(t, s, "❌ Error: login: connection refused\n")
	assert.NotContains(t, s, "Testing User Profile API")
	assert.NotContains(t, s, "All API tests passed")
}

func TestRunNon2xxIsData(t *testing.T) {
	replies := happyReplies()
	replies["POST /api/register"] = `{"error":"User already exists"}`
	d := &scriptedDoer{replies: replies, status: map[string]int{"POST /api/register": http.StatusConflict}}
	var out bytes.Buffer

	res := NewRunner(d, &out).Run(context.Background(), Plan(testFixture()))
	require.NoError(t, res.Err)
	assert.Contains(t, out.String(), "   Status: 409\n   Response: {\"error\":\"User already exists\"}\n")
}

func TestRunMissingFieldsRenderEmpty(t *testing.T) {
	replies := happyReplies()
	replies["POST /api/login"] = `{"error":"Invalid credentials"}`
	replies["POST /api/user/john@example.com/save-structure"] = `{}`
	d := &scriptedDoer{replies: replies}
	var out bytes.Buffer

	res := NewRunner(d, &out).Run(context.Background(), Plan(testFixture()))
	require.NoError(t, res.Err)
	assert.Contains(t, out.String(), "   User:  - \n")
	assert.Contains(t, out.String(), "   Structure:  (ID: )\n")
}

func TestRunEmptyStructures(t *testing.T) {
	replies := happyReplies()
	replies["GET /api/user/john@example.com/structures"] = `{"structures": []}`
	var out bytes.Buffer

	res := NewRunner(&scriptedDoer{replies: replies}, &out).Run(context.Background(), Plan(testFixture()))
	require.NoError(t, res.Err)
	assert.Contains(t, out.String(), "   Total Structures: 0\n\n✅")
	assert.NotContains(t, out.String(), "   [1]")
}

func TestRunMalformedJSONAborts(t *testing.T) {
	replies := happyReplies()
	replies["GET /api/user/john@example.com"] = `<!doctype html><title>404</title>`
	d := &scriptedDoer{replies: replies}
	var out bytes.Buffer

	res := NewRunner(d, &out).Run(context.Background(), Plan(testFixture()))
	require.Error(t, res.Err)
	assert.Equal(t, 3, res.Calls)
	assert.Contains(t, out.String(), "❌ Error: get-profile: invalid JSON response")
}

func TestRunWrongTypeAborts(t *testing.T) {
	replies := happyReplies()
	replies["POST /api/login"] = `{"user":"john"}`
	d := &scriptedDoer{replies: replies}
	var out bytes.Buffer

	res := NewRunner(d, &out).Run(context.Background(), Plan(testFixture()))
	var fe *FieldError
	require.ErrorAs(t, res.Err, &fe)
	assert.Len(t, d.calls, 2)
	assert.Contains(t, out.String(), `❌ Error: login: field "user": expected object, got string`)
}

func TestRunRecoversRenderPanic(t *testing.T) {
	steps := []Step{{
		Name:   "boom",
		Marker: "1️⃣",
		Title:  "Testing Boom API...",
		Method: http.MethodGet,
		Path:   "/boom",
		Render: func(io.Writer, any) error { panic("unexpected") },
	}}
	var out bytes.Buffer

	res := NewRunner(&scriptedDoer{}, &out).Run(context.Background(), steps)
	assert.EqualError(t, res.Err, "boom: panic: unexpected")
	assert.Contains(t, out.String(), "❌ Error: boom: panic: unexpected\n")
}

func TestRunAgainstUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	var out bytes.Buffer
	res := NewRunner(backend.NewBackendClient(base, time.Second), &out).Run(context.Background(), Plan(testFixture()))
	require.Error(t, res.Err)
	assert.Equal(t, 1, res.Calls)
	assert.Equal(t, 1, strings.Count(out.String(), "❌ Error: register: "))
	assert.Equal(t, "\n🌐 Testing API Endpoints...\n\n1️⃣ Testing Registration API...\n", out.String()[:strings.Index(out.String(), "❌")])
}

func TestRunOverHTTP(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPost {
			var m map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/user/john@example.com/structures" {
			_, _ = w.Write([]byte(`{"structures":[{"name":"Water","data":{"nodes":[{},{},{}]}}]}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	res := NewRunner(backend.NewBackendClient(srv.URL, time.Second), &out).Run(context.Background(), Plan(testFixture()))
	require.NoError(t, res.Err)
	assert.Len(t, paths, 5)
	assert.Contains(t, out.String(), "   [1] Water (3 nodes)\n")
}
