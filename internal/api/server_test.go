package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/riff/pkg/riff"
)

func testFile(t *testing.T) []byte {
	t.Helper()
	root := riff.NewRIFF(riff.MustFourCC("WAVE"),
		riff.NewRawChunk(riff.MustFourCC("fmt "), []byte{1, 2, 3, 4}),
		riff.NewList(riff.MustFourCC("INFO"),
			riff.NewRawChunk(riff.MustFourCC("INAM"), []byte("abc")),
		),
		riff.NewRawChunk(riff.MustFourCC("data"), []byte{0xAA, 0xBB}),
	)
	var buf bytes.Buffer
	_, err := riff.Write(&buf, root)
	require.NoError(t, err)
	return buf.Bytes()
}

// deepFile nests one more LIST than the parser accepts.
func deepFile(t *testing.T) []byte {
	t.Helper()
	c := riff.NewList(riff.MustFourCC("deep"))
	for range riff.MaxDepth - 1 {
		c = riff.NewList(riff.MustFourCC("deep"), c)
	}
	var buf bytes.Buffer
	_, err := riff.Write(&buf, riff.NewRIFF(riff.MustFourCC("WAVE"), c))
	require.NoError(t, err)
	return buf.Bytes()
}

func newTestEcho(cfg Config) *echo.Echo {
	e := echo.New()
	NewServer(cfg).Register(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEOctetStream)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ResponseError {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestEcho(Config{}), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestInspect(t *testing.T) {
	t.Parallel()

	file := testFile(t)
	rec := do(t, newTestEcho(Config{}), http.MethodPost, "/v1/inspect", file)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	reqID := rec.Header().Get(headerRequestID)
	assert.True(t, strings.HasPrefix(reqID, "req_"))

	var resp InspectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, reqID, resp.ID)
	assert.Equal(t, "riff.tree", resp.Object)
	assert.Equal(t, len(file), resp.Bytes)

	tree := resp.Tree
	require.NotNil(t, tree)
	assert.Equal(t, "RIFF", tree.ID)
	assert.Equal(t, "WAVE", tree.ListType)
	assert.EqualValues(t, len(file)-riff.HeaderSize, tree.Size)
	require.Len(t, tree.Children, 3)
	assert.Equal(t, "fmt ", tree.Children[0].ID)
	assert.Nil(t, tree.Children[0].Data)
	assert.Equal(t, "INFO", tree.Children[1].ListType)
	require.Len(t, tree.Children[1].Children, 1)
	assert.Equal(t, "INAM", tree.Children[1].Children[0].ID)
	assert.EqualValues(t, 1, tree.Children[1].Children[0].Padding)
}

func TestInspectWithData(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestEcho(Config{}), http.MethodPost, "/v1/inspect?data=true&max_data=3", testFile(t))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp InspectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Tree.Children[0].Data, "fmt payload exceeds max_data")
	assert.Equal(t, []byte("abc"), resp.Tree.Children[1].Children[0].Data)
	assert.Equal(t, []byte{0xAA, 0xBB}, resp.Tree.Children[2].Data)
}

func TestInspectErrors(t *testing.T) {
	t.Parallel()

	file := testFile(t)
	truncated := file[:len(file)-4]
	notRoot := append([]byte("JUNK"), file[4:]...)

	tests := []struct {
		name   string
		target string
		body   []byte
		cfg    Config
		status int
		typ    string
		param  string
	}{
		{name: "truncated", target: "/v1/inspect", body: truncated, status: http.StatusUnprocessableEntity, typ: "corrupt_chunk_error"},
		{name: "not root", target: "/v1/inspect", body: notRoot, status: http.StatusBadRequest, typ: "invalid_request_error"},
		{name: "nested too deep", target: "/v1/inspect", body: deepFile(t), status: http.StatusUnprocessableEntity, typ: "corrupt_chunk_error"},
		{name: "empty", target: "/v1/inspect", body: nil, status: http.StatusUnprocessableEntity, typ: "corrupt_chunk_error"},
		{name: "bad data flag", target: "/v1/inspect?data=maybe", body: file, status: http.StatusBadRequest, typ: "invalid_request_error", param: "data"},
		{name: "bad max_data", target: "/v1/inspect?max_data=-1", body: file, status: http.StatusBadRequest, typ: "invalid_request_error", param: "max_data"},
		{name: "too large", target: "/v1/inspect", body: file, cfg: Config{MaxBodyBytes: 16}, status: http.StatusRequestEntityTooLarge, typ: "invalid_request_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, newTestEcho(tt.cfg), http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			re := decodeError(t, rec)
			assert.Equal(t, tt.typ, re.Type)
			assert.Equal(t, tt.param, re.Param)
			assert.Equal(t, rec.Header().Get(headerRequestID), re.RequestID)
		})
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	e := newTestEcho(Config{})
	file := testFile(t)

	rec := do(t, e, http.MethodPost, `/v1/extract?path=LIST-INFO%5CINAM`, file)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, echo.MIMEOctetStream, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "abc", rec.Body.String())

	rec = do(t, e, http.MethodPost, "/v1/extract?path=data", file)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte{0xAA, 0xBB}, rec.Body.Bytes())
}

func TestExtractErrors(t *testing.T) {
	t.Parallel()

	e := newTestEcho(Config{})
	file := testFile(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{name: "missing path", target: "/v1/extract", status: http.StatusBadRequest},
		{name: "bad path", target: "/v1/extract?path=AB", status: http.StatusBadRequest},
		{name: "not found", target: "/v1/extract?path=LIST-INFO%7CISFT", status: http.StatusNotFound},
		{name: "list chunk", target: "/v1/extract?path=LIST-INFO", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, e, http.MethodPost, tt.target, file)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			re := decodeError(t, rec)
			assert.Equal(t, "path", re.Param)
			assert.Contains(t, re.Message, `query parameter "path"`)
		})
	}
}
