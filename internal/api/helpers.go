package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/riff/pkg/riff"
)

const headerRequestID = "X-Request-Id"

func newRequestID(c *echo.Context) string {
	id := "req_" + uuid.NewString()
	c.Response().Header().Set(headerRequestID, id)
	return id
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res.WriteHeader(status)
	_, err = res.Write(b)
	return err
}

func writeBytes(c *echo.Context, status int, b []byte) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEOctetStream)
	res.WriteHeader(status)
	_, err := res.Write(b)
	return err
}

func writeError(c *echo.Context, status int, errType, msg, param, requestID string) error {
	return writeJSON(c, status, errorEnvelope{Error: ResponseError{
		Message:   msg,
		Type:      errType,
		Param:     param,
		RequestID: requestID,
	}})
}

// writeChunkError maps chunk engine errors onto HTTP statuses.
func writeChunkError(c *echo.Context, err error, requestID string) error {
	param := errorParam(err)
	switch {
	case errors.Is(err, riff.ErrChunkNotFound):
		return writeError(c, http.StatusNotFound, "not_found_error", err.Error(), param, requestID)
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, riff.ErrInvalidPath),
		errors.Is(err, riff.ErrNoParent),
		errors.Is(err, riff.ErrNotRoot):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), param, requestID)
	case errors.Is(err, riff.ErrCorruptChunk),
		errors.Is(err, io.ErrUnexpectedEOF):
		return writeError(c, http.StatusUnprocessableEntity, "corrupt_chunk_error", err.Error(), param, requestID)
	default:
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), param, requestID)
	}
}

// readBody reads the request body, refusing bodies larger than limit.
func readBody(c *echo.Context, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, errBodyTooLarge
	}
	return body, nil
}

var errBodyTooLarge = errors.New("request body too large")
