package api

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/hfinspect/pkg/hfile"
)

// ErrorBody is the payload of every non-2xx response.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request", msg)
}

func writeError(c *echo.Context, status int, kind, msg string) error {
	return c.JSON(status, map[string]any{
		"error": ErrorBody{Kind: kind, Message: msg},
	})
}

func writeTrailerError(c *echo.Context, err error) error {
	kind, ok := hfile.KindOf(err)
	if !ok {
		return writeError(c, http.StatusInternalServerError, "internal", err.Error())
	}
	return writeError(c, statusForKind(kind), kind.String(), err.Error())
}

func statusForKind(kind hfile.Kind) int {
	switch kind {
	case hfile.KindMissingFile:
		return http.StatusNotFound
	case hfile.KindInvalidTrailer, hfile.KindInvalidMajorVersion, hfile.KindDecode:
		return http.StatusUnprocessableEntity
	case hfile.KindUnsupportedFile:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}
