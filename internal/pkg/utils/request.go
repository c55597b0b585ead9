package utils

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"wellness-availability-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// DecodeJSONBody decodes a size-limited request body into dst.
func DecodeJSONBody(r *http.Request, dst interface{}, limitInMegabyte int) error {
	body := http.MaxBytesReader(nil, r.Body, int64(limitInMegabyte)<<20)
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return exceptions.ErrCannotParseJSON(errors.New("empty request body"))
		}
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

// QueryInt reads an integer query parameter, falling back to defaultValue when
// absent. A present but malformed value is an error.
func QueryInt(r *http.Request, key string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, exceptions.ErrQueryParamInvalid(err, key)
	}
	return value, nil
}
