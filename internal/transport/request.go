package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/agentstation/refselect/pkg/errors"
	"github.com/agentstation/refselect/pkg/logging"
)

// BuildURL joins base and a path template, replacing {id} with id and
// appending params.
func BuildURL(base, pathTemplate, id string, params url.Values) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", errors.NewValidationError("base_url", base, err.Error())
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.NewValidationError("base_url", base, "must be an absolute URL")
	}

	path := strings.ReplaceAll(pathTemplate, "{id}", id)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u.Path += path

	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}

// DecodeResponse decodes a JSON response into the target structure.
// Non-200 responses become an APIError for service.
func DecodeResponse(resp *http.Response, service string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := errors.NewAPIError(service, resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.Endpoint = resp.Request.URL.String()
		}
		return apiErr
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}
