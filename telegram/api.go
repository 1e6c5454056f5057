// Copyright (c) 2024 edgegram

package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/fatih/structtag"
	"github.com/pkg/errors"
)

// DefaultAPIURL is the Bot API endpoint; override via ClientConfig.APIURL for
// local Bot API servers or test doubles.
const DefaultAPIURL = "https://api.telegram.org"

type apiResponse struct {
	Ok          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *responseParameters `json:"parameters,omitempty"`
}

type responseParameters struct {
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
	RetryAfter      int   `json:"retry_after,omitempty"`
}

// Raw performs one Bot API call: method name and params in, decoded result
// out. A not-ok response surfaces as *APIError. There is no retry here; the
// caller owns backoff policy.
func (c *Client) Raw(ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: encoding params", method)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: building request", method)
	}
	req.Header.Set("Content-Type", "application/json")

	c.Log.Trace("calling %s", method)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: sending request", method)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: reading response", method)
	}

	var envelope apiResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, errors.Wrapf(err, "%s: decoding response", method)
	}

	if !envelope.Ok {
		apiErr := &APIError{
			Method:      method,
			Code:        envelope.ErrorCode,
			Description: envelope.Description,
		}
		if envelope.Parameters != nil {
			apiErr.RetryAfter = envelope.Parameters.RetryAfter
			apiErr.MigrateToChatID = envelope.Parameters.MigrateToChatID
		}
		return nil, apiErr
	}
	return envelope.Result, nil
}

// invoke calls method and decodes the result into out (skipped when out is nil).
func (c *Client) invoke(method string, params map[string]any, out any) error {
	result, err := c.Raw(context.Background(), method, params)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return errors.Wrapf(err, "%s: decoding result", method)
	}
	return nil
}

// encodeOptions flattens an options struct pointer into params, honoring the
// fields' json tags (name and omitempty). A nil or non-struct value is a
// no-op; unexported and untagged fields are skipped.
func encodeOptions(params map[string]any, opts any) {
	if opts == nil {
		return
	}
	v := reflect.ValueOf(opts)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tags, err := structtag.Parse(string(field.Tag))
		if err != nil {
			continue
		}
		jsonTag, err := tags.Get("json")
		if err != nil || jsonTag.Name == "" || jsonTag.Name == "-" {
			continue
		}
		value := v.Field(i)
		if jsonTag.HasOption("omitempty") && value.IsZero() {
			continue
		}
		params[jsonTag.Name] = value.Interface()
	}
}
