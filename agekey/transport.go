// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package agekey

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/CadamTech/agekey-sdk/akerror"
	"github.com/CadamTech/agekey-sdk/oauth"
	"github.com/CadamTech/agekey-sdk/request"
)

// maxResponseSize bounds the PAR response body read into memory.
const maxResponseSize = 64 << 10

func (c *Client) pushAuthorizationRequest(
	ctx context.Context, form *request.PARForm,
) (*oauth.PushedAuthorizationResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.env.PAREndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, akerror.Wrap(akerror.KindConfiguration, err, "failed to build PAR request")
	}
	for name, values := range c.headers {
		req.Header[name] = append([]string(nil), values...)
	}
	req.Header.Set("Content-Type", oauth.ContentTypeForm)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.DebugContext(ctx, "pushing authorization request", "host", req.URL.Host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, akerror.Wrap(akerror.KindNetworkError, err, "PAR request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, akerror.Wrap(akerror.KindNetworkError, err, "failed to read PAR response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp oauth.ErrorResponse
		// the body is optional and may not be JSON
		_ = json.Unmarshal(body, &errResp)
		e := akerror.FromHTTPStatus(resp.StatusCode, errResp.Error, errResp.ErrorDescription)
		if errResp.ErrorURI != "" {
			e = e.WithDocs(errResp.ErrorURI)
		}
		return nil, e
	}

	var par oauth.PushedAuthorizationResponse
	if err := json.Unmarshal(body, &par); err != nil {
		return nil, akerror.Wrap(akerror.KindServerError, err,
			fmt.Sprintf("malformed PAR response (HTTP %d)", resp.StatusCode))
	}
	if err := par.Validate(); err != nil {
		return nil, akerror.Wrap(akerror.KindServerError, err,
			fmt.Sprintf("malformed PAR response (HTTP %d)", resp.StatusCode))
	}
	return &par, nil
}
