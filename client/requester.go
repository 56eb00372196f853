// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/rpc/v2/json2"
)

// requester sends JSON-RPC 2.0 requests to one service endpoint.
type requester struct {
	uri     string
	service string
	cli     *http.Client
}

func newRequester(uri string, endpoint string, service string, reqTimeout time.Duration) *requester {
	return &requester{
		uri:     strings.TrimSuffix(uri, "/") + endpoint,
		service: service,
		cli:     &http.Client{Timeout: reqTimeout},
	}
}

func (r *requester) SendRequest(ctx context.Context, method string, args interface{}, reply interface{}) error {
	if args == nil {
		args = struct{}{}
	}
	body, err := json2.EncodeClientRequest(r.service+"."+method, args)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.uri, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.cli.Do(req)
	if err != nil {
		return fmt.Errorf("failed to issue %s request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s request received status code %d", method, resp.StatusCode)
	}
	if err := json2.DecodeClientResponse(resp.Body, reply); err != nil {
		return asLedgerError(err)
	}
	return nil
}
