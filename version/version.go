// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package version defines version variables.
package version

import (
	_ "embed"
	"encoding/json"

	"github.com/ava-labs/avalanchego/version"
)

var Version = version.NewDefaultVersion(0, 1, 0)

//go:embed compatibility.json
var compatibilityBytes []byte

type compatibility struct {
	CodecVersion map[string]uint16 `json:"codecVersion"`
}

// CodecVersion returns the wire codec version shipped with [v], if known.
func CodecVersion(v string) (uint16, bool) {
	var c compatibility
	if err := json.Unmarshal(compatibilityBytes, &c); err != nil {
		return 0, false
	}
	cv, ok := c.CodecVersion[v]
	return cv, ok
}
