// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func mustFlatten(t *testing.T, name string) map[string]string {
	t.Helper()
	data, err := localeFS.ReadFile(name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	out := make(map[string]string)
	flatten("", raw, out)
	return out
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch vv := v.(type) {
		case map[string]any:
			flatten(key, vv, out)
		case string:
			out[key] = vv
		}
	}
}
