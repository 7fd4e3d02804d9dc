// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// scriptRuntimes are the JavaScript runtimes tried in order when
// evaluating a TypeScript config. bun first: it runs TypeScript natively.
var scriptRuntimes = [][]string{
	{"bun", "-e"},
	{"deno", "eval"},
}

// 📥 LoadScript evaluates a TypeScript configuration file by spawning a
// JavaScript runtime with a shim that imports the module and prints its
// default export as JSON. Errors when no runtime is available or the
// module doesn't evaluate to a valid configuration.
func LoadScript(ctx context.Context, path string) (Config, error) {
	log := zerolog.Ctx(ctx)
	log.Debug().Str("path", path).Msg("loading TypeScript config")

	shim := fmt.Sprintf(
		`const m = await import(%q); console.log(JSON.stringify(m.default ?? m));`,
		"file://"+path,
	)

	var lastErr error
	for _, runtime := range scriptRuntimes {
		args := append(runtime[1:], shim)
		cmd := exec.CommandContext(ctx, runtime[0], args...)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = err.Error()
			}
			lastErr = errors.Errorf("evaluating %s with %s: %s", path, runtime[0], msg)
			log.Debug().Str("runtime", runtime[0]).Str("error", msg).Msg("runtime failed")
			continue
		}

		var cfg Config
		if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &cfg); err != nil {
			return Config{}, errors.Errorf("parsing output of %s: %w", path, err)
		}
		return cfg, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no JavaScript runtime (bun, deno) found")
	}
	return Config{}, lastErr
}
