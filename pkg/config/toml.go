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
	"context"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📥 LoadTOML parses a TOML configuration file. All fields are optional;
// missing lists stay empty.
func LoadTOML(ctx context.Context, path string) (Config, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading TOML config")

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
