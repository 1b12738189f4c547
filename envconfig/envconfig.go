//
// Copyright 2024 vantage6
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package envconfig loads the privacy settings a data holder's
// administrator configures through environment variables. Settings are
// loaded once per task execution and passed around as an immutable
// value; nothing in the pipeline reads the environment directly.
package envconfig

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Flag is a boolean setting. It accepts the spellings true/1/yes/t and
// false/0/no/f, case-insensitively.
type Flag bool

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Flag) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "true", "1", "yes", "t":
		*f = true
	case "false", "0", "no", "f":
		*f = false
	default:
		return fmt.Errorf("value %q cannot be converted to a boolean value. Please use 'false' or 'true'", string(text))
	}
	return nil
}

// Settings holds a single data holder's privacy configuration. Each
// holder may run with different settings; they never leave the holder.
type Settings struct {
	// PrivacyThreshold is the minimum count that may be revealed
	// exactly; smaller counts are suppressed.
	PrivacyThreshold int64 `env:"CROSSTAB_PRIVACY_THRESHOLD" envDefault:"5"`
	// MinimumRowsTotal is the minimum dataset size for which the holder
	// computes anything at all.
	MinimumRowsTotal int64 `env:"CROSSTAB_MINIMUM_ROWS_TOTAL" envDefault:"5"`
	// AllowZero marks an exact count of 0 as safe to reveal.
	AllowZero Flag `env:"CROSSTAB_ALLOW_ZERO" envDefault:"false"`
	// AllowedColumns, when non-empty, is a whitelist of column names
	// usable as group or result columns.
	AllowedColumns []string `env:"CROSSTAB_ALLOWED_COLUMNS" envSeparator:","`
	// DisallowedColumns is a blacklist of column names.
	DisallowedColumns []string `env:"CROSSTAB_DISALLOWED_COLUMNS" envSeparator:","`
}

// Default returns the settings used when no environment variables are
// set: threshold 5, minimum 5 rows, zero counts not revealed.
func Default() Settings {
	return Settings{PrivacyThreshold: 5, MinimumRowsTotal: 5}
}

// Load reads Settings from the environment.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if s.PrivacyThreshold < 0 {
		return Settings{}, fmt.Errorf("environment variable 'CROSSTAB_PRIVACY_THRESHOLD' has value '%d' which cannot be "+
			"converted to a positive integer value", s.PrivacyThreshold)
	}
	if s.MinimumRowsTotal < 0 {
		return Settings{}, fmt.Errorf("environment variable 'CROSSTAB_MINIMUM_ROWS_TOTAL' has value '%d' which cannot be "+
			"converted to a positive integer value", s.MinimumRowsTotal)
	}
	return s, nil
}
