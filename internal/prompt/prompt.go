// Copyright 2026 The Tugboat Authors
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

// Package prompt asks for credentials interactively. It is used exactly
// once, at startup, when no token was supplied via flag or environment.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Token prompts for a GitHub token with masked input. username only labels
// the prompt; the returned token is trimmed of surrounding whitespace.
func Token(username string) (string, error) {
	var token string

	input := huh.NewInput().
		Title(fmt.Sprintf("GitHub token for %s", username)).
		EchoMode(huh.EchoModePassword).
		Value(&token).
		Validate(func(value string) error {
			if strings.TrimSpace(value) == "" {
				return errors.New("a token is required")
			}
			return nil
		})

	form := huh.NewForm(huh.NewGroup(input)).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}

	return strings.TrimSpace(token), nil
}
