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

package report

import (
	"fmt"
	"io"
	"os"
)

// Output is the report destination: stdout or a file. The caller must call
// Close when done so file destinations are flushed and closed.
type Output struct {
	w         io.Writer
	closeFunc func() error
}

// NewOutput creates an Output that writes to the given writer.
func NewOutput(w io.Writer) *Output {
	return &Output{w: w}
}

// NewFileOutput creates an Output that writes to the named file,
// truncating it if it exists.
func NewFileOutput(path string) (*Output, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &Output{w: file, closeFunc: file.Close}, nil
}

// OpenOutput selects the report destination for the given path.
// "" and "-" select stdout.
func OpenOutput(path string) (*Output, error) {
	if path == "" || path == "-" {
		return NewOutput(os.Stdout), nil
	}
	return NewFileOutput(path)
}

// Write implements io.Writer.
func (o *Output) Write(p []byte) (int, error) {
	return o.w.Write(p)
}

// Close closes the underlying writer if it's a file.
func (o *Output) Close() error {
	if o.closeFunc != nil {
		return o.closeFunc()
	}
	return nil
}
