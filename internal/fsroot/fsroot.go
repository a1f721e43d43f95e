/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package fsroot resolves a caller-supplied filename against a base
// directory, rejecting any result that would escape it. A naive join of
// base_dir and a client-supplied filename lets a query like
// "../../etc/passwd" read arbitrary files outside the served directory;
// Resolve closes that off.
package fsroot

import (
	"path/filepath"
	"strings"

	"github.com/nabbar/fts-toolkit/errors"
)

// Resolve joins base and name, rejecting any name that is absolute,
// contains a NUL byte, contains a ".." path segment, or still resolves
// outside base after cleaning or, for a target that exists, after
// following symlinks. On rejection it returns NotFound, the
// same kind a genuinely missing file would produce, so a client cannot
// distinguish "traversal blocked" from "file absent".
func Resolve(base, name string) (string, error) {
	if name == "" {
		return "", errors.New(errors.NotFound, "empty filename", nil)
	}
	if strings.ContainsRune(name, 0) {
		return "", errors.New(errors.NotFound, "filename contains a NUL byte", nil)
	}
	if filepath.IsAbs(name) {
		return "", errors.New(errors.NotFound, "filename must be relative", nil)
	}

	for _, seg := range strings.Split(filepath.ToSlash(name), "/") {
		if seg == ".." {
			return "", errors.New(errors.NotFound, "filename must not contain parent traversal", nil)
		}
	}

	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", errors.New(errors.IO, "failed to resolve base directory", err)
	}

	joined := filepath.Join(absBase, name)
	rel, err := filepath.Rel(absBase, joined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New(errors.NotFound, "filename escapes the base directory", nil)
	}

	// When the target exists, compare symlink-resolved paths too, so a
	// link inside base that points outside it is rejected as well.
	if resolved, err := filepath.EvalSymlinks(joined); err == nil {
		realBase, err := filepath.EvalSymlinks(absBase)
		if err != nil {
			realBase = absBase
		}
		rel, err = filepath.Rel(realBase, resolved)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", errors.New(errors.NotFound, "filename escapes the base directory", nil)
		}
	}

	return joined, nil
}
