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

package fsroot_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/nabbar/fts-toolkit/internal/fsroot"
)

func TestResolveAcceptsPlainFilename(t *testing.T) {
	got, err := fsroot.Resolve("/srv/data", "a.bin")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want, _ := filepath.Abs(filepath.Join("/srv/data", "a.bin"))
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	cases := []string{
		"../etc/passwd",
		"a/../../etc/passwd",
		"/etc/passwd",
		"a\x00b",
		"",
	}
	for _, name := range cases {
		if _, err := fsroot.Resolve("/srv/data", name); err == nil {
			t.Fatalf("Resolve(%q) succeeded, want rejection", name)
		}
	}
}

func TestResolveAllowsNestedSubdirectory(t *testing.T) {
	got, err := fsroot.Resolve("/srv/data", "sub/dir/file.bin")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasSuffix(got, filepath.Join("sub", "dir", "file.bin")) {
		t.Fatalf("got %q, want suffix sub/dir/file.bin", got)
	}
}
