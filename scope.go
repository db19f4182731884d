// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

// contextScope holds resources whose lifetime is bounded by the GPU
// contexts. Manager closes it before any context is destroyed, on every
// teardown path.
type contextScope struct {
	releases []func()
}

// hold registers release to run when the scope closes. Releases run in
// reverse order of registration.
func (s *contextScope) hold(release func()) {
	s.releases = append(s.releases, release)
}

// close runs and forgets every registered release. It is safe to call more
// than once.
func (s *contextScope) close() {
	for i := len(s.releases) - 1; i >= 0; i-- {
		s.releases[i]()
	}
	s.releases = nil
}
