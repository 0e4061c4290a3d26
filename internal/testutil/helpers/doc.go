// Package helpers provides test helpers shared across packages.
//
// # Available Helpers
//
//   - ObservableLogger: a logger.Logger backed by zaptest/observer so tests can
//     assert on emitted messages and fields
//   - ManifestYAML: renders a gazebodistro style manifest document
//   - WriteEventFile: writes a GitHub Actions event payload to a temp file
//
// # Example
//
//	func TestMatch(t *testing.T) {
//	    log, recorded := helpers.NewObservableLogger(zapcore.DebugLevel)
//	    m := matcher.NewMatcher(fetcher, matcher.DefaultPolicy(), log)
//	    // ...
//	    assert.Equal(t, 1, recorded.FilterMessage("train evaluated").Len())
//	}
package helpers
