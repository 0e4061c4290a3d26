// Package testutil provides common test utilities and mocks for testing gzlabeler components.
//
// This package is organized into the following sub-packages:
//
//   - mocks: testify mocks for the manifest fetcher and label publisher
//   - helpers: observable logger, manifest and event fixtures
//
// # Usage
//
// Import the specific sub-package you need:
//
//	import "github.com/douhashi/gzlabeler/internal/testutil/mocks"
//	import "github.com/douhashi/gzlabeler/internal/testutil/helpers"
//
// # Example
//
//	backend := mocks.NewMockBackend()
//	backend.MockFetcher.WithManifest("collection-citadel.yaml",
//	    helpers.ManifestYAML(map[string]string{"gz-math": "gz-math7"}))
//	backend.MockPublisher.On("PublishLabels", mock.Anything, mock.Anything, 42, []string{"🏰 citadel"}).
//	    Return(nil)
package testutil
