package artifact

import "errors"

var ErrFetchFailed = errors.New("artifact fetch failed")
var ErrArtifactNotFound = errors.New("artifact not found")
var ErrNoArtifacts = errors.New("no artifacts available")
var ErrInvalidArtifactName = errors.New("invalid artifact name")
