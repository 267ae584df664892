package repo

import "errors"

var ErrBootstrapFailed = errors.New("repository bootstrap failed")
var ErrRemotePathRequired = errors.New("remote path is required")
var ErrLocalPathRequired = errors.New("local path is required")
