package backup

import "errors"

var ErrCompareFailed = errors.New("change detection failed")
var ErrWriteFailed = errors.New("snapshot write failed")
var ErrPublishFailed = errors.New("publish failed")
