package domain

import "errors"

var ErrRepoNameRequired = errors.New("repo name is required")
var ErrRemoteRootRequired = errors.New("remote root is required")
var ErrLocalRootRequired = errors.New("local root is required")
var ErrConsoleURLRequired = errors.New("console url is required")
var ErrSyncConflict = errors.New("remote ahead; push rejected")
var ErrNothingToCommit = errors.New("nothing to commit")
