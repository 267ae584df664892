package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	artifactapp "github.com/seqvault/seqvault/internal/app/artifact"
	backupapp "github.com/seqvault/seqvault/internal/app/backup"
	historyapp "github.com/seqvault/seqvault/internal/app/history"
	"github.com/seqvault/seqvault/internal/app/paths"
	repoapp "github.com/seqvault/seqvault/internal/app/repo"
	"github.com/seqvault/seqvault/internal/domain"
	"github.com/seqvault/seqvault/internal/infra/configfile"
)

type ErrorKind string

const (
	KindInternal   ErrorKind = "internal"
	KindBootstrap  ErrorKind = "bootstrap"
	KindValidation ErrorKind = "validation"
	KindFetch      ErrorKind = "fetch"
	KindCompare    ErrorKind = "compare"
	KindWrite      ErrorKind = "write"
	KindPublish    ErrorKind = "publish"
)

const (
	ExitInternal  = 1
	ExitBootstrap = 1
	ExitInvalid   = 2
	ExitFetch     = 3
	ExitCompare   = 4
	ExitWrite     = 5
	ExitPublish   = 6
)

type ExitError struct {
	Code    int
	Kind    ErrorKind
	Message string
	Err     error
}

func (e ExitError) Error() string {
	return errorMessage(e)
}

func NormalizeError(err error) ExitError {
	if err == nil {
		return ExitError{Code: 0}
	}
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code == 0 {
			exitErr.Code = ExitInternal
		}
		return exitErr
	}

	switch {
	case errors.Is(err, repoapp.ErrBootstrapFailed):
		return ExitError{Code: ExitBootstrap, Kind: KindBootstrap, Err: err}
	case errors.Is(err, backupapp.ErrCompareFailed):
		return ExitError{Code: ExitCompare, Kind: KindCompare, Err: err}
	case errors.Is(err, backupapp.ErrWriteFailed):
		return ExitError{Code: ExitWrite, Kind: KindWrite, Err: err}
	case errors.Is(err, backupapp.ErrPublishFailed),
		errors.Is(err, domain.ErrSyncConflict):
		return ExitError{Code: ExitPublish, Kind: KindPublish, Err: err}
	case errors.Is(err, artifactapp.ErrFetchFailed),
		errors.Is(err, artifactapp.ErrArtifactNotFound),
		errors.Is(err, artifactapp.ErrNoArtifacts):
		return ExitError{Code: ExitFetch, Kind: KindFetch, Err: err}
	case errors.Is(err, ErrNoSelection),
		errors.Is(err, artifactapp.ErrInvalidArtifactName),
		errors.Is(err, repoapp.ErrRemotePathRequired),
		errors.Is(err, repoapp.ErrLocalPathRequired),
		errors.Is(err, paths.ErrRepoPathRequired),
		errors.Is(err, historyapp.ErrInvalidLimit),
		errors.Is(err, configfile.ErrConfigInvalid),
		errors.Is(err, domain.ErrRepoNameRequired),
		errors.Is(err, domain.ErrRemoteRootRequired),
		errors.Is(err, domain.ErrLocalRootRequired),
		errors.Is(err, domain.ErrConsoleURLRequired):
		return ExitError{Code: ExitInvalid, Kind: KindValidation, Err: err}
	default:
		return ExitError{Code: ExitInternal, Kind: KindInternal, Err: err}
	}
}

func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return NormalizeError(err).Code
}

func writeCLIError(w io.Writer, exitErr ExitError, asJSON bool) error {
	if exitErr.Code == 0 {
		return nil
	}
	message := errorMessage(exitErr)
	if asJSON {
		payload := struct {
			Code    int    `json:"code"`
			Kind    string `json:"kind"`
			Message string `json:"message"`
		}{
			Code:    exitErr.Code,
			Kind:    string(exitErr.Kind),
			Message: message,
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	ui := newRenderer(w, false)
	prefix := "Error"
	if exitErr.Kind != "" {
		prefix = fmt.Sprintf("Error (%s)", exitErr.Kind)
	}
	prefix = ui.err(prefix)
	_, err := fmt.Fprintf(w, "%s: %s\n", prefix, message)
	return err
}

func errorMessage(exitErr ExitError) string {
	if exitErr.Message != "" {
		return exitErr.Message
	}
	if exitErr.Err != nil {
		return exitErr.Err.Error()
	}
	return "unknown error"
}
