package infra

import (
	"context"
	"log/slog"

	"accept-broker/internal/pkg/errs"
)

type RepositoryErrorKind string

const (
	KindNotFound     RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure    RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey RepositoryErrorKind = "DUPLICATE_KEY"
)

// RepositoryError tags a storage failure with a Kind so use cases can branch
// without importing pgx.
type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error
}

func (e RepositoryError) Error() string {
	if e.err == nil {
		return string(e.Kind) + ": " + e.msg
	}
	return string(e.Kind) + ": " + e.err.Error()
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// Is lets DB failures surface as errs.ErrDatabaseOperationFailed.
func (e RepositoryError) Is(target error) bool {
	return target == errs.ErrDatabaseOperationFailed && e.Kind == KindDBFailure
}

// WrapRepoErr logs at a level matching the kind: lookups that miss are routine,
// everything else is an operational failure.
func WrapRepoErr(ctx context.Context, logger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	level := slog.LevelError
	if kind == KindNotFound || kind == KindDuplicateKey {
		level = slog.LevelDebug
	}
	attrs := []slog.Attr{slog.String("kind", string(kind))}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		err = errs.Wrap(err, msg)
	}
	logger.LogAttrs(ctx, level, "repository: "+msg, attrs...)

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	return errs.As(err, &e) && e.Kind == kind
}
