package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/FreePeak/db-view-server/internal/domain"
	"github.com/FreePeak/db-view-server/internal/logger"
	"github.com/FreePeak/db-view-server/pkg/dbtools"
)

// Settings locates the configuration read by the resolver
type Settings struct {
	// SettingFile is the configuration document holding the entries
	SettingFile string
	// DBPropertiesFile holds url, user and password of the database
	DBPropertiesFile string
	// DefaultIdentifier names the fallback entry; "default" when empty
	DefaultIdentifier string
}

// ResolverUseCase turns an identifier plus parameters into a view
type ResolverUseCase struct {
	settings Settings
	configs  domain.ConfigRepository
	files    domain.FileRepository
	executor domain.SQLExecutor
}

// NewResolverUseCase creates a new resolver use case
func NewResolverUseCase(settings Settings, configs domain.ConfigRepository, files domain.FileRepository, executor domain.SQLExecutor) *ResolverUseCase {
	if settings.DefaultIdentifier == "" {
		settings.DefaultIdentifier = domain.DefaultIdentifier
	}
	return &ResolverUseCase{
		settings: settings,
		configs:  configs,
		files:    files,
		executor: executor,
	}
}

// Settings returns the settings the resolver was built with
func (uc *ResolverUseCase) Settings() Settings {
	return uc.settings
}

// Resolve runs one request through lookup, validation, the optional SQL step
// and view assembly. Validation, configuration and unexpected failures end in
// OutcomeFatal; failures of the SQL step end in OutcomeErrorView.
func (uc *ResolverUseCase) Resolve(ctx context.Context, req domain.Request) (outcome domain.Outcome) {
	log := logger.WithFields(logger.Fields{
		"invocation": uuid.NewString(),
		"identifier": req.Identifier,
	})
	log.Info("Start %s: %s", req.Mode.Description(), req.Identifier)

	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			log.Error("Recovered from panic: %v", err)
			outcome = domain.Fatal(&domain.SystemError{Err: err})
		}
		if outcome.Kind == domain.OutcomeFatal {
			log.Error("End %s with failure: %v", req.Mode.Description(), outcome.Err)
			return
		}
		log.Info("End %s: %s", req.Mode.Description(), outcome.Kind)
	}()

	return uc.resolve(ctx, log, req)
}

func (uc *ResolverUseCase) resolve(ctx context.Context, log *logger.Entry, req domain.Request) domain.Outcome {
	entry, err := uc.lookup(ctx, log, req.Identifier)
	if err != nil {
		return domain.Fatal(classify(err))
	}

	if err := uc.validate(entry); err != nil {
		return domain.Fatal(err)
	}

	if !entry.HasSQL() {
		view := Assemble(entry.ViewPath, nil)
		log.Info("Destination view: %s", view.View)
		return domain.Ok(view)
	}

	rows, err := uc.runSQL(ctx, log, entry, req)
	if err != nil {
		view := Assemble(entry.ErrorViewPath, nil)
		log.Error("SQL step failed, destination error view %s: %v", view.View, err)
		return domain.ErrorView(view, err)
	}

	view := Assemble(entry.ViewPath, rows)
	log.Info("Destination view: %s", view.View)
	return domain.Ok(view)
}

// lookup finds the entry for identifier and falls back to the default entry once
func (uc *ResolverUseCase) lookup(ctx context.Context, log *logger.Entry, identifier string) (domain.ConfigEntry, error) {
	entry, found, err := uc.configs.Lookup(ctx, uc.settings.SettingFile, identifier)
	if err != nil {
		return domain.ConfigEntry{}, err
	}
	if found {
		return entry, nil
	}

	if identifier != uc.settings.DefaultIdentifier {
		log.Warn("Identifier %q not found, falling back to %q", identifier, uc.settings.DefaultIdentifier)
		entry, found, err = uc.configs.Lookup(ctx, uc.settings.SettingFile, uc.settings.DefaultIdentifier)
		if err != nil {
			return domain.ConfigEntry{}, err
		}
		if found {
			return entry, nil
		}
	}

	return domain.ConfigEntry{}, &domain.ConfigurationError{
		Document: uc.settings.SettingFile,
		Msg:      fmt.Sprintf("no entry for %q and no %q entry", identifier, uc.settings.DefaultIdentifier),
	}
}

// validate checks that every path named by entry exists
func (uc *ResolverUseCase) validate(entry domain.ConfigEntry) error {
	if !uc.files.Exists(entry.ViewPath) {
		return &domain.ValidationError{Field: domain.FieldView, Path: entry.ViewPath}
	}
	if entry.HasSQL() && !uc.files.Exists(entry.SQLPath) {
		return &domain.ValidationError{Field: domain.FieldSQL, Path: entry.SQLPath}
	}
	if !uc.files.Exists(entry.ErrorViewPath) {
		return &domain.ValidationError{Field: domain.FieldErrorView, Path: entry.ErrorViewPath}
	}
	return nil
}

// runSQL reads and binds the template, then executes it with the request mode
func (uc *ResolverUseCase) runSQL(ctx context.Context, log *logger.Entry, entry domain.ConfigEntry, req domain.Request) (domain.ResultSet, error) {
	template, err := uc.files.ReadFile(entry.SQLPath)
	if err != nil {
		return nil, &domain.ExecutionError{Op: "read SQL template", Err: err}
	}

	statement := dbtools.Bind(template, req.Params)
	if missing := dbtools.Unresolved(template, req.Params); len(missing) > 0 {
		log.Debug("Placeholders left unbound: %v", missing)
	}

	conn, err := uc.files.ReadConnection(uc.settings.DBPropertiesFile)
	if err != nil {
		return nil, &domain.ExecutionError{Op: "read connection properties", Err: err}
	}

	log.Info("Executing SQL %s (%s)", entry.SQLPath, req.Mode)
	log.Debug("Statement: %s", statement)

	result, err := uc.executor.Execute(ctx, conn, statement, req.Mode)
	if err != nil {
		if !errors.Is(err, domain.ErrExecution) {
			err = &domain.ExecutionError{Op: "execute", Err: err}
		}
		return nil, err
	}

	if req.Mode == domain.Write {
		return nil, nil
	}
	return result.Rows, nil
}

// classify keeps typed failures and wraps anything else as a system error
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrSystem):
		return err
	default:
		return &domain.SystemError{Err: err}
	}
}
