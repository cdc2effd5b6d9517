package plan

import "errors"

// Domain errors surfaced by the engine and the export serializer. The
// orchestrator maps these onto user-visible replies and HTTP statuses.
var (
	ErrThemeLimit       = errors.New("theme limit reached")
	ErrDuplicateTheme   = errors.New("theme already chosen")
	ErrUnknownTheme     = errors.New("theme not chosen")
	ErrTopicLimit       = errors.New("topic limit reached for theme")
	ErrDuplicateTopic   = errors.New("topic already chosen")
	ErrThemeMismatch    = errors.New("topic does not belong to the active theme")
	ErrUnknownQuestion  = errors.New("question not found")
	ErrNoPendingAnswer  = errors.New("no question is awaiting an answer")
	ErrNothingToExport  = errors.New("no answers recorded yet")
	ErrExportNotReady   = errors.New("plan is not ready for export")
	ErrStageUnsupported = errors.New("action not available in this stage")
)
