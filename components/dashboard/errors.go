package dashboard

import "errors"

var (
	// ErrPanelNotFound is returned when an identifier is not on the board.
	ErrPanelNotFound = errors.New("dashboard: panel not found")
	// ErrProtectedPanel is returned when deleting a bootstrap panel.
	ErrProtectedPanel = errors.New("dashboard: default panels cannot be deleted")
	// ErrInvalidPanelRequest wraps creation request validation failures.
	ErrInvalidPanelRequest = errors.New("dashboard: invalid panel request")
	// ErrLayoutMismatch is returned when a primary layout does not name exactly the panels on the board.
	ErrLayoutMismatch = errors.New("dashboard: layout does not match panels")
	// ErrInvalidGeometry flags negative offsets or non-positive sizes.
	ErrInvalidGeometry = errors.New("dashboard: invalid panel geometry")
	// ErrInvalidSettings wraps settings validation failures.
	ErrInvalidSettings = errors.New("dashboard: invalid settings")

	errMissingPanelStore = errors.New("dashboard: panel store not configured")
	errMissingPanelID    = errors.New("dashboard: panel id is required")
)
