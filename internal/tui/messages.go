package tui

import (
	"github.com/Veraticus/poultry-receipt/internal/export"
)

// shareResultMsg carries the outcome of a share started from the preview.
type shareResultMsg struct {
	err    error
	issued export.Issued
}

// statusExpiredMsg clears a status toast unless a newer one replaced it.
type statusExpiredMsg struct {
	id int
}

// StatusKind selects how a status toast is styled.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// status is a short-lived notification.
type status struct {
	text string
	kind StatusKind
	id   int
}
