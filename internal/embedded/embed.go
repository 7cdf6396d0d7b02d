// Package embedded ships sample controlled lists inside the binary so the
// development server runs without any list files on disk.
package embedded

import (
	"embed"

	"github.com/agentstation/refselect/pkg/controlledlists"
)

// FS holds the sample list files under lists/.
//
//go:embed lists/*
var FS embed.FS

// Lists loads and normalizes the sample lists.
func Lists() ([]*controlledlists.ControlledList, error) {
	return controlledlists.LoadFS(FS, "lists")
}
