package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExportManager handles export file organization and path management for
// saved store snapshots.
type ExportManager struct {
	BaseExportDir string
}

// NewExportManager creates a new export manager rooted at baseExportDir.
func NewExportManager(baseExportDir string) *ExportManager {
	return &ExportManager{
		BaseExportDir: baseExportDir,
	}
}

// CreateSessionExportDir creates a session-keyed directory for exports.
func (em *ExportManager) CreateSessionExportDir(sessionID string) (string, error) {
	dir := filepath.Join(em.BaseExportDir, sessionID)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	return dir, nil
}

// ExportFilePath generates a full path for an export file, stripping any
// path separators from the file name.
func (em *ExportManager) ExportFilePath(sessionID, fileName string) (string, error) {
	dir, err := em.CreateSessionExportDir(sessionID)
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, filepath.Base(fileName)), nil
}

// DownloadURL generates a download URL for an exported file.
func (em *ExportManager) DownloadURL(sessionID, fileName string) string {
	return fmt.Sprintf("/api/v1/download/%s/%s", sessionID, filepath.Base(fileName))
}

// FileType determines the export file type based on extension.
func (em *ExportManager) FileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".png":
		return "png"
	default:
		return "unknown"
	}
}
