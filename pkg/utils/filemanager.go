// =============================================================================
// Sales Order Splitter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the splitter:
//   - Input file checks
//   - Dated output directory provisioning
//   - Order file naming
//
// OUTPUT LAYOUT:
//   <input dir>/Orders_<YYYY-MM-DD>/Order<order id>_<customer>.xlsx
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// nonWord matches every character that is not a letter, digit or underscore.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]`)

// =============================================================================
// INPUT FILES
// =============================================================================

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// OrdersDirPath returns <abs dir of inputPath>/<prefix><YYYY-MM-DD>.
//
// PARAMETERS:
//   - inputPath: The path to the sales export.
//   - prefix: The directory name prefix, e.g. "Orders_".
//   - now: The run time; only its date is used.
//
// RETURNS:
//   - The directory path.
//   - An error if the input path cannot be made absolute.
func OrdersDirPath(inputPath, prefix string, now time.Time) (string, error) {
	absPath, err := filepath.Abs(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve input path: %w", err)
	}
	return filepath.Join(filepath.Dir(absPath), prefix+now.Format("2006-01-02")), nil
}

// EnsureOrdersDir creates the dated orders directory if it does not exist.
// An existing directory is reused.
//
// RETURNS:
//   - The directory path.
//   - An error if the directory cannot be created.
func EnsureOrdersDir(inputPath, prefix string, now time.Time) (string, error) {
	dir, err := OrdersDirPath(inputPath, prefix, now)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return dir, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// SanitizeName removes every character that is not a letter, digit or
// underscore: "Jane Doe" becomes "JaneDoe".
func SanitizeName(name string) string {
	return nonWord.ReplaceAllString(name, "")
}

// OrderFileName returns "Order<order id>_<sanitized customer>.xlsx". Path
// separators in the order id are replaced so the file stays inside the
// orders directory.
//
// EXAMPLE:
//   orderID: "1001", customer: "Jane Doe"
//   output:  "Order1001_JaneDoe.xlsx"
func OrderFileName(orderID, customerName string) string {
	safeID := strings.NewReplacer("/", "_", `\`, "_").Replace(orderID)
	return fmt.Sprintf("Order%s_%s.xlsx", safeID, SanitizeName(customerName))
}
