package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultAuditDir returns the default audit output directory for a
// trader, e.g. "audit/TRADER-001".
func DefaultAuditDir(traderID string) string {
	id := strings.ToUpper(strings.TrimSpace(traderID))
	if id == "" {
		id = "UNKNOWN"
	}
	return filepath.Join("audit", id)
}

// DefaultAuditPath returns a dated audit file path under the trader's
// audit directory.
func DefaultAuditPath(traderID, ext string) string {
	name := fmt.Sprintf("audit_%s.%s", time.Now().UTC().Format("2006-01-02"), strings.TrimPrefix(ext, "."))
	return filepath.Join(DefaultAuditDir(traderID), name)
}

// EnsureParentDir creates the parent directory of path if needed.
func EnsureParentDir(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
