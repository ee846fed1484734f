package services

import (
	"testing"
	"time"
)

func TestStorageKeys(t *testing.T) {
	runAt := time.Date(2023, time.September, 15, 10, 30, 0, 0, time.UTC)

	if got := CanonicalBatchKey("vancouver-rec", runAt); got != "canonical/vancouver-rec/2023-09-15T10-30-00.json" {
		t.Errorf("Unexpected canonical batch key %q", got)
	}
	if got := RunReportKey("run_ab12cd34"); got != "reports/run_ab12cd34.json" {
		t.Errorf("Unexpected run report key %q", got)
	}
}
