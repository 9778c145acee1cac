package partition

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReport_EmptySectionRendersEmptyString(t *testing.T) {
	report := NewReport()

	for _, kind := range Kinds {
		require.Equal(t, "", report.Render(kind))
		require.Equal(t, 0, report.Len(kind))
	}
}

func TestReport_KeepsOneLinePerTarget(t *testing.T) {
	report := NewReport()

	// the same identifier on two targets yields two lines, no dedup
	report.RecordAdded(Target{Database: "db1", Table: "tab_user"}, "p20241030")
	report.RecordAdded(Target{Database: "db2", Table: "tab_user"}, "p20241030")

	rendered := report.Render(OutcomeAdded)
	require.Equal(t,
		"Added partition p20241030 for table db1.tab_user.\n"+
			"Added partition p20241030 for table db2.tab_user.",
		rendered)
}

func TestReport_SectionsAreIndependent(t *testing.T) {
	report := NewReport()
	target := Target{Database: "db1", Table: "tab_user"}

	report.RecordAdded(target, "p20241030")
	report.RecordDeleted(target, "p20240909")
	report.RecordAlreadyExists(target, "p20241031")
	report.RecordDoesNotExist(target, "p20240910")
	report.RecordError(target, "p20241101", errors.New("boom"))

	for _, kind := range Kinds {
		require.Equal(t, 1, report.Len(kind))
	}

	require.Contains(t, report.Render(OutcomeError), "boom")
	require.Contains(t, report.Render(OutcomeDoesNotExist), "skipping deletion")
	require.Contains(t, report.Render(OutcomeAlreadyExists), "skipping addition")
}

func TestReport_SafeUnderConcurrentProducers(t *testing.T) {
	report := NewReport()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := Target{Database: fmt.Sprintf("db%d", i), Table: "tab_user"}
			report.RecordAdded(target, "p20241030")
			report.RecordError(target, "p20240909", errors.New("locked"))
		}(i)
	}
	wg.Wait()

	require.Equal(t, 50, report.Len(OutcomeAdded))
	require.Equal(t, 50, report.Len(OutcomeError))
	require.Equal(t, 50, len(strings.Split(report.Render(OutcomeAdded), "\n")))
}
