package usecase

import (
	"time"

	"github.com/runoshun/teamtasks/internal/testutil"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newClock() *testutil.MockClock {
	return &testutil.MockClock{NowTime: testNow}
}

// seedScenario stores project 1 (Website) with the tasks
// Design(1) > [Spec(2) > [Draft(4)], Review(3)] and project 2 (Launch)
// with Kickoff(5).
func seedScenario(store *testutil.MockStore) {
	testutil.SeedScenario(store)
}
