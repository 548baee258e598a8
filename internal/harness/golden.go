package harness

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/aeterist/aeterist/internal/app"
	"github.com/aeterist/aeterist/internal/model"
)

// Snapshot captures the complete final state of a scenario execution.
// Users are sorted by username; everything else keeps collection order.
// Deterministic ids and timestamps make the serialized form byte-stable
// across runs.
type Snapshot struct {
	Scenario       string                `json:"scenario"`
	Users          []model.User          `json:"users"`
	Posts          []model.Post          `json:"posts"`
	Comments       []model.Comment       `json:"comments"`
	GlobalMessages []model.GlobalMessage `json:"globalMessages"`
	Messages       []model.Message       `json:"messages"`
	Scriptures     []model.Scripture     `json:"scriptures"`
	CalendarEvents []model.CalendarEvent `json:"calendarEvents"`
	CurrentUser    *model.User           `json:"currentUser"`
	Theme          string                `json:"theme"`
}

// snapshot builds a Snapshot of the app's final state.
func snapshot(name string, a *app.App) *Snapshot {
	userMap := a.Users()
	users := make([]model.User, 0, len(userMap))
	for _, u := range userMap {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })

	s := &Snapshot{
		Scenario:       name,
		Users:          users,
		Posts:          emptyNotNil(a.Posts()),
		Comments:       emptyNotNil(a.Comments()),
		GlobalMessages: emptyNotNil(a.GlobalMessages()),
		Messages:       emptyNotNil(a.Messages()),
		Scriptures:     emptyNotNil(a.Scriptures()),
		CalendarEvents: emptyNotNil(a.CalendarEvents()),
		Theme:          a.Theme(),
	}
	if u, ok := a.CurrentUser(); ok {
		s.CurrentUser = &u
	}
	return s
}

// emptyNotNil keeps empty collections as [] rather than null in the
// serialized snapshot.
func emptyNotNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// RunWithGolden executes a scenario and compares the final state
// snapshot against a golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if scenario execution fails; assertion and golden
// mismatches fail the test directly.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, a, err := run(scenario)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snapshot(scenario.Name, a), "", "  ")
	if err != nil {
		return nil, err
	}
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
