package checks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ningg/checkstyle/pkg/javast"
)

func TestViolationMessage(t *testing.T) {
	t.Parallel()

	v := Violation{
		Pos:  javast.Position{Line: 4, Col: 5},
		Key:  "class.implied.modifier",
		Args: []any{"static"},
	}

	assert.Equal(t, "Implied modifier 'static' should be explicit.", v.Message())
}

func TestMessageTextUnknownKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no.such.key", MessageText("no.such.key", "x"))
}

func TestCollectorOrdersByPosition(t *testing.T) {
	t.Parallel()

	collector := &Collector{}
	collector.Report(Violation{Pos: javast.Position{Line: 9, Col: 1}, Key: "b"})
	collector.Report(Violation{Pos: javast.Position{Line: 2, Col: 7}, Key: "a"})
	collector.Report(Violation{Pos: javast.Position{Line: 2, Col: 3}, Key: "a"})

	got := collector.Violations()
	require.Len(t, got, 3)
	assert.Equal(t, javast.Position{Line: 2, Col: 3}, got[0].Pos)
	assert.Equal(t, javast.Position{Line: 2, Col: 7}, got[1].Pos)
	assert.Equal(t, javast.Position{Line: 9, Col: 1}, got[2].Pos)
}

func TestCollectorStableForEqualPositions(t *testing.T) {
	t.Parallel()

	collector := &Collector{}
	pos := javast.Position{Line: 3, Col: 1}
	collector.Report(Violation{Pos: pos, Key: "same.key", Args: []any{"public"}})
	collector.Report(Violation{Pos: pos, Key: "same.key", Args: []any{"static"}})

	got := collector.Violations()
	require.Len(t, got, 2)
	assert.Equal(t, []any{"public"}, got[0].Args)
	assert.Equal(t, []any{"static"}, got[1].Args)
}

func TestCollectorConcurrentReport(t *testing.T) {
	t.Parallel()

	collector := &Collector{}

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func(line int) {
			defer wg.Done()

			collector.Report(Violation{Pos: javast.Position{Line: line + 1, Col: 1}, Key: "k"})
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 16, collector.Len())
	assert.Len(t, collector.Violations(), 16)
}

func TestCollectorCopyIsDetached(t *testing.T) {
	t.Parallel()

	collector := &Collector{}
	collector.Report(Violation{Pos: javast.Position{Line: 1, Col: 1}, Key: "k"})

	first := collector.Violations()
	first[0].Key = "mutated"

	assert.Equal(t, "k", collector.Violations()[0].Key)
}
