package modifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ningg/checkstyle/pkg/checks"
	"github.com/ningg/checkstyle/pkg/javast"
)

func TestModifierOrderKindSets(t *testing.T) {
	t.Parallel()

	check := NewModifierOrder()
	want := javast.NewKindSet(javast.KindModifiers)

	assert.True(t, check.DefaultKinds().Equal(want))
	assert.True(t, check.RequiredKinds().Equal(want))
	assert.True(t, check.AcceptableKinds().Equal(want))
	assert.Empty(t, check.Properties())
}

func TestModifierOrderCanonical(t *testing.T) {
	t.Parallel()

	got := runCheck(t, NewModifierOrder(), `public abstract class Shape {
    public static final int SIDES = 4;

    protected abstract void draw();
}
`)

	assert.Empty(t, got)
}

func TestModifierOrderSwapped(t *testing.T) {
	t.Parallel()

	got := runCheck(t, NewModifierOrder(), `class Holder {
    static public int count = 0;
}
`)

	require.Len(t, got, 1)
	assert.Equal(t, MsgModifierOrder, got[0].Key)
	assert.Equal(t, []any{"public"}, got[0].Args)
	assert.Equal(t, javast.Position{Line: 2, Col: 12}, got[0].Pos)
	assert.Equal(t, "'public' modifier out of order with the JLS suggestions.", got[0].Message())
}

func TestModifierOrderFinalBeforeStatic(t *testing.T) {
	t.Parallel()

	got := runCheck(t, NewModifierOrder(), `class Holder {
    final static int COUNT = 0;
}
`)

	require.Len(t, got, 1)
	assert.Equal(t, []any{"static"}, got[0].Args)
}

func TestModifierOrderFirstErrorOnly(t *testing.T) {
	t.Parallel()

	got := runCheck(t, NewModifierOrder(), `class Holder {
    static public protected int count = 0;
}
`)

	// One violation per modifier list, at the first offender.
	require.Len(t, got, 1)
	assert.Equal(t, []any{"public"}, got[0].Args)
}

func TestModifierOrderLeadingAnnotationAccepted(t *testing.T) {
	t.Parallel()

	got := runCheck(t, NewModifierOrder(), `@Deprecated public class Legacy {
}
`)

	assert.Empty(t, got)
}

func TestModifierOrderAnnotationAfterKeyword(t *testing.T) {
	t.Parallel()

	got := runCheck(t, NewModifierOrder(), `class Holder {
    public @Deprecated void act() { }
}
`)

	require.Len(t, got, 1)
	assert.Equal(t, MsgAnnotationOrder, got[0].Key)
	assert.Equal(t, []any{"@Deprecated"}, got[0].Args)
	assert.Equal(t, "'@Deprecated' annotation modifier does not precede non-annotation modifiers.", got[0].Message())
}

func TestModifierOrderPerListReporting(t *testing.T) {
	t.Parallel()

	got := runCheck(t, NewModifierOrder(), `class Holder {
    static public int first = 0;

    final private int second = 0;
}
`)

	require.Len(t, got, 2)
	assert.Equal(t, []any{"public"}, got[0].Args)
	assert.Equal(t, []any{"private"}, got[1].Args)
}

func TestModifierOrderEmptyListNoReport(t *testing.T) {
	t.Parallel()

	collector := &checks.Collector{}
	NewModifierOrder().Visit(&javast.Node{Kind: javast.KindModifiers}, collector)

	assert.Equal(t, 0, collector.Len())
}

func TestModifierOrderUnexpectedKindPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewModifierOrder().Visit(&javast.Node{Kind: javast.KindBlock}, &checks.Collector{})
	})
}
