package assert

import (
	"testing"

	"utester/pkg/utester/core"

	"github.com/stretchr/testify/require"
)

// recordingContext captures what the helpers hand to Assert.
type recordingContext struct {
	core.TestContext
	asserts []core.Assertion
}

func (c *recordingContext) Assert(ok bool, a core.Assertion) bool {
	if !ok {
		c.asserts = append(c.asserts, a)
	}
	return ok
}

func TestPassingChecks(t *testing.T) {
	ctx := &recordingContext{}
	x, y := 1, 1

	require.True(t, True(ctx, true))
	require.True(t, False(ctx, false))
	require.True(t, Eq(ctx, "a", "a"))
	require.True(t, Neq(ctx, 1, 2))
	require.True(t, Lt(ctx, 1, 2))
	require.True(t, Le(ctx, 2, 2))
	require.True(t, Gt(ctx, 2.5, 1.0))
	require.True(t, Ge(ctx, "b", "a"))
	require.True(t, Is(ctx, &x, &x))
	require.True(t, IsNot(ctx, &x, &y))
	require.Empty(t, ctx.asserts)
}

func TestDefaultMessages(t *testing.T) {
	x, y := 1, 1
	cases := []struct {
		name  string
		check func(core.TestContext) bool
		want  string
	}{
		{"true", func(c core.TestContext) bool { return True(c, false) }, "want True value, got false"},
		{"false", func(c core.TestContext) bool { return False(c, true) }, "want False value, got true"},
		{"eq", func(c core.TestContext) bool { return Eq(c, 3, 2) }, "want 2, got 3"},
		{"neq", func(c core.TestContext) bool { return Neq(c, 2, 2) }, "not want 2, but got same value"},
		{"lt", func(c core.TestContext) bool { return Lt(c, 2, 2) }, "want less than 2, got 2"},
		{"le", func(c core.TestContext) bool { return Le(c, 3, 2) }, "want less or equal than 2, got 3"},
		{"gt", func(c core.TestContext) bool { return Gt(c, 2, 2) }, "want greater than 2, got 2"},
		{"ge", func(c core.TestContext) bool { return Ge(c, 1, 2) }, "want greater or equal than 2, got 1"},
		{"is", func(c core.TestContext) bool { return Is(c, &x, &y) }, "want two same reference"},
		{"is not", func(c core.TestContext) bool { return IsNot(c, &x, &x) }, "want two different reference"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := &recordingContext{}
			require.False(t, c.check(ctx))
			require.Len(t, ctx.asserts, 1)
			require.Equal(t, c.want, ctx.asserts[0].Message)
			require.False(t, ctx.asserts[0].Continue)
		})
	}
}

func TestOptions(t *testing.T) {
	ctx := &recordingContext{}

	require.False(t, Eq(ctx, 1, 2, Message("custom"), NoAbort()))
	require.Len(t, ctx.asserts, 1)
	require.Equal(t, core.Assertion{Want: 2, Got: 1, Message: "custom", Continue: true}, ctx.asserts[0])
}
