package registry

import (
	"io"
	"testing"

	"utester/internal/uterror"
	"utester/pkg/utester/core"
	"utester/pkg/utester/host"
	"utester/pkg/utester/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedSuite struct {
	name    string
	testers []string
}

func (s namedSuite) Name() string {
	return s.name
}

func (s namedSuite) RegisterTesters(r core.TestRegistrar) error {
	for _, name := range s.testers {
		r.RegisterTester(name, func(core.TestContext) {})
	}
	return nil
}

func newRegistry() (*Registry, *host.Local) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log), host.NewLocal(log, io.Discard)
}

func TestRegisterIsSingletonPerID(t *testing.T) {
	r, h := newRegistry()

	first, err := r.Register(h, "pkg", namedSuite{"MathTests", []string{"add"}})
	require.NoError(t, err)
	assert.Equal(t, "pkg:MathTests", first.ID())

	again, err := r.Register(h, "pkg", namedSuite{"MathTests", []string{"other"}})
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Len(t, r.TestCases(), 1)
	assert.Same(t, first, r.Lookup("pkg:MathTests"))
	assert.Nil(t, r.Lookup("pkg:Nope"))
}

func TestRegisterWithoutHostContext(t *testing.T) {
	r, h := newRegistry()

	_, err := r.Register(nil, "pkg", namedSuite{name: "S"})
	assert.ErrorIs(t, err, uterror.ErrNoHostContext)

	_, err = r.Register(h, "", namedSuite{name: "S"})
	assert.ErrorIs(t, err, uterror.ErrNoHostContext)

	_, err = r.Register(h, "pkg", namedSuite{})
	assert.ErrorIs(t, err, uterror.ErrNoHostContext)

	assert.Empty(t, r.TestCases())
}

func TestListAndMatch(t *testing.T) {
	r, h := newRegistry()
	_, err := r.Register(h, "pkg", namedSuite{"MathTests", []string{"add", "div"}})
	require.NoError(t, err)
	_, err = r.Register(h, "other", namedSuite{"Chat", []string{"say", "add_user"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg:MathTests.add", "pkg:MathTests.div", "other:Chat.say", "other:Chat.add_user"}, entryStrings(r.List("")))
	assert.Equal(t, []string{"pkg:MathTests.add", "other:Chat.add_user"}, entryStrings(r.List("add")))
	assert.Equal(t, []string{"pkg:MathTests.div"}, entryStrings(r.List("Math.div")))
	assert.Equal(t, []string{"other:Chat.say", "other:Chat.add_user"}, entryStrings(r.List("Chat.")))
	assert.Empty(t, r.List("nothing.here"))

	assert.Len(t, r.Match(utils.NewSubstringFilter("pkg")), 1)
	assert.Len(t, r.Match(utils.NewSubstringFilter("")), 2)
}

func TestAttachShowsInList(t *testing.T) {
	r, h := newRegistry()
	tc, err := r.Register(h, "pkg", namedSuite{"S", []string{"a"}})
	require.NoError(t, err)

	_, err = tc.Attach("late", func(core.TestContext) {})
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg:S.a", "pkg:S.late"}, entryStrings(r.List("")))
}

func entryStrings(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.String()
	}
	return out
}
