package calc

import (
	"utester/pkg/utester"
	"utester/pkg/utester/assert"
	"utester/pkg/utester/core"
	"utester/pkg/utester/recorder"
)

// Tests is the CalcTests suite.
type Tests struct{}

func (Tests) Name() string {
	return "CalcTests"
}

func (s Tests) RegisterTesters(r utester.TestRegistrar) error {
	r.RegisterTester("add", s.add)
	r.RegisterTester("add_updates_score", s.addUpdatesScore)
	r.RegisterTester("div", s.div)
	r.RegisterTester("div_by_zero", s.divByZero)
	r.RegisterTester("invalid_number", s.invalidNumber)
	r.RegisterTester("announce", s.announce)
	r.RegisterTester("announce_from_player", s.announceFromPlayer)
	return nil
}

func (Tests) add(t utester.TestContext) {
	src, err := utester.ExecuteByPlayer(t, "Steve", "!!calc add 1 2")
	if err != nil {
		t.Fail(err)
	}

	t.Logger().Infof("replied '%s'", src.ReplyText())
	assert.Eq(t, src.ReplyText(), "1 + 2 = 3")
}

func (Tests) addUpdatesScore(t utester.TestContext) {
	rec := utester.WithRecords(t)
	err := rec.Scope(func() {
		if _, err := utester.ExecuteByPlayer(t, "Steve", "!!calc add 2 3"); err != nil {
			t.Fail(err)
		}
		if _, err := utester.ExecuteByConsole(t, "!!calc add 1 1"); err != nil {
			t.Fail(err)
		}
	})
	if err != nil {
		t.Fail(err)
	}

	rec.RequireExecuted(t, []string{
		"scoreboard players add Steve calc 5",
		"scoreboard players add console calc 2",
	}, recorder.AllowExtra(false))
}

func (Tests) div(t utester.TestContext) {
	src, err := utester.ExecuteByConsole(t, "!!calc div 7 2")
	if err != nil {
		t.Fail(err)
	}

	assert.Eq(t, src.ReplyText(), "7 / 2 = 3")
}

func (Tests) divByZero(t utester.TestContext) {
	src, err := utester.ExecuteByConsole(t, "!!calc div 1 0")
	if err != nil {
		t.Fail(err)
	}

	replies := src.Replies()
	assert.Eq(t, len(replies), 1)
	rich, ok := replies[0].(core.RText)
	assert.True(t, ok, assert.Message("want a rich text reply"))
	assert.Eq(t, rich.Color, core.ColorRed)
	assert.Eq(t, rich.Text, "division by zero")
}

func (Tests) invalidNumber(t utester.TestContext) {
	for _, command := range []string{"!!calc add one 2", "!!calc div 1 two"} {
		src, err := utester.ExecuteByConsole(t, command)
		if err != nil {
			t.Fail(err)
		}
		t.Log(core.Text(command + " -> " + src.ReplyText()))
		assert.Neq(t, src.ReplyText(), "", assert.NoAbort())
	}
}

func (Tests) announce(t utester.TestContext) {
	rec := utester.WithRecords(t)
	err := rec.Scope(func() {
		if _, err := utester.ExecuteByConsole(t, "!!calc announce server restarts soon"); err != nil {
			t.Fail(err)
		}
	})
	if err != nil {
		t.Fail(err)
	}

	rec.RequireSaid(t, []core.Message{
		core.NewRText("server restarts soon", core.ColorGold, core.StyleBold),
	})
	assert.Eq(t, len(rec.Told()), 1)
}

func (Tests) announceFromPlayer(t utester.TestContext) {
	rec := utester.WithRecords(t)
	err := rec.Scope(func() {
		if _, err := utester.ExecuteByPlayer(t, "Alex", "!!calc announce hello world"); err != nil {
			t.Fail(err)
		}
	})
	if err != nil {
		t.Fail(err)
	}

	rec.RequireSaid(t, []core.Message{core.Text("hello world")})
	rec.RequireToldTo(t, "alex", []core.Message{
		core.Text("hello world"),
		core.Text("announced"),
	}, recorder.AllowExtra(false))
	rec.RequireToldTo(t, "alex", []core.Message{core.Text("announced")}, recorder.IncludeSay(false))
}
