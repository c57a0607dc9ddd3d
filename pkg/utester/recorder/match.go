package recorder

import (
	"fmt"
	"strings"

	"utester/pkg/utester/core"
)

type matchOptions struct {
	allowExtra bool
	includeSay bool
}

type MatchOption func(*matchOptions)

// AllowExtra controls whether recorded entries that are not expected may
// appear. Defaults to true. When false the recorded stream must equal the
// expected one exactly.
func AllowExtra(allow bool) MatchOption {
	return func(o *matchOptions) {
		o.allowExtra = allow
	}
}

// IncludeSay controls whether broadcasts count as messages told to a player.
// Defaults to true.
func IncludeSay(include bool) MatchOption {
	return func(o *matchOptions) {
		o.includeSay = include
	}
}

func newMatchOptions(opts []MatchOption) matchOptions {
	o := matchOptions{allowExtra: true, includeSay: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Reports whether want appears in got in order. A single cursor walks got;
// entries skipped on the way are extras.
func subsequence[W any, G any](want []W, got []G, eq func(W, G) bool, allowExtra bool) bool {
	i := 0
	for _, w := range want {
		for {
			if i >= len(got) {
				return false
			}
			g := got[i]
			i++
			if eq(w, g) {
				break
			}
			if !allowExtra {
				return false
			}
		}
	}
	if !allowExtra && len(want) != len(got) {
		return false
	}
	return true
}

// Rich recorded messages match plain expectations by their text and rich
// expectations structurally. Plain recorded messages only match plain
// expectations.
func messageMatches(want core.Message, got core.Message) bool {
	wantRich, wantIsRich := want.(core.RText)
	if gotRich, ok := got.(core.RText); ok {
		if wantIsRich {
			return wantRich.Equal(gotRich)
		}
		return want.PlainText() == gotRich.PlainText()
	}
	return !wantIsRich && want.PlainText() == got.PlainText()
}

// AssertExecuted reports whether commands were executed in this order.
func (r *Recorder) AssertExecuted(commands []string, opts ...MatchOption) bool {
	o := newMatchOptions(opts)
	return subsequence(commands, r.Executed(), func(w, g string) bool {
		return w == g
	}, o.allowExtra)
}

// Returns the messages told to player, compared case-insensitively, and
// optionally the broadcasts.
func (r *Recorder) toldTo(player string, includeSay bool) []core.Message {
	var messages []core.Message
	for _, t := range r.Told() {
		if t.Broadcast {
			if includeSay {
				messages = append(messages, t.Message)
			}
			continue
		}
		if strings.EqualFold(t.Target, player) {
			messages = append(messages, t.Message)
		}
	}
	return messages
}

// AssertToldTo reports whether messages were told to player in this order.
func (r *Recorder) AssertToldTo(player string, messages []core.Message, opts ...MatchOption) bool {
	o := newMatchOptions(opts)
	return subsequence(messages, r.toldTo(player, o.includeSay), messageMatches, o.allowExtra)
}

// AssertSaid reports whether messages were broadcast in this order.
func (r *Recorder) AssertSaid(messages []core.Message, opts ...MatchOption) bool {
	o := newMatchOptions(opts)
	return subsequence(messages, r.Said(), messageMatches, o.allowExtra)
}

// RequireExecuted fails t unless AssertExecuted holds.
func (r *Recorder) RequireExecuted(t core.TestContext, commands []string, opts ...MatchOption) bool {
	got := r.Executed()
	return t.Assert(r.AssertExecuted(commands, opts...), core.Assertion{
		Want:    commands,
		Got:     got,
		Message: fmt.Sprintf("want executed %q, got %q", commands, got),
	})
}

// RequireToldTo fails t unless AssertToldTo holds.
func (r *Recorder) RequireToldTo(t core.TestContext, player string, messages []core.Message, opts ...MatchOption) bool {
	got := r.toldTo(player, newMatchOptions(opts).includeSay)
	return t.Assert(r.AssertToldTo(player, messages, opts...), core.Assertion{
		Want:    messages,
		Got:     got,
		Message: fmt.Sprintf("want told to %s %s, got %s", player, plainList(messages), plainList(got)),
	})
}

// RequireSaid fails t unless AssertSaid holds.
func (r *Recorder) RequireSaid(t core.TestContext, messages []core.Message, opts ...MatchOption) bool {
	got := r.Said()
	return t.Assert(r.AssertSaid(messages, opts...), core.Assertion{
		Want:    messages,
		Got:     got,
		Message: fmt.Sprintf("want said %s, got %s", plainList(messages), plainList(got)),
	})
}

func plainList(messages []core.Message) string {
	texts := make([]string, len(messages))
	for i, m := range messages {
		texts[i] = m.PlainText()
	}
	return fmt.Sprintf("%q", texts)
}
