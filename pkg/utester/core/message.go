package core

import (
	"slices"
	"strings"

	"github.com/fatih/color"
)

// Message is anything the host can deliver to a command source or a player.
type Message interface {
	// Returns the message without any formatting.
	PlainText() string
}

// Text is an unformatted message.
type Text string

func (t Text) PlainText() string {
	return string(t)
}

type Color string

const (
	ColorNone        Color = ""
	ColorBlack       Color = "black"
	ColorDarkBlue    Color = "dark_blue"
	ColorDarkGreen   Color = "dark_green"
	ColorDarkAqua    Color = "dark_aqua"
	ColorDarkRed     Color = "dark_red"
	ColorDarkPurple  Color = "dark_purple"
	ColorGold        Color = "gold"
	ColorGray        Color = "gray"
	ColorDarkGray    Color = "dark_gray"
	ColorBlue        Color = "blue"
	ColorGreen       Color = "green"
	ColorAqua        Color = "aqua"
	ColorRed         Color = "red"
	ColorLightPurple Color = "light_purple"
	ColorYellow      Color = "yellow"
	ColorWhite       Color = "white"
)

func (c Color) attributes() []color.Attribute {
	switch c {
	case ColorBlack:
		return []color.Attribute{color.FgBlack}
	case ColorDarkBlue:
		return []color.Attribute{color.FgBlue}
	case ColorDarkGreen:
		return []color.Attribute{color.FgGreen}
	case ColorDarkAqua:
		return []color.Attribute{color.FgCyan}
	case ColorDarkRed:
		return []color.Attribute{color.FgRed}
	case ColorDarkPurple:
		return []color.Attribute{color.FgMagenta}
	case ColorGold:
		return []color.Attribute{color.FgYellow}
	case ColorGray:
		return []color.Attribute{color.FgWhite}
	case ColorDarkGray:
		return []color.Attribute{color.FgHiBlack}
	case ColorBlue:
		return []color.Attribute{color.FgHiBlue}
	case ColorGreen:
		return []color.Attribute{color.FgHiGreen}
	case ColorAqua:
		return []color.Attribute{color.FgHiCyan}
	case ColorRed:
		return []color.Attribute{color.FgHiRed}
	case ColorLightPurple:
		return []color.Attribute{color.FgHiMagenta}
	case ColorYellow:
		return []color.Attribute{color.FgHiYellow}
	case ColorWhite:
		return []color.Attribute{color.FgHiWhite}
	default:
		return nil
	}
}

type Style string

const (
	StyleBold          Style = "bold"
	StyleItalic        Style = "italic"
	StyleUnderlined    Style = "underlined"
	StyleStrikethrough Style = "strikethrough"
	StyleObfuscated    Style = "obfuscated"
)

func (s Style) attribute() (color.Attribute, bool) {
	switch s {
	case StyleBold:
		return color.Bold, true
	case StyleItalic:
		return color.Italic, true
	case StyleUnderlined:
		return color.Underline, true
	case StyleStrikethrough:
		return color.CrossedOut, true
	case StyleObfuscated:
		return color.Concealed, true
	default:
		return 0, false
	}
}

// RText is a formatted message. Two RText values are the same message when
// their JSON objects are equal, so style order does not matter.
type RText struct {
	Text   string
	Color  Color
	Styles []Style
}

func NewRText(text string, c Color, styles ...Style) RText {
	return RText{Text: text, Color: c, Styles: styles}
}

func (t RText) PlainText() string {
	return t.Text
}

func (t RText) hasStyle(s Style) bool {
	return slices.Contains(t.Styles, s)
}

// JSONObject returns the chat component object describing this message.
func (t RText) JSONObject() map[string]any {
	obj := map[string]any{"text": t.Text}
	if t.Color != ColorNone {
		obj["color"] = string(t.Color)
	}
	for _, s := range []Style{StyleBold, StyleItalic, StyleUnderlined, StyleStrikethrough, StyleObfuscated} {
		if t.hasStyle(s) {
			obj[string(s)] = true
		}
	}
	return obj
}

// Equal reports whether both messages serialise to the same object.
func (t RText) Equal(other RText) bool {
	a, b := t.JSONObject(), other.JSONObject()
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// Render returns the message with ANSI escape codes applied.
func (t RText) Render() string {
	attrs := t.Color.attributes()
	for _, s := range t.Styles {
		if a, ok := s.attribute(); ok {
			attrs = append(attrs, a)
		}
	}
	if len(attrs) == 0 {
		return t.Text
	}
	return color.New(attrs...).Sprint(t.Text)
}

// Render returns the terminal form of any message.
func Render(msg Message) string {
	if r, ok := msg.(RText); ok {
		return r.Render()
	}
	return msg.PlainText()
}

// JoinPlainText flattens a list of messages into one newline separated blob.
func JoinPlainText(messages []Message) string {
	lines := make([]string, len(messages))
	for i, m := range messages {
		lines[i] = m.PlainText()
	}
	return strings.Join(lines, "\n")
}
