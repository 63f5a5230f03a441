package widget

import "unicode/utf8"

// DefaultMaxChars is the input limit used when none is configured.
const DefaultMaxChars = 500

// nearLimitRatio is the fraction of MaxChars above which the counter warns.
const nearLimitRatio = 0.9

// InputState is the text currently in the input box. Over-limit text is kept
// as typed; only sending is blocked.
type InputState struct {
	Buffer   string
	Length   int
	MaxChars int
}

func newInputState(text string, maxChars int) InputState {
	return InputState{
		Buffer:   text,
		Length:   utf8.RuneCountInString(text),
		MaxChars: maxChars,
	}
}

func (s InputState) IsOverLimit() bool {
	return s.Length > s.MaxChars
}

func (s InputState) NearLimit() bool {
	return float64(s.Length) > float64(s.MaxChars)*nearLimitRatio
}

// CanSend reports whether the send control should be enabled.
func (s InputState) CanSend() bool {
	return s.Length > 0 && s.Length <= s.MaxChars
}

func (s InputState) IsEmpty() bool {
	return s.Length == 0
}
