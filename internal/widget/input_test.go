package widget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputState_SendEnabledIffWithinLimit(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		enable bool
		over   bool
	}{
		{"empty", "", false, false},
		{"one char", "a", true, false},
		{"whitespace counts as typed", "   ", true, false},
		{"just under", strings.Repeat("a", 499), true, false},
		{"at limit", strings.Repeat("a", 500), true, false},
		{"over limit", strings.Repeat("a", 501), false, true},
		{"multibyte at limit", strings.Repeat("é", 500), true, false},
		{"multibyte over limit", strings.Repeat("é", 501), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, _ := newTestWidget()
			in := w.OnInputChanged(tt.text)

			assert.Equal(t, tt.enable, in.CanSend())
			assert.Equal(t, tt.over, in.IsOverLimit())
			assert.Equal(t, tt.text, in.Buffer, "input is never truncated")
		})
	}
}

func TestInputState_NearLimit(t *testing.T) {
	w, _, _ := newTestWidget()

	assert.False(t, w.OnInputChanged(strings.Repeat("a", 450)).NearLimit())
	assert.True(t, w.OnInputChanged(strings.Repeat("a", 451)).NearLimit())
	assert.True(t, w.OnInputChanged(strings.Repeat("a", 600)).NearLimit())
	assert.False(t, w.OnInputChanged("").NearLimit())
}
