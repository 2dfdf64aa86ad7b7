package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel(LevelWarn)

	tests := []struct {
		level   string
		debugOn bool
		infoOn  bool
		errorOn bool
	}{
		{LevelDebug, true, true, true},
		{LevelInfo, false, true, true},
		{LevelWarn, false, false, true},
		{LevelError, false, false, true},
		{"bogus", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			SetLevel(tt.level)
			assert.Equal(t, tt.debugOn, Enabled(LevelDebug))
			assert.Equal(t, tt.infoOn, Enabled(LevelInfo))
			assert.Equal(t, tt.errorOn, Enabled(LevelError))
		})
	}
}

func TestEnabledUnknownLevel(t *testing.T) {
	assert.False(t, Enabled("verbose"))
}

type recordingLogger struct {
	msgs []string
}

func (r *recordingLogger) Debugf(format string, _ ...any) { r.msgs = append(r.msgs, "D:"+format) }
func (r *recordingLogger) Infof(format string, _ ...any)  { r.msgs = append(r.msgs, "I:"+format) }
func (r *recordingLogger) Warnf(format string, _ ...any)  { r.msgs = append(r.msgs, "W:"+format) }
func (r *recordingLogger) Errorf(format string, _ ...any) { r.msgs = append(r.msgs, "E:"+format) }

func TestHelpersDelegateToDefault(t *testing.T) {
	orig := Default
	defer func() { Default = orig }()

	rec := &recordingLogger{}
	Default = rec

	Debugf("d")
	Infof("i")
	Warnf("w")
	Errorf("e")

	assert.Equal(t, []string{"D:d", "I:i", "W:w", "E:e"}, rec.msgs)
}
