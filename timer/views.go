package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/burhanahmeed/tempo/internal/engine"
	"github.com/burhanahmeed/tempo/internal/timeutil"
)

// remainingFraction returns how much of the current session is left, in
// the range [0, 1].
func (t *Timer) remainingFraction() float64 {
	sess := t.engine.Session()

	minutes := t.Opts.Settings.WorkMinutes
	if sess.Kind == engine.Break {
		minutes = t.Opts.Settings.BreakMinutes
	}

	total := minutes * 60
	if total == 0 {
		return 0
	}

	left := sess.RemainingMinutes*60 + sess.RemainingSeconds

	return float64(left) / float64(total)
}

func (t *Timer) kindBadge() string {
	if t.engine.Session().Kind == engine.Break {
		return t.style.Break.Render()
	}

	return t.style.Work.Render()
}

func (t *Timer) musicView() string {
	if !t.Opts.Settings.MusicOn {
		return t.style.Hint.SetString("music off").String()
	}

	track, ok := t.controller.Current()
	if !ok {
		return t.style.Hint.SetString("music on (playlist empty)").String()
	}

	state := "paused"
	if t.controller.IsPlaying() {
		state = "playing"
	}

	return strings.TrimSpace(
		t.style.Hint.SetString(
			fmt.Sprintf(
				"♪ %s (%s, vol %d%%)",
				track.Title,
				state,
				int(t.Opts.Settings.MusicVolume*100),
			),
		).String(),
	)
}

func (t *Timer) timerView() string {
	var s strings.Builder

	sess := t.engine.Session()

	s.WriteString(t.kindBadge())

	if title := t.activeTaskTitle(); title != "" {
		s.WriteString(" " + t.style.Secondary.SetString(title).String())
	}

	if !sess.Running {
		s.WriteString(" " + t.style.Hint.SetString("[paused]").String())
	}

	s.WriteString("\n\n")
	s.WriteString(
		t.style.Main.SetString(
			timeutil.FormatMinsAndSecs(
				sess.RemainingMinutes,
				sess.RemainingSeconds,
			),
		).String(),
	)
	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(1 - t.remainingFraction()))
	s.WriteString("\n\n")
	s.WriteString(t.musicView())
	s.WriteString("\n\n")
	s.WriteString(t.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.switchKind,
		defaultKeymap.reset,
		defaultKeymap.music,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (t *Timer) View() string {
	if t.quitting {
		return ""
	}

	if t.confirm != nil {
		return t.style.Base.Render(t.confirm.View())
	}

	return t.style.Base.Render(t.timerView())
}
