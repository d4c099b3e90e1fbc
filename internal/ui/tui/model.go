package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nsedgwick/renum/internal/event"
	"github.com/nsedgwick/renum/internal/stats"
	"github.com/nsedgwick/renum/internal/ui"
)

const maxFeedLines = 500

// Bubble Tea messages.
type engineEventMsg event.Event
type channelDoneMsg struct{}
type tickMsg time.Time

// readNextEvent returns a tea.Cmd that blocks on the event channel.
func readNextEvent(ch <-chan event.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return channelDoneMsg{}
		}
		return engineEventMsg(ev)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// feedLine is one rendered entry in the scrolling feed.
type feedLine struct {
	icon string
	text string
}

// Model is the root Bubble Tea model.
type Model struct {
	events  <-chan event.Event
	stats   stats.ReadTicker
	pattern string
	shift   int64

	bar    progress.Model
	feed   []feedLine
	width  int
	height int
	phase  int
	done   bool

	lastSnap stats.Snapshot
}

// NewModel creates a new TUI model.
func NewModel(events <-chan event.Event, collector stats.ReadTicker, pattern string, shift int64) Model {
	bar := progress.New(
		progress.WithSolidFill(string(ColorGreen)),
		progress.WithoutPercentage(),
	)
	return Model{
		events:  events,
		stats:   collector,
		pattern: pattern,
		shift:   shift,
		bar:     bar,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(readNextEvent(m.events), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(msg.Width-10, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case engineEventMsg:
		m.handleEvent(event.Event(msg))
		return m, readNextEvent(m.events)

	case channelDoneMsg:
		m.done = true
		m.lastSnap = m.stats.Snapshot()
		return m, nil

	case tickMsg:
		m.stats.Tick()
		m.lastSnap = m.stats.Snapshot()
		if m.done {
			return m, nil
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.PhaseStarted:
		m.phase = ev.Phase

	case event.FileRenamed:
		m.pushFeed(feedLine{
			icon: styleIconDone.Render("✓"),
			text: renderMove(ev.Path, ev.Target),
		})

	case event.DryRunMove:
		if ev.Phase != 2 {
			return
		}
		m.pushFeed(feedLine{
			icon: styleIconDone.Render("✓"),
			text: renderMove(ev.Path, ev.Target) + styleCounts.Render("  (dry run)"),
		})

	case event.FileSkipped:
		m.pushFeed(feedLine{
			icon: styleIconSkipped.Render("–"),
			text: styleError.Render(fmt.Sprintf("skipped: %v", ev.Error)),
		})

	case event.FileFailed:
		m.pushFeed(feedLine{
			icon: styleIconFailed.Render("✗"),
			text: styleError.Render(fmt.Sprintf("%s: %v", ev.Path, ev.Error)),
		})
	}

	m.lastSnap = m.stats.Snapshot()
}

func (m *Model) pushFeed(l feedLine) {
	m.feed = append(m.feed, l)
	if len(m.feed) > maxFeedLines {
		m.feed = m.feed[len(m.feed)-maxFeedLines:]
	}
}

func renderMove(from, to string) string {
	return styleFilePath.Render(from) + styleArrow.Render(" → ") + styleFilePath.Render(to)
}

func (m Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("renum  %s  shift %+d", m.pattern, m.shift)
	b.WriteString(styleHeader.Render(header))
	b.WriteByte('\n')
	b.WriteString(styleDivider.Render(strings.Repeat("─", max(m.width, 20))))
	b.WriteByte('\n')

	// Feed: show as many trailing lines as fit above the footer.
	avail := m.height - 7
	if avail < 1 {
		avail = 1
	}
	start := 0
	if len(m.feed) > avail {
		start = len(m.feed) - avail
	}
	for _, l := range m.feed[start:] {
		b.WriteString(l.icon)
		b.WriteString("  ")
		b.WriteString(l.text)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')

	snap := m.lastSnap
	b.WriteString(m.bar.ViewAs(snap.Percent()))
	b.WriteByte('\n')

	counts := fmt.Sprintf("%s / %s moves   %s renamed   %s skipped   %s failed",
		ui.FormatCount(snap.MovesDone), ui.FormatCount(snap.MovesTotal),
		ui.FormatCount(snap.FilesRenamed), ui.FormatCount(snap.FilesSkipped),
		ui.FormatCount(snap.FilesFailed))
	b.WriteString(styleCounts.Render(counts))
	b.WriteByte('\n')

	if m.done {
		b.WriteString(styleStatus.Render("complete — press q to exit"))
	} else {
		b.WriteString(styleKeybind.Render(fmt.Sprintf("phase %d   q quit", m.phase)))
	}
	b.WriteByte('\n')

	return b.String()
}
