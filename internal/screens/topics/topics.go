package topics

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/balazsv/quizdeck/internal/bank"
	"github.com/balazsv/quizdeck/internal/catalog"
	"github.com/balazsv/quizdeck/internal/config"
	"github.com/balazsv/quizdeck/internal/ident"
	"github.com/balazsv/quizdeck/internal/router"
	"github.com/balazsv/quizdeck/internal/screen"
	"github.com/balazsv/quizdeck/internal/screens/questions"
	"github.com/balazsv/quizdeck/internal/store"
	"github.com/balazsv/quizdeck/internal/transfer"
	"github.com/balazsv/quizdeck/internal/ui/components"
	"github.com/balazsv/quizdeck/internal/ui/layout"
	"github.com/balazsv/quizdeck/internal/ui/theme"
)

// exportedMsg is sent when a topics export finished.
type exportedMsg struct {
	Path string
	Err  error
}

// openFailedMsg is sent when a topic's question bank could not load.
type openFailedMsg struct {
	Err error
}

type promptKind int

const (
	promptNone promptKind = iota
	promptNewTopic
	promptImportPath
)

// TopicsScreen lists the topic catalog and is the application root.
type TopicsScreen struct {
	cat   *catalog.Catalog
	kv    store.KV
	alloc *ident.Allocator
	cfg   config.Config

	menu       components.Menu
	prompt     components.Prompt
	promptFor  promptKind
	confirm    components.Confirm
	confirmID  int64
	status      string
	statusIsErr bool
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.EscHandler = (*TopicsScreen)(nil)

// New creates the topics screen over the loaded catalog.
func New(cat *catalog.Catalog, kv store.KV, alloc *ident.Allocator, cfg config.Config) *TopicsScreen {
	s := &TopicsScreen{cat: cat, kv: kv, alloc: alloc, cfg: cfg}
	s.menu = components.NewMenu(s.menuItems())
	return s
}

func (s *TopicsScreen) Init() tea.Cmd {
	return nil
}

func (s *TopicsScreen) Title() string {
	return "Topics"
}

func (s *TopicsScreen) HandlesEsc() bool {
	return s.prompt.IsOpen() || s.confirm.IsOpen()
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	if s.prompt.IsOpen() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.confirm.IsOpen() {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "N", Description: "New"},
		{Key: "X", Description: "Delete"},
		{Key: "O", Description: "Export"},
		{Key: "I", Description: "Import"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportedMsg:
		if msg.Err != nil {
			s.setStatus(fmt.Sprintf("export failed: %v", msg.Err), true)
		} else {
			s.setStatus(fmt.Sprintf("exported to %s", msg.Path), false)
		}
		return s, nil

	case openFailedMsg:
		s.setStatus(fmt.Sprintf("open failed: %v", msg.Err), true)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *TopicsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.prompt.IsOpen() {
		switch key {
		case "enter":
			value := s.prompt.Value()
			kind := s.promptFor
			s.prompt.Close()
			s.promptFor = promptNone
			if value == "" {
				return s, nil
			}
			switch kind {
			case promptNewTopic:
				if _, err := s.cat.Create(value); err != nil {
					s.setStatus(fmt.Sprintf("save failed: %v", err), true)
				}
				s.refreshMenu()
			case promptImportPath:
				s.importTopics(value)
			}
			return s, nil
		case "esc":
			s.prompt.Close()
			s.promptFor = promptNone
			return s, nil
		}
		var cmd tea.Cmd
		s.prompt, cmd = s.prompt.Update(msg)
		return s, cmd
	}

	if s.confirm.IsOpen() {
		switch key {
		case "y", "Y":
			s.confirm.Close()
			if err := s.cat.Delete(s.confirmID); err != nil {
				s.setStatus(fmt.Sprintf("delete failed: %v", err), true)
			}
			s.refreshMenu()
		case "n", "N", "esc":
			s.confirm.Close()
		}
		return s, nil
	}

	switch key {
	case "n":
		s.status = ""
		s.promptFor = promptNewTopic
		return s, s.prompt.Open("New topic", "")

	case "x":
		t, ok := s.selectedTopic()
		if !ok {
			return s, nil
		}
		s.status = ""
		s.confirmID = t.ID
		s.confirm.Open(fmt.Sprintf("Delete topic %q and its questions?", t.Label))
		return s, nil

	case "o":
		s.status = ""
		return s, s.exportTopics()

	case "i":
		s.status = ""
		s.promptFor = promptImportPath
		return s, s.prompt.Open("Import topics from file", "")
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// exportTopics writes the catalog to a timestamped JSON file.
func (s *TopicsScreen) exportTopics() tea.Cmd {
	topics := s.cat.Topics()
	dir := s.cfg.ExportDir
	return func() tea.Msg {
		data, err := transfer.ExportTopics(topics)
		if err != nil {
			return exportedMsg{Err: err}
		}
		path, err := transfer.WriteExport(dir, transfer.TopicsFilename(time.Now()), data)
		return exportedMsg{Path: path, Err: err}
	}
}

// importTopics replaces the catalog from a JSON file. Existing topics
// are untouched when the file does not validate.
func (s *TopicsScreen) importTopics(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		s.setStatus(fmt.Sprintf("import failed: %v", err), true)
		return
	}
	topics, err := transfer.ParseTopics(raw)
	if err != nil {
		s.setStatus("invalid import file", true)
		return
	}
	if err := s.cat.ReplaceAll(topics); err != nil {
		s.setStatus(fmt.Sprintf("import failed: %v", err), true)
		return
	}
	s.refreshMenu()
	s.setStatus(fmt.Sprintf("imported %d topics", len(topics)), false)
}

func (s *TopicsScreen) setStatus(text string, isErr bool) {
	s.status = text
	s.statusIsErr = isErr
}

func (s *TopicsScreen) selectedTopic() (catalog.Topic, bool) {
	topics := s.cat.Topics()
	if s.menu.Selected < 0 || s.menu.Selected >= len(topics) {
		return catalog.Topic{}, false
	}
	return topics[s.menu.Selected], true
}

// refreshMenu rebuilds the menu items after a catalog change, keeping
// the cursor in range.
func (s *TopicsScreen) refreshMenu() {
	selected := s.menu.Selected
	s.menu = components.NewMenu(s.menuItems())
	if selected >= len(s.menu.Items) {
		selected = len(s.menu.Items) - 1
	}
	if selected < 0 {
		selected = 0
	}
	s.menu.Selected = selected
}

func (s *TopicsScreen) menuItems() []components.MenuItem {
	topics := s.cat.Topics()
	items := make([]components.MenuItem, len(topics))
	for i, t := range topics {
		topic := t
		items[i] = components.MenuItem{
			Label:  topic.Label,
			Action: func() tea.Cmd { return s.openTopic(topic) },
		}
	}
	return items
}

// openTopic loads the topic's question bank and pushes the editor.
func (s *TopicsScreen) openTopic(t catalog.Topic) tea.Cmd {
	return func() tea.Msg {
		b, err := bank.Load(s.kv, s.alloc, t.ID)
		if err != nil {
			return openFailedMsg{Err: fmt.Errorf("topic %q: %w", t.Label, err)}
		}
		return router.PushScreenMsg{
			Screen: questions.New(t, b, s.cfg),
		}
	}
}

func (s *TopicsScreen) View(width, height int) string {
	if s.prompt.IsOpen() {
		return s.prompt.View(width, height)
	}
	if s.confirm.IsOpen() {
		return s.confirm.View(width, height)
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.cat.Len() == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No topics yet. Press N to create one."))
	} else {
		b.WriteString(s.menu.View())
	}

	if s.status != "" {
		c := theme.TextDim
		if s.statusIsErr {
			c = theme.Error
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(c).
			Render(s.status))
	}

	return b.String()
}
