package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/entropy-reduction/internal/core"
	"github.com/vovakirdan/entropy-reduction/internal/games/entropy"
	"github.com/vovakirdan/entropy-reduction/internal/games/entropy/levels"
	"github.com/vovakirdan/entropy-reduction/internal/storage"
)

// LevelSelection holds the user's selection from the level menu.
type LevelSelection struct {
	Level int // 0 = start from beginning, 1-based = specific level
}

// LevelSelectModel lets users choose a campaign starting level.
type LevelSelectModel struct {
	catalog   []levels.Level
	progress  map[string]storage.LevelResult
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection LevelSelection
	choosing  bool
	quitting  bool
	back      bool
}

// NewLevelSelectModel creates a new level selection model.
func NewLevelSelectModel(store *storage.Store, width, height int) LevelSelectModel {
	catalog, err := entropy.CampaignLevels()
	if err != nil {
		catalog = nil
	}

	progress := make(map[string]storage.LevelResult)
	if store != nil {
		if results, err := store.AllLevelProgress(); err == nil {
			for _, r := range results {
				progress[r.LevelID] = r
			}
		}
	}

	return LevelSelectModel{
		catalog:   catalog,
		progress:  progress,
		cursor:    0,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	// Cursor 0 is "start from beginning", then one row per level
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.catalog) {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = LevelSelection{Level: m.cursor}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the level selection.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	cursor := "  "
	if m.cursor == 0 {
		cursor = "> "
	}
	b.WriteString(centerText(cursor+"Start from beginning", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.catalog {
		cursor := "  "
		if m.cursor == i+1 {
			cursor = "> "
		}

		stars := "☆☆☆"
		if r, ok := m.progress[lvl.ID]; ok {
			stars = ""
			for s := 0; s < 3; s++ {
				if s < r.Stars {
					stars += "★"
				} else {
					stars += "☆"
				}
			}
		}

		line := fmt.Sprintf("%s%2d. %s  %s", cursor, i+1, lvl.Name, stars)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelSelectModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the campaign level selection and returns the
// selection, or nil on back/quit.
func RunLevelSelector(store *storage.Store, cfg core.RuntimeConfig) (*LevelSelection, core.RuntimeConfig, error) {
	model := NewLevelSelectModel(store, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
