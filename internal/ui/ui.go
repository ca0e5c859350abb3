package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	ArtistListView
	AlbumListView
	SongListView
	HistoryView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       tasks.Engine
	width        int
	height       int
	summary      *models.ReplaySummary
	artistList   list.Model
	albumList    list.Model
	songList     list.Model
	historyList  list.Model
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	fetchResult  *models.ReplaySummary
	fetchErr     error
	err          error
	help         help.Model
	keys         keyMap
}

type progressUpdateMsg tasks.ProgressUpdate

type summaryFetchedMsg struct {
	summary *models.ReplaySummary
	err     error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine tasks.Engine) *Model {
	return &Model{
		ctx:    ctx,
		view:   LoadingView,
		engine: engine,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init kicks off the replay data fetch.
func (m *Model) Init() tea.Cmd {
	return m.startFetch()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.artistList, &m.albumList, &m.songList, &m.historyList} {
			if l.Width() != 0 {
				l.SetSize(msg.Width-4, msg.Height-8)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case summaryFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summary = msg.summary
		m.buildLists()
		m.view = ArtistListView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case LoadingView:
		return m.renderLoading()
	case ArtistListView:
		return m.renderSection(m.artistList)
	case AlbumListView:
		return m.renderSection(m.albumList)
	case SongListView:
		return m.renderSection(m.songList)
	case HistoryView:
		return m.renderSection(m.historyList)
	default:
		return ""
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.summary != nil {
			m.view = m.nextSection()
		}
		return m, nil
	case "r":
		m.err = nil
		m.summary = nil
		m.view = LoadingView
		return m, m.startFetch()
	}

	return m.updateLists(msg)
}

// nextSection cycles artists → albums → songs → history → artists.
func (m *Model) nextSection() ViewState {
	switch m.view {
	case ArtistListView:
		return AlbumListView
	case AlbumListView:
		return SongListView
	case SongListView:
		return HistoryView
	default:
		return ArtistListView
	}
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ArtistListView:
		m.artistList, cmd = m.artistList.Update(msg)
	case AlbumListView:
		m.albumList, cmd = m.albumList.Update(msg)
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	case HistoryView:
		m.historyList, cmd = m.historyList.Update(msg)
	}
	return m, cmd
}

func (m *Model) buildLists() {
	artistItems := make([]list.Item, len(m.summary.Artists))
	for i, artist := range m.summary.Artists {
		artistItems[i] = artistItem{artist: artist}
	}
	m.artistList = m.newList(artistItems, fmt.Sprintf("Top Artists — %s", m.summary.Year))

	albumItems := make([]list.Item, len(m.summary.Albums))
	for i, album := range m.summary.Albums {
		albumItems[i] = albumItem{album: album}
	}
	m.albumList = m.newList(albumItems, fmt.Sprintf("Top Albums — %s", m.summary.Year))

	songItems := make([]list.Item, len(m.summary.Songs))
	for i, song := range m.summary.Songs {
		songItems[i] = songItem{song: song}
	}
	m.songList = m.newList(songItems, fmt.Sprintf("Top Songs — %s", m.summary.Year))

	historyItems := make([]list.Item, len(m.summary.RecentTracks))
	for i, track := range m.summary.RecentTracks {
		historyItems[i] = recentItem{track: track}
	}
	m.historyList = m.newList(historyItems, "Recently Played")
}

func (m *Model) newList(items []list.Item, title string) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetSize(m.width-4, m.height-8)
	return l
}

func (m *Model) startFetch() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		summary, err := m.engine.GetReplayData(m.ctx, m.progressChan)
		m.fetchResult = summary
		m.fetchErr = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return summaryFetchedMsg{summary: m.fetchResult, err: m.fetchErr}
		}

		update, ok := <-m.progressChan
		if !ok {
			return summaryFetchedMsg{summary: m.fetchResult, err: m.fetchErr}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderLoading() string {
	title := styles.title.Render("Fetching Apple Music Replay")

	message := m.progress.Message
	if message == "" {
		message = "Contacting catalog API..."
	}

	helpView := styles.help.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, message, helpView)
}

func (m *Model) renderSection(l list.Model) string {
	helpView := styles.help.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	return fmt.Sprintf("%s\n\n%s", l.View(), helpView)
}
