package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/export"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/Veraticus/poultry-receipt/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// State represents the current screen of the TUI.
type State int

const (
	StateForm State = iota
	StatePreview
)

// statusTTL is how long a status toast stays visible.
const statusTTL = 3 * time.Second

// Fixed fields come before the bill rows in focus order.
const (
	focusDate = iota
	focusWeight
	focusRate
	fixedFields
)

// billRow is the pair of inputs editing one previous bill.
type billRow struct {
	date   textinput.Model
	amount textinput.Model
	id     billing.BillID
}

// Model holds the receipt form state.
type Model struct {
	ctx          context.Context
	theme        themes.Theme
	session      *billing.Session
	service      *export.Service
	renderer     *lipgloss.Renderer
	status       *status
	receiptTheme string
	themeNames   []string
	bills        []billRow
	date         textinput.Model
	weight       textinput.Model
	rate         textinput.Model
	spinner      spinner.Model
	help         help.Model
	keymap       KeyMap
	config       Config
	statusSeq    int
	focus        int
	width        int
	height       int
	state        State
	sharing      bool
	quitting     bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	session := cfg.Session
	if session == nil {
		session = billing.NewSession()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	h := help.New()
	h.ShowAll = false

	m := Model{
		ctx:          ctx,
		config:       cfg,
		theme:        cfg.Theme,
		session:      session,
		service:      cfg.Service,
		renderer:     cfg.Renderer,
		receiptTheme: cfg.ReceiptTheme,
		themeNames:   receipt.ThemeNames(),
		keymap:       DefaultKeyMap(),
		spinner:      s,
		help:         h,
		width:        cfg.Width,
		height:       cfg.Height,
		state:        StateForm,
	}
	m.loadInputs()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Input returns a snapshot of the receipt being edited.
func (m Model) Input() billing.ReceiptInput {
	return m.session.Input()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case shareResultMsg:
		cmd := m.handleShareResult(msg)
		return m, cmd

	case statusExpiredMsg:
		if m.status != nil && m.status.id == msg.id {
			m.status = nil
		}
		return m, nil

	case spinner.TickMsg:
		if !m.sharing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == StateForm {
		cmd := m.updateFocused(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey handles keys for the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.NewReceipt):
		m.session.Reset()
		m.loadInputs()
		m.state = StateForm
		cmd := m.setStatus("Started a new receipt", StatusInfo)
		return m, cmd
	}

	if m.state == StatePreview {
		return m.handlePreviewKey(msg)
	}
	return m.handleFormKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Next):
		m.setFocus(m.focus + 1)
		return m, nil

	case key.Matches(msg, m.keymap.Prev):
		m.setFocus(m.focus - 1)
		return m, nil

	case key.Matches(msg, m.keymap.AddBill):
		id := m.session.AddBill()
		m.bills = append(m.bills, m.newBillRow(id, m.billDate(id), ""))
		m.setFocus(fixedFields + 2*(len(m.bills)-1) + 1)
		return m, nil

	case key.Matches(msg, m.keymap.RemoveBill):
		row, ok := m.focusedBill()
		if !ok {
			cmd := m.setStatus("Move to a previous bill to remove it", StatusWarning)
			return m, cmd
		}
		m.session.RemoveBill(m.bills[row].id)
		m.bills = append(m.bills[:row:row], m.bills[row+1:]...)
		m.setFocus(min(m.focus, m.fieldCount()-1))
		return m, nil

	case key.Matches(msg, m.keymap.ClearDate):
		m.session.ClearDate()
		m.date.SetValue("")
		return m, nil

	case key.Matches(msg, m.keymap.Generate):
		if !m.session.Input().CanIssue() {
			cmd := m.setStatus("Enter the weight and the rate to generate the receipt", StatusWarning)
			return m, cmd
		}
		m.state = StatePreview
		return m, nil
	}

	cmd := m.updateFocused(msg)
	return m, cmd
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Back):
		m.state = StateForm
		return m, nil

	case key.Matches(msg, m.keymap.CycleTheme):
		m.receiptTheme = m.nextTheme()
		return m, nil

	case key.Matches(msg, m.keymap.Share):
		if m.sharing {
			return m, nil
		}
		if m.service == nil {
			cmd := m.setStatus("Sharing is not configured", StatusWarning)
			return m, cmd
		}
		m.sharing = true
		m.status = &status{text: "Sharing receipt...", kind: StatusInfo, id: m.nextStatusID()}
		return m, tea.Batch(m.spinner.Tick, m.shareCmd())
	}
	return m, nil
}

// shareCmd runs the share off the update loop.
func (m Model) shareCmd() tea.Cmd {
	svc, ctx := m.service, m.ctx
	in, theme := m.session.Input(), m.receiptTheme
	return func() tea.Msg {
		issued, err := svc.Share(ctx, in, theme)
		return shareResultMsg{issued: issued, err: err}
	}
}

func (m *Model) handleShareResult(msg shareResultMsg) tea.Cmd {
	m.sharing = false

	switch {
	case errors.Is(msg.err, export.ErrCancelled):
		m.status = nil
		return nil
	case errors.Is(msg.err, export.ErrUnsupported):
		return m.setStatus("Sharing is not supported on this device", StatusWarning)
	case errors.Is(msg.err, export.ErrShareInProgress):
		return m.setStatus("A share is already in progress", StatusWarning)
	case msg.err != nil:
		return m.setStatus("Could not share the receipt: "+msg.err.Error(), StatusError)
	}

	text := "Receipt shared via " + m.service.Target()
	if msg.issued.Entry != nil {
		text += fmt.Sprintf(" (#%s)", msg.issued.Entry.ID.String()[:8])
	}
	return m.setStatus(text, StatusSuccess)
}

// updateFocused forwards a message to the focused input and stores the
// edited value in the session.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	in := m.input(m.focus)
	if in == nil {
		return nil
	}
	before := in.Value()

	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if in.Value() != before {
		m.store(m.focus, in.Value())
	}
	return cmd
}

// store writes one field into the session.
func (m *Model) store(field int, value string) {
	switch field {
	case focusDate:
		m.session.SetDate(strings.TrimSpace(value))
	case focusWeight:
		m.session.SetWeight(value)
	case focusRate:
		m.session.SetRate(value)
	default:
		j := field - fixedFields
		row := m.bills[j/2]
		f := billing.FieldDate
		if j%2 == 1 {
			f = billing.FieldAmount
		}
		m.session.UpdateBill(row.id, f, strings.TrimSpace(value))
	}
}

// input returns the input behind a focus index.
func (m *Model) input(field int) *textinput.Model {
	switch field {
	case focusDate:
		return &m.date
	case focusWeight:
		return &m.weight
	case focusRate:
		return &m.rate
	}
	j := field - fixedFields
	if j < 0 || j/2 >= len(m.bills) {
		return nil
	}
	if j%2 == 0 {
		return &m.bills[j/2].date
	}
	return &m.bills[j/2].amount
}

func (m *Model) fieldCount() int {
	return fixedFields + 2*len(m.bills)
}

// setFocus moves the cursor, wrapping at both ends.
func (m *Model) setFocus(field int) {
	n := m.fieldCount()
	field = ((field % n) + n) % n

	for i := 0; i < n; i++ {
		m.input(i).Blur()
	}
	m.focus = field
	m.input(field).Focus()
}

// focusedBill returns the index of the bill row holding the cursor.
func (m Model) focusedBill() (int, bool) {
	if m.focus < fixedFields {
		return 0, false
	}
	return (m.focus - fixedFields) / 2, true
}

// loadInputs rebuilds every input from the session.
func (m *Model) loadInputs() {
	in := m.session.Input()

	m.date = newInput("YYYY-MM-DD", 10)
	m.date.SetValue(in.Date)
	m.weight = newInput("0.0", 12)
	m.weight.SetValue(in.Weight.String())
	m.rate = newInput("0", 12)
	m.rate.SetValue(in.Rate.String())

	m.bills = make([]billRow, 0, len(in.PreviousBills))
	for _, b := range in.PreviousBills {
		m.bills = append(m.bills, m.newBillRow(b.ID, b.Date, b.Amount.String()))
	}
	m.setFocus(focusDate)
}

func (m *Model) newBillRow(id billing.BillID, date, amount string) billRow {
	row := billRow{
		id:     id,
		date:   newInput("YYYY-MM-DD", 10),
		amount: newInput("0", 12),
	}
	row.date.SetValue(date)
	row.amount.SetValue(amount)
	return row
}

func (m *Model) billDate(id billing.BillID) string {
	for _, b := range m.session.Input().PreviousBills {
		if b.ID == id {
			return b.Date
		}
	}
	return ""
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = limit + 1
	return in
}

func (m Model) nextTheme() string {
	for i, name := range m.themeNames {
		if name == m.receiptTheme {
			return m.themeNames[(i+1)%len(m.themeNames)]
		}
	}
	return m.themeNames[0]
}

func (m *Model) nextStatusID() int {
	m.statusSeq++
	return m.statusSeq
}

// setStatus shows a toast and schedules its removal.
func (m *Model) setStatus(text string, kind StatusKind) tea.Cmd {
	id := m.nextStatusID()
	m.status = &status{text: text, kind: kind, id: id}
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}
