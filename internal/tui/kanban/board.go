package kanban

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"kanbo/internal/kanban/models"
	"kanbo/internal/kanban/operations"
	"kanbo/internal/kanban/store"
	"kanbo/internal/tui/messages"
	"kanbo/internal/tui/theme"
)

// Store is the part of the board store the view drives
type Store interface {
	Snapshot() models.Board
	AddCard(ctx context.Context, columnID, content string) store.Result
	DeleteCard(ctx context.Context, columnID, cardID string) store.Result
	EditCard(ctx context.Context, cardID string, patch operations.CardPatch) store.Result
	ApplyDrop(ctx context.Context, drop operations.DropResult) store.Result
}

type boardMode int

const (
	boardModeNormal boardMode = iota
	boardModeDrag
	boardModeConfirmDelete
	boardModeNewCard
	boardModeEdit
	boardModeFilter
)

type mutation int

const (
	mutationAdd mutation = iota
	mutationEdit
	mutationDelete
	mutationDrop
)

// mutationResultMsg reports a finished store call back to the view
type mutationResultMsg struct {
	kind   mutation
	result store.Result
	// focusID is the card to select once the board is refreshed
	focusID string
}

type BoardModel struct {
	ctx                    context.Context
	store                  Store
	board                  models.Board
	selectedCol            int
	selectedCard           int
	mode                   boardMode
	width                  int
	height                 int
	err                    error
	message                string
	warning                bool
	newCard                *CardInputModel
	form                   *CardFormModel
	drag                   *dragState
	columnScrollOffsets    []int // scroll position (card index) for each column
	columnCursorPos        []int // cursor position (card index) for each column
	columnHorizontalOffset int   // horizontal scroll offset (first visible column index)
	filterInput            textinput.Model
	filterQuery            string
	filterActive           bool
	filteredIndices        [][]int // per-column: original card indices that match
}

func NewBoardModel(ctx context.Context, s Store) BoardModel {
	board := s.Snapshot()
	return BoardModel{
		ctx:                 ctx,
		store:               s,
		board:               board,
		mode:                boardModeNormal,
		columnScrollOffsets: make([]int, len(board.Columns)),
		columnCursorPos:     make([]int, len(board.Columns)),
	}
}

// SetSize updates the view dimensions
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.newCard != nil {
		m.newCard.width, m.newCard.height = width, height
	}
	if m.form != nil {
		m.form.width, m.form.height = width, height
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// SetBoard replaces the displayed board, keeping the cursor on the same card
// where it still exists
func (m *BoardModel) SetBoard(board models.Board) {
	focusID := m.selectedCardID()
	m.board = board

	if m.drag != nil {
		if col, _ := board.FindCard(m.drag.card.ID); col < 0 || m.drag.targetCol >= len(board.Columns) {
			m.drag = nil
			m.mode = boardModeNormal
			m.setWarning("Card is gone, move cancelled")
		} else {
			m.drag.targetIndex = min(m.drag.targetIndex, m.drag.maxIndex(board, m.drag.targetCol))
			m.selectedCol, m.selectedCard = m.drag.targetCol, m.drag.targetIndex
		}
	}

	m.reloadBoardState()
	if focusID != "" {
		m.focusCard(focusID)
	}
}

// Board returns the board currently displayed
func (m BoardModel) Board() models.Board {
	return m.board
}

// SetMessage shows a status message below the board
func (m *BoardModel) SetMessage(msg string) {
	m.message = msg
	m.warning = false
}

func (m *BoardModel) setWarning(msg string) {
	m.message = msg
	m.warning = true
}

// IsModal returns true if the board is in a mode that owns all keys
func (m BoardModel) IsModal() bool {
	return m.mode != boardModeNormal
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles board events as a child view
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.BoardChangedMsg:
		m.SetBoard(msg.Board)
		return m, nil

	case mutationResultMsg:
		return m.handleResult(msg), nil

	case tea.KeyMsg:
		switch m.mode {
		case boardModeNormal:
			return m.updateNormal(msg)
		case boardModeDrag:
			return m.updateDrag(msg)
		case boardModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case boardModeNewCard:
			return m.updateNewCard(msg)
		case boardModeEdit:
			return m.updateEdit(msg)
		case boardModeFilter:
			return m.updateFilter(msg)
		}
	}

	return m, nil
}

func (m BoardModel) updateNormal(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	m.message = ""
	m.err = nil

	switch msg.String() {
	case "esc":
		if m.filterActive {
			m.clearFilter()
		}

	case "/":
		ti := textinput.New()
		ti.Placeholder = "filter..."
		ti.CharLimit = 100
		ti.Width = 40
		ti.SetValue(m.filterQuery)
		ti.Focus()
		m.filterInput = ti
		m.mode = boardModeFilter
		m.selectedCard = 0
		m.setCursor()
		return m, textinput.Blink

	case "h", "left":
		if m.selectedCol > 0 {
			m.selectColumn(m.selectedCol - 1)
		}

	case "l", "right":
		if m.selectedCol < len(m.board.Columns)-1 {
			m.selectColumn(m.selectedCol + 1)
		}

	case "j", "down":
		if m.selectedCol < len(m.board.Columns) {
			maxCard := len(m.getVisibleCards(m.selectedCol)) - 1
			if m.selectedCard < maxCard {
				m.selectedCard++
				m.setCursor()
				m.adjustScrollPosition()
			}
		}

	case "k", "up":
		if m.selectedCard > 0 {
			m.selectedCard--
			m.setCursor()
			m.adjustScrollPosition()
		}

	case "g":
		m.selectedCard = 0
		m.setCursor()
		m.adjustScrollPosition()

	case "G":
		if m.selectedCol < len(m.board.Columns) {
			m.selectedCard = max(0, len(m.getVisibleCards(m.selectedCol))-1)
			m.setCursor()
			m.adjustScrollPosition()
		}

	case "m", " ":
		if m.hasSelectedCard() {
			return m.startDrag(), nil
		}

	case "enter":
		if m.hasSelectedCard() {
			return m.handleEdit()
		}

	case "n":
		return m.handleNew()

	case "D":
		if m.hasSelectedCard() {
			m.mode = boardModeConfirmDelete
		}
	}

	return m, nil
}

func (m *BoardModel) selectColumn(col int) {
	m.selectedCol = col
	// Restore saved cursor position
	m.selectedCard = m.columnCursorPos[col]
	visibleCount := len(m.getVisibleCards(col))
	if m.selectedCard >= visibleCount {
		m.selectedCard = max(0, visibleCount-1)
		m.setCursor()
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

func (m *BoardModel) setCursor() {
	if m.selectedCol < len(m.columnCursorPos) {
		m.columnCursorPos[m.selectedCol] = m.selectedCard
	}
}

func (m BoardModel) hasSelectedCard() bool {
	return m.selectedCol < len(m.board.Columns) && m.selectedCard < len(m.getVisibleCards(m.selectedCol))
}

// selectedCardID returns the id of the card under the cursor, or ""
func (m BoardModel) selectedCardID() string {
	if m.mode == boardModeDrag && m.drag != nil {
		return m.drag.card.ID
	}
	if !m.hasSelectedCard() {
		return ""
	}
	return m.getVisibleCards(m.selectedCol)[m.selectedCard].ID
}

func (m BoardModel) startDrag() BoardModel {
	realIdx := m.resolveCardIndex(m.selectedCol, m.selectedCard)
	m.drag = newDragState(m.board, m.selectedCol, realIdx)
	m.mode = boardModeDrag
	// the placeholder walks the unfiltered columns
	m.selectedCard = realIdx
	m.adjustScrollPosition()
	return m
}

func (m BoardModel) updateDrag(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	d := m.drag
	if d == nil {
		m.mode = boardModeNormal
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		return m.endDrag(d.cancel())

	case "enter", "m", " ":
		return m.endDrag(d.drop(m.board))

	case "h", "left":
		d.moveColumn(m.board, -1)
	case "l", "right":
		d.moveColumn(m.board, 1)
	case "j", "down":
		d.moveIndex(m.board, 1)
	case "k", "up":
		d.moveIndex(m.board, -1)
	case "g":
		d.targetIndex = 0
	case "G":
		d.targetIndex = d.maxIndex(m.board, d.targetCol)
	default:
		return m, nil
	}

	m.selectedCol = d.targetCol
	m.selectedCard = d.targetIndex
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
	return m, nil
}

func (m BoardModel) endDrag(drop operations.DropResult) (BoardModel, tea.Cmd) {
	m.drag = nil
	m.mode = boardModeNormal
	m.selectedCol = m.board.GetColumnIndex(drop.Source.ColumnID)
	if m.selectedCol < 0 {
		m.selectedCol = 0
	}
	m.reloadBoardState()
	m.focusCard(drop.DraggableID)

	return m, m.mutate(mutationDrop, drop.DraggableID, func(ctx context.Context, s Store) store.Result {
		return s.ApplyDrop(ctx, drop)
	})
}

func (m BoardModel) updateConfirmDelete(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.mode = boardModeNormal
		if !m.hasSelectedCard() {
			return m, nil
		}
		colID := m.board.Columns[m.selectedCol].ID
		cardID := m.selectedCardID()
		return m, m.mutate(mutationDelete, "", func(ctx context.Context, s Store) store.Result {
			return s.DeleteCard(ctx, colID, cardID)
		})

	case "n", "esc":
		m.mode = boardModeNormal
	}

	return m, nil
}

func (m BoardModel) handleNew() (BoardModel, tea.Cmd) {
	if m.selectedCol >= len(m.board.Columns) {
		return m, nil
	}
	input := NewCardInputModel(m.board.Columns[m.selectedCol].Title)
	input.width, input.height = m.width, m.height
	m.newCard = &input
	m.mode = boardModeNewCard
	return m, input.Init()
}

func (m BoardModel) updateNewCard(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	if m.newCard == nil {
		m.mode = boardModeNormal
		return m, nil
	}

	input, done, submitted, cmd := m.newCard.Update(msg)
	if !done {
		m.newCard = &input
		return m, cmd
	}

	m.newCard = nil
	m.mode = boardModeNormal
	if !submitted {
		return m, nil
	}

	colID := m.board.Columns[m.selectedCol].ID
	content := input.Content()
	return m, m.mutate(mutationAdd, "", func(ctx context.Context, s Store) store.Result {
		return s.AddCard(ctx, colID, content)
	})
}

func (m BoardModel) handleEdit() (BoardModel, tea.Cmd) {
	realIdx := m.resolveCardIndex(m.selectedCol, m.selectedCard)
	form := NewCardFormModel(m.board.Columns[m.selectedCol].Cards[realIdx])
	form.width, form.height = m.width, m.height
	m.form = &form
	m.mode = boardModeEdit
	return m, form.Init()
}

func (m BoardModel) updateEdit(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	if m.form == nil {
		m.mode = boardModeNormal
		return m, nil
	}

	form, state, cmd := m.form.Update(msg)
	switch state {
	case formCancelled:
		m.form = nil
		m.mode = boardModeNormal
		return m, nil

	case formSaved:
		m.form = nil
		m.mode = boardModeNormal
		patch, _ := form.Patch()
		if patch.IsEmpty() {
			m.SetMessage("No changes")
			return m, nil
		}
		cardID := form.CardID()
		return m, m.mutate(mutationEdit, cardID, func(ctx context.Context, s Store) store.Result {
			return s.EditCard(ctx, cardID, patch)
		})
	}

	m.form = &form
	return m, cmd
}

func (m BoardModel) updateFilter(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Lock filter and return to normal mode
		m.filterQuery = m.filterInput.Value()
		if m.filterQuery != "" {
			m.filterActive = true
			m.recomputeFilter()
			m.selectedCard = 0
			m.setCursor()
			m.adjustScrollPosition()
		} else {
			m.filterActive = false
			m.filteredIndices = nil
		}
		m.mode = boardModeNormal
		return m, nil

	case "esc":
		m.clearFilter()
		m.mode = boardModeNormal
		return m, nil

	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		// Live recompute
		m.filterQuery = m.filterInput.Value()
		if m.filterQuery != "" {
			m.filterActive = true
			m.recomputeFilter()
		} else {
			m.filterActive = false
			m.filteredIndices = nil
		}
		m.clampFilteredCursors()
		m.adjustScrollPosition()
		return m, cmd
	}
}

func (m *BoardModel) clearFilter() {
	m.filterQuery = ""
	m.filterActive = false
	m.filteredIndices = nil
	m.selectedCard = 0
	m.setCursor()
	m.adjustScrollPosition()
}

// mutate runs a store call off the update loop. Saves may hit the network.
func (m BoardModel) mutate(kind mutation, focusID string, call func(context.Context, Store) store.Result) tea.Cmd {
	ctx, s := m.ctx, m.store
	return func() tea.Msg {
		return mutationResultMsg{kind: kind, result: call(ctx, s), focusID: focusID}
	}
}

func (m BoardModel) handleResult(msg mutationResultMsg) BoardModel {
	res := msg.result

	m.SetBoard(m.store.Snapshot())
	focusID := msg.focusID
	if msg.kind == mutationAdd && res.Applied() {
		focusID = res.Card.ID
	}
	if focusID != "" {
		m.focusCard(focusID)
	}

	if !res.Applied() {
		m.err = nil
		m.setWarning(outcomeMessage(msg.kind, res.Outcome))
		return m
	}

	if res.SaveErr != nil {
		m.err = fmt.Errorf("change kept but not saved: %w", res.SaveErr)
		return m
	}

	m.err = nil
	switch msg.kind {
	case mutationAdd:
		m.SetMessage("Card added")
	case mutationEdit:
		m.SetMessage("Card updated")
	case mutationDelete:
		m.SetMessage("Card deleted")
	case mutationDrop:
		m.SetMessage("Card moved")
	}
	return m
}

func outcomeMessage(kind mutation, outcome operations.Outcome) string {
	switch outcome {
	case operations.OutcomeUnchanged:
		if kind == mutationDrop {
			return "Card is already there"
		}
		return "No changes"
	case operations.OutcomeCancelled:
		return "Move cancelled"
	case operations.OutcomeColumnNotFound:
		return "Column not found"
	case operations.OutcomeCardNotFound:
		return "Card not found"
	case operations.OutcomeStaleIndex:
		return "Board changed during the move, try again"
	case operations.OutcomeInvalid:
		if kind == mutationAdd {
			return "Card content cannot be empty"
		}
		return "Invalid value"
	}
	return "Not applied: " + outcome.String()
}

// focusCard moves the cursor to the card with the given id if it is visible
func (m *BoardModel) focusCard(cardID string) {
	if m.mode == boardModeDrag {
		return
	}
	for colIdx := range m.board.Columns {
		for i, card := range m.getVisibleCards(colIdx) {
			if card.ID != cardID {
				continue
			}
			m.selectedCol = colIdx
			m.selectedCard = i
			m.setCursor()
			m.adjustScrollPosition()
			m.adjustHorizontalScrollPosition()
			return
		}
	}
}

func (m BoardModel) View() string {
	if m.mode == boardModeNewCard && m.newCard != nil {
		return m.newCard.View()
	}
	if m.mode == boardModeEdit && m.form != nil {
		return m.form.View()
	}

	var s strings.Builder

	// Title with mode badge and color legend
	title := titleStyle.Render(fmt.Sprintf("Board (%d cards)", m.board.CardCount()))
	if m.mode == boardModeDrag {
		title += " " + modeIndicatorStyle(theme.Warning).Render("[MOVING]")
	}
	if legend := m.renderLegend(); legend != "" {
		title += "  " + legend
	}
	s.WriteString(title)
	s.WriteString("\n")

	// Filter bar
	if m.mode == boardModeFilter {
		s.WriteString("  / " + m.filterInput.View())
	} else if m.filterActive && m.mode != boardModeDrag {
		s.WriteString("  " + filterIndicatorStyle.Render("Filter: "+m.filterQuery))
	}
	s.WriteString("\n")

	totalFixedColumnHeight := m.columnHeight()

	// Render columns with fixed height and horizontal scrolling
	startCol, endCol := m.calculateVisibleColumns()
	visibleColumnViews := []string{}

	if startCol > 0 {
		visibleColumnViews = append(visibleColumnViews, m.renderScrollIndicator("◀", totalFixedColumnHeight))
	} else {
		visibleColumnViews = append(visibleColumnViews, m.renderScrollIndicator(" ", totalFixedColumnHeight))
	}

	for i := startCol; i < endCol; i++ {
		colView := m.renderColumn(i, m.board.Columns[i], m.getVisibleCards(i), totalFixedColumnHeight)
		visibleColumnViews = append(visibleColumnViews, colView)
	}

	if endCol < len(m.board.Columns) {
		visibleColumnViews = append(visibleColumnViews, m.renderScrollIndicator("▶", totalFixedColumnHeight))
	} else {
		visibleColumnViews = append(visibleColumnViews, m.renderScrollIndicator(" ", totalFixedColumnHeight))
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top, visibleColumnViews...)
	s.WriteString(lipgloss.Place(m.width, 0, lipgloss.Center, lipgloss.Top, columns))
	s.WriteString("\n")

	// Status message or error
	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n")
	} else if m.message != "" {
		style := successStyle
		if m.warning {
			style = warningStyle
		}
		s.WriteString(style.Render(m.message))
		s.WriteString("\n")
	}

	// Mode-specific help
	switch m.mode {
	case boardModeDrag:
		s.WriteString(helpStyle.Render("hjkl: move placeholder • enter: drop • esc: cancel"))
	case boardModeConfirmDelete:
		s.WriteString(warningStyle.Render("Delete this card? (y/n)"))
	case boardModeFilter:
		s.WriteString(helpStyle.Render("type to filter • enter: lock filter • esc: cancel"))
	default:
		helpText := "hjkl: navigate • m/space: move • enter: edit • n: new • D: delete • /: filter • ?: help • q: quit"
		if m.filterActive {
			helpText = "hjkl: navigate • m/space: move • enter: edit • /: edit filter • esc: clear filter"
		}
		s.WriteString(helpStyle.Render(helpText))
	}

	return s.String()
}

func (m BoardModel) renderLegend() string {
	tags := operations.CollectColorTags(m.board)
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, swatch(tag)+" "+cardPreviewStyle.Render(models.ColorLabel(tag)))
	}
	return strings.Join(parts, "  ")
}

func (m BoardModel) columnHeight() int {
	boardHeaderLines := 3
	statusLines := 3
	marginLines := 2

	h := m.height - boardHeaderLines - statusLines - marginLines
	if h < 10 {
		h = 10
	}
	return h
}

func (m BoardModel) renderColumn(index int, col models.Column, cards []models.Card, fixedHeight int) string {
	var s strings.Builder

	colTitleStyle := columnTitleStyle
	if index == m.selectedCol {
		colTitleStyle = selectedColumnTitleStyle
	}
	s.WriteString(colTitleStyle.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Cards))))
	s.WriteString("\n\n")

	style := columnStyle
	if index == m.selectedCol {
		style = selectedColumnStyle
		if m.mode == boardModeDrag {
			style = dropColumnStyle
		}
	}

	if len(cards) == 0 {
		s.WriteString(cardPreviewStyle.Render("(empty)"))
		s.WriteString("\n")
		return style.Height(fixedHeight).Render(s.String())
	}

	scrollOffset := 0
	if index < len(m.columnScrollOffsets) {
		scrollOffset = min(m.columnScrollOffsets[index], len(cards)-1)
	}

	// Top scroll indicator (always reserve space)
	if scrollOffset > 0 {
		s.WriteString(scrollIndicatorStyle.Render(fmt.Sprintf("▲ +%d cards above", scrollOffset)))
	}
	s.WriteString("\n\n")

	availableCardSpace := fixedHeight - 8

	cardsRendered := 0
	currentCardHeight := 0
	for i := scrollOffset; i < len(cards); i++ {
		cardView := m.renderCard(index, i, cards[i])
		cardHeight := lipgloss.Height(cardView)

		if cardsRendered > 0 && currentCardHeight+cardHeight > availableCardSpace {
			break
		}

		s.WriteString(cardView)
		s.WriteString("\n")
		cardsRendered++
		currentCardHeight += cardHeight
	}

	if cardsBelow := len(cards) - scrollOffset - cardsRendered; cardsBelow > 0 {
		s.WriteString(scrollIndicatorStyle.Render(fmt.Sprintf("▼ +%d cards below", cardsBelow)))
	}

	return style.Height(fixedHeight).Render(s.String())
}

func (m BoardModel) renderCard(colIndex, cardIndex int, card models.Card) string {
	maxWidth := columnWidth - (2 * columnPaddingHorizontal) - cardBorderWidth - (2 * cardPaddingHorizontal)

	var lines []string

	// Line 1: PBI id with the remaining-time badge on the right
	badge := ""
	if label := card.RemainingLabel(); label != "" {
		badge = cardBadgeStyle.Render(label)
	}
	pbi := truncate(card.PBIID, maxWidth-lipgloss.Width(badge)-1)
	header := cardPBIStyle.Render(pbi)
	if badge != "" {
		gap := max(1, maxWidth-lipgloss.Width(header)-lipgloss.Width(badge))
		header += strings.Repeat(" ", gap) + badge
	}
	lines = append(lines, header)

	// Lines 2-3: content, first line bright and the rest as a preview
	contentLines := strings.Split(strings.ReplaceAll(card.Content, "\r", ""), "\n")
	contentStyle := cardContentStyle
	if m.inDoneColumn(colIndex) {
		contentStyle = cardDoneContentStyle
	}
	lines = append(lines, contentStyle.Render(truncate(strings.TrimSpace(contentLines[0]), maxWidth)))
	if len(contentLines) > 1 {
		rest := strings.Join(strings.Fields(strings.Join(contentLines[1:], " ")), " ")
		if rest != "" {
			lines = append(lines, cardPreviewStyle.Render(truncate(rest, maxWidth)))
		}
	}

	isSelected := colIndex == m.selectedCol && cardIndex == m.selectedCard
	style := cardStyle
	switch {
	case isSelected && m.mode == boardModeDrag:
		style = dragCardStyle
	case isSelected:
		style = selectedCardStyle
	}

	// the left border is the color bar
	if c, ok := theme.TagColor(card.ColorTag); ok && !(isSelected && m.mode == boardModeDrag) {
		style = style.BorderForeground(c)
	}

	return style.Render(strings.Join(lines, "\n"))
}

// inDoneColumn reports whether colIndex is the last column and titled Done
func (m BoardModel) inDoneColumn(colIndex int) bool {
	if colIndex < 0 || !m.board.IsLastColumn(colIndex) {
		return false
	}
	return m.board.IsDoneColumn(m.board.Columns[colIndex].Title)
}

func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// reloadBoardState syncs arrays and validates cursors after a board reload
func (m *BoardModel) reloadBoardState() {
	if len(m.columnScrollOffsets) != len(m.board.Columns) {
		newOffsets := make([]int, len(m.board.Columns))
		copy(newOffsets, m.columnScrollOffsets)
		m.columnScrollOffsets = newOffsets
	}

	if len(m.columnCursorPos) != len(m.board.Columns) {
		newCursorPos := make([]int, len(m.board.Columns))
		copy(newCursorPos, m.columnCursorPos)
		m.columnCursorPos = newCursorPos
	}

	if m.selectedCol >= len(m.board.Columns) {
		m.selectedCol = max(0, len(m.board.Columns)-1)
	}

	if m.filterActive {
		m.recomputeFilter()
	}
	m.clampFilteredCursors()

	if m.columnHorizontalOffset >= len(m.board.Columns) {
		m.columnHorizontalOffset = max(0, len(m.board.Columns)-1)
	}
	m.adjustHorizontalScrollPosition()
}

// cardSearchString builds a single string from all card fields for fuzzy matching
func cardSearchString(card models.Card) string {
	parts := []string{card.PBIID, card.Content}
	if card.ColorTag != "" {
		parts = append(parts, models.ColorLabel(card.ColorTag))
	}
	if label := card.RemainingLabel(); label != "" {
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

// recomputeFilter rebuilds filteredIndices for each column based on the current filterQuery
func (m *BoardModel) recomputeFilter() {
	if m.filterQuery == "" {
		m.filterActive = false
		m.filteredIndices = nil
		return
	}

	m.filteredIndices = make([][]int, len(m.board.Columns))
	for colIdx, col := range m.board.Columns {
		searchStrings := make([]string, len(col.Cards))
		for i, card := range col.Cards {
			searchStrings[i] = cardSearchString(card)
		}
		matches := fuzzy.Find(m.filterQuery, searchStrings)
		indices := make([]int, len(matches))
		for i, match := range matches {
			indices[i] = match.Index
		}
		m.filteredIndices[colIdx] = indices
	}
}

// getVisibleCards returns the cards to display for a column. A drag shows the
// unfiltered column with the placeholder; otherwise the filter applies.
func (m *BoardModel) getVisibleCards(colIndex int) []models.Card {
	if colIndex >= len(m.board.Columns) {
		return nil
	}
	if m.mode == boardModeDrag && m.drag != nil {
		return m.drag.cardsFor(m.board, colIndex)
	}
	if !m.filterActive || m.filteredIndices == nil || colIndex >= len(m.filteredIndices) {
		return m.board.Columns[colIndex].Cards
	}
	indices := m.filteredIndices[colIndex]
	cards := make([]models.Card, len(indices))
	for i, idx := range indices {
		cards[i] = m.board.Columns[colIndex].Cards[idx]
	}
	return cards
}

// resolveCardIndex translates a filtered position back to the real card index
func (m *BoardModel) resolveCardIndex(colIndex, filteredIndex int) int {
	if !m.filterActive || m.filteredIndices == nil || colIndex >= len(m.filteredIndices) {
		return filteredIndex
	}
	indices := m.filteredIndices[colIndex]
	if filteredIndex < len(indices) {
		return indices[filteredIndex]
	}
	return filteredIndex
}

// clampFilteredCursors ensures cursor positions are valid for the visible card sets
func (m *BoardModel) clampFilteredCursors() {
	if m.selectedCol >= len(m.board.Columns) {
		return
	}
	visibleCount := len(m.getVisibleCards(m.selectedCol))
	if m.selectedCard >= visibleCount {
		m.selectedCard = max(0, visibleCount-1)
	}
	m.setCursor()
}

// adjustScrollPosition ensures the selected card is visible by adjusting scroll offset
func (m *BoardModel) adjustScrollPosition() {
	if m.selectedCol >= len(m.board.Columns) || m.selectedCol >= len(m.columnScrollOffsets) {
		return
	}

	cards := m.getVisibleCards(m.selectedCol)
	if len(cards) == 0 {
		m.columnScrollOffsets[m.selectedCol] = 0
		return
	}

	availableCardHeight := m.columnHeight() - 8
	scrollOffset := m.columnScrollOffsets[m.selectedCol]

	if m.selectedCard < scrollOffset {
		m.columnScrollOffsets[m.selectedCol] = m.selectedCard
	} else {
		visibleCards := 0
		accumulatedHeight := 0

		for i := scrollOffset; i < len(cards); i++ {
			cardHeight := lipgloss.Height(m.renderCard(m.selectedCol, i, cards[i]))
			if visibleCards > 0 && accumulatedHeight+cardHeight > availableCardHeight {
				break
			}
			accumulatedHeight += cardHeight
			visibleCards++
		}

		if visibleCards < 1 {
			visibleCards = 1
		}

		if m.selectedCard >= scrollOffset+visibleCards {
			m.columnScrollOffsets[m.selectedCol] = m.selectedCard - visibleCards + 1
		}
	}

	m.columnScrollOffsets[m.selectedCol] = max(0, min(m.columnScrollOffsets[m.selectedCol], len(cards)-1))
}

// calculateVisibleColumns determines which columns fit in terminal width
func (m *BoardModel) calculateVisibleColumns() (startCol, endCol int) {
	columnTotalWidth := 46
	leftIndicatorWidth := 5
	rightIndicatorWidth := 5

	startCol = m.columnHorizontalOffset

	widthForColumns := m.width - leftIndicatorWidth - rightIndicatorWidth
	visibleCount := max(1, widthForColumns/columnTotalWidth)

	endCol = min(startCol+visibleCount, len(m.board.Columns))
	if endCol <= startCol && len(m.board.Columns) > 0 {
		endCol = startCol + 1
	}

	return startCol, endCol
}

// renderScrollIndicator renders ◀ and ▶ indicators for horizontal scrolling
func (m *BoardModel) renderScrollIndicator(symbol string, height int) string {
	indicator := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Bold(true).
		Render(symbol)

	return lipgloss.NewStyle().
		Width(3).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(indicator)
}

// adjustHorizontalScrollPosition ensures the selected column is visible
func (m *BoardModel) adjustHorizontalScrollPosition() {
	if len(m.board.Columns) == 0 {
		return
	}

	startCol, endCol := m.calculateVisibleColumns()

	if m.selectedCol < startCol {
		m.columnHorizontalOffset = m.selectedCol
		return
	}

	if m.selectedCol >= endCol {
		visibleCount := endCol - startCol
		m.columnHorizontalOffset = max(0, m.selectedCol-visibleCount+1)
	}
}
