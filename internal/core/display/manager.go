package display

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tactilehq/dotwin/internal/core/braille"
	"github.com/tactilehq/dotwin/internal/core/content"
	"github.com/tactilehq/dotwin/internal/core/sched"
	"github.com/tactilehq/dotwin/internal/core/translate"
	"github.com/tactilehq/dotwin/internal/core/wrap"
)

// Displayer receives every visible-window change and blink toggle. The
// call is fire-and-forget; the engine never retries lost frames.
type Displayer interface {
	DisplayDots(cells []byte, text string, cellToText []int)
}

// OverflowHandler is notified when panning is attempted past an edge,
// so the caller can move focus to new content instead.
type OverflowHandler interface {
	OnPanLeftOverflow()
	OnPanRightOverflow()
}

// Config sizes the manager. Zero values take defaults.
type Config struct {
	Width         int
	BlinkInterval time.Duration
	FlashBase     time.Duration
	FlashPerCell  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 40
	}
	if c.BlinkInterval <= 0 {
		c.BlinkInterval = 700 * time.Millisecond
	}
	if c.FlashBase <= 0 {
		c.FlashBase = 1500 * time.Millisecond
	}
	if c.FlashPerCell <= 0 {
		c.FlashPerCell = 150 * time.Millisecond
	}
	return c
}

// Manager is the single point of truth for what is on the display. All
// methods must be called from one event loop; timers fire on the same
// loop through the sched queue.
type Manager struct {
	log        zerolog.Logger
	cfg        Config
	translator translate.Translator
	displayer  Displayer
	overflow   OverflowHandler
	queue      *sched.Queue

	strategy     *wrap.Strategy
	editStrategy *wrap.Strategy

	cur  *Info
	edit *content.EditResult

	// Cached source for PanKeep anchoring and table-change retranslation.
	lastContent Content
	lastSplit   bool
	hasContent  bool

	overlaysOn bool
	blinkTimer *sched.Handle

	// Transient message overlay state.
	msg      braille.Word
	msgTimer *sched.Handle
}

// NewManager wires a content manager to its collaborators.
func NewManager(cfg Config, tr translate.Translator, d Displayer, of OverflowHandler, q *sched.Queue, log zerolog.Logger) *Manager {
	cfg = cfg.withDefaults()
	return &Manager{
		log:          log,
		cfg:          cfg,
		translator:   tr,
		displayer:    d,
		overflow:     of,
		queue:        q,
		strategy:     wrap.NewWordWrap(cfg.Width),
		editStrategy: wrap.NewEditWordWrap(cfg.Width),
		overlaysOn:   true,
	}
}

// Width returns the device cell width.
func (m *Manager) Width() int {
	return m.cfg.Width
}

// Current returns the active display snapshot, or nil before the first
// SetContent.
func (m *Manager) Current() *Info {
	return m.cur
}

// active returns the strategy owning the visible window.
func (m *Manager) active() *wrap.Strategy {
	if m.edit != nil {
		return m.editStrategy
	}
	return m.strategy
}

// SetContent translates and installs plain content, positions the
// window per the pan strategy, and pushes the result immediately.
// Translation failure degrades to blank cells; it never aborts.
func (m *Manager) SetContent(c Content, pan PanStrategy, splitParagraphs bool) {
	cursor := translate.None
	if sp, ok := c.marker(); ok {
		cursor = sp.Range.Lower
	}

	r, err := m.translator.Translate(c.Text, cursor, false)
	if err != nil {
		m.log.Warn().Err(err).Msg("translation failed, substituting dummy result")
	}
	res := translate.OrDummy(r, err, c.Text)

	prev := m.lastContent
	prevStart := m.strategy.DisplayStart()
	hadContent := m.hasContent

	m.edit = nil
	m.strategy.SetContent(res, splitParagraphs)

	switch pan {
	case PanKeep:
		if pos, ok := m.keepAnchor(prev, prevStart, c, res, hadContent); ok {
			m.strategy.PanTo(pos, false)
			break
		}
		fallthrough
	case PanCursor:
		if res.CursorCell != translate.None {
			m.strategy.PanTo(res.CursorCell, false)
			break
		}
		fallthrough
	default:
		m.strategy.Reset()
	}

	m.cur = m.buildInfo(c, res)
	m.lastContent = c
	m.lastSplit = splitParagraphs
	m.hasContent = true

	m.armBlink()
	m.push()
}

// keepAnchor maps the old window position into the new content by
// matching a stable span tag: the span under the old window start wins,
// else the first old span. Any miss reports false, and the caller falls
// back to cursor positioning.
func (m *Manager) keepAnchor(prev Content, prevStart int, next Content, res *translate.Result, hadContent bool) (int, bool) {
	if !hadContent || len(prev.Spans) == 0 {
		return 0, false
	}

	anchor := prev.Spans[0]
	for _, s := range prev.Spans {
		lo := textToCellIndex(m.lastRes(), s.Range.Lower)
		hi := textToCellIndex(m.lastRes(), s.Range.Upper)
		if lo != translate.None && prevStart >= lo && prevStart < hi {
			anchor = s
			break
		}
	}

	match, ok := next.spanByTag(anchor.Tag)
	if !ok {
		return 0, false
	}
	pos := textToCellIndex(res, match.Range.Lower)
	if pos == translate.None {
		return 0, false
	}
	return pos, true
}

// lastRes retranslates the cached content for anchor arithmetic; the
// translator contract requires repeated calls to be cheap.
func (m *Manager) lastRes() *translate.Result {
	r, err := m.translator.Translate(m.lastContent.Text, translate.None, false)
	return translate.OrDummy(r, err, m.lastContent.Text)
}

func textToCellIndex(r *translate.Result, textOffset int) int {
	if textOffset < 0 || textOffset >= len(r.TextToCell) {
		return translate.None
	}
	return r.TextToCell[textOffset]
}

// buildInfo assembles the immutable snapshot for plain content,
// overlaying the selection span with the cursor dots.
func (m *Manager) buildInfo(c Content, res *translate.Result) *Info {
	overlaid := res.Cells
	blink := false

	if sp, ok := c.marker(); ok {
		lo := textToCellIndex(res, sp.Range.Lower)
		hi := textToCellIndex(res, sp.Range.Upper)
		if lo != translate.None && hi != translate.None {
			if hi == lo {
				hi = lo + 1
			}
			overlaid = res.Cells.Overlay(lo, hi, braille.CursorDots)
			blink = true
		}
	}

	return &Info{
		Cells:      res.Cells,
		Overlaid:   overlaid,
		Text:       res.Text,
		CellToText: res.CellToText,
		Blink:      blink,
		Source:     SourceDefault,
	}
}

// SetEditContent assembles editing content (hint, field text, holdings,
// action) and pans with cursor semantics relative to the composition
// cursor. The editor owns re-pushing this content; table changes leave
// it untouched.
func (m *Manager) SetEditContent(f content.Fields) *content.EditResult {
	er := content.Assemble(m.translator, f)
	m.edit = er
	m.editStrategy.SetContent(er.Result, false)
	m.editStrategy.PanTo(er.CursorCell(), false)

	res := er.Result
	overlaid := res.Cells
	if !er.Selection.IsNone() {
		overlaid = res.Cells.Overlay(er.Selection.Lower, er.Selection.Upper, braille.CursorDots)
	} else if cc := er.CursorCell(); cc >= 0 && cc < res.Cells.Len() {
		overlaid = res.Cells.Overlay(cc, cc+1, braille.CursorDots)
	}

	m.cur = &Info{
		Cells:      res.Cells,
		Overlaid:   overlaid,
		Text:       res.Text,
		CellToText: res.CellToText,
		Blink:      true,
		Source:     SourceIME,
	}
	m.hasContent = true

	m.armBlink()
	m.push()
	return er
}

// MapRoutingKey resolves a display-relative routing-key index to a
// logical cursor. Taps beyond the rendered content are unmappable and
// must be ignored by the caller.
func (m *Manager) MapRoutingKey(displayIndex int) (content.Cursor, error) {
	if m.cur == nil {
		return content.Cursor{}, fmt.Errorf("%w: no content", content.ErrUnmappablePosition)
	}
	if displayIndex < 0 || displayIndex >= m.cfg.Width {
		return content.Cursor{}, fmt.Errorf("%w: routing key %d outside display", content.ErrUnmappablePosition, displayIndex)
	}

	strat := m.active()
	whole := strat.DisplayStart() + displayIndex
	if whole >= strat.DisplayEnd() {
		return content.Cursor{}, fmt.Errorf("%w: tap beyond rendered content", content.ErrUnmappablePosition)
	}

	if m.edit != nil {
		return m.edit.MapToCursor(whole)
	}

	if whole >= len(m.cur.CellToText)-1 {
		return content.Cursor{}, fmt.Errorf("%w: cell %d beyond buffer", content.ErrUnmappablePosition, whole)
	}
	return content.Cursor{Position: m.cur.CellToText[whole], Kind: content.CursorText}, nil
}

// PanLeft moves one line toward the start. At the edge it fires the
// overflow callback instead of silently failing.
func (m *Manager) PanLeft() bool {
	m.clearMessage(false)
	if !m.active().PanUp() {
		if m.overflow != nil {
			m.overflow.OnPanLeftOverflow()
		}
		return false
	}
	m.push()
	return true
}

// PanRight moves one line toward the end, firing the overflow callback
// at the edge.
func (m *Manager) PanRight() bool {
	m.clearMessage(false)
	if !m.active().PanDown() {
		if m.overflow != nil {
			m.overflow.OnPanRightOverflow()
		}
		return false
	}
	m.push()
	return true
}

// PanToStart jumps to the first line.
func (m *Manager) PanToStart() {
	m.clearMessage(false)
	if m.active().PanTo(0, false) {
		m.push()
	}
}

// PanToEnd jumps to the line containing the last cell.
func (m *Manager) PanToEnd() {
	m.clearMessage(false)
	strat := m.active()
	if strat.PanTo(strat.Len()-1, false) {
		m.push()
	}
}

// PanToCursor re-centers the window on the current cursor cell.
func (m *Manager) PanToCursor() {
	if m.edit == nil || m.cur == nil {
		return
	}
	m.editStrategy.PanTo(m.edit.CursorCell(), false)
	m.push()
}

// FlashMessage overlays a transient notice for a duration proportional
// to its length. A new message always supersedes a pending one.
func (m *Manager) FlashMessage(text string) {
	r, err := m.translator.Translate(text, translate.None, false)
	res := translate.OrDummy(r, err, text)

	m.msg = res.Cells
	m.queue.Cancel(m.msgTimer)
	d := m.cfg.FlashBase + time.Duration(res.Cells.Len())*m.cfg.FlashPerCell
	m.msgTimer = m.queue.Arm(d, func() { m.clearMessage(true) })

	m.push()
}

// clearMessage drops the transient overlay; when push is set the
// underlying content is re-rendered immediately.
func (m *Manager) clearMessage(repush bool) {
	if m.msg == nil {
		return
	}
	m.msg = nil
	m.queue.Cancel(m.msgTimer)
	m.msgTimer = nil
	if repush {
		m.push()
	}
}

// OnTranslationTableChanged retranslates default-source content from
// its cached text and re-pushes it. IME content is left alone.
func (m *Manager) OnTranslationTableChanged() {
	if m.cur == nil || m.cur.Source != SourceDefault || !m.hasContent {
		return
	}
	m.SetContent(m.lastContent, PanKeep, m.lastSplit)
}

// armBlink starts the blink timer only while the current snapshot wants
// blinking; otherwise any running timer is cancelled.
func (m *Manager) armBlink() {
	m.queue.Cancel(m.blinkTimer)
	m.blinkTimer = nil
	m.overlaysOn = true

	if m.cur != nil && m.cur.Blink {
		m.blinkTimer = m.queue.Arm(m.cfg.BlinkInterval, m.onBlinkTick)
	}
}

func (m *Manager) onBlinkTick() {
	m.overlaysOn = !m.overlaysOn
	m.push()
	m.blinkTimer = m.queue.Arm(m.cfg.BlinkInterval, m.onBlinkTick)
}

// Shutdown cancels all timers.
func (m *Manager) Shutdown() {
	m.queue.Cancel(m.blinkTimer)
	m.queue.Cancel(m.msgTimer)
	m.blinkTimer = nil
	m.msgTimer = nil
}

// push renders the visible window, or the transient message while one
// is up, to the device callback.
func (m *Manager) push() {
	if m.displayer == nil {
		return
	}

	if m.msg != nil {
		cells := m.msg.Slice(0, min(m.msg.Len(), m.cfg.Width))
		m.displayer.DisplayDots(cells.Bytes(), "", nil)
		return
	}
	if m.cur == nil {
		return
	}

	strat := m.active()
	st := strat.DisplayStart()
	en := strat.DisplayEnd()
	if en > st+m.cfg.Width {
		en = st + m.cfg.Width
	}

	source := m.cur.Cells
	if m.overlaysOn {
		source = m.cur.Overlaid
	}
	cells := source.Slice(st, en)

	var positions []int
	if st < len(m.cur.CellToText) {
		hi := en
		if hi > len(m.cur.CellToText)-1 {
			hi = len(m.cur.CellToText) - 1
		}
		positions = m.cur.CellToText[st:hi]
	}

	m.displayer.DisplayDots(cells.Bytes(), m.cur.Text, positions)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
