package transition

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dshills/codemorph/internal/engine/coderange"
	"github.com/dshills/codemorph/internal/engine/fragment"
	"github.com/dshills/codemorph/internal/engine/memo"
	"github.com/dshills/codemorph/internal/renderer/highlight"
)

// Code owns a fragment tree and edits it with or without animation.
//
// Immediate operations rebuild the tree at once. Tweened operations wrap
// the changed content in a scope driven by a new Transition; Advance moves
// every running transition and collapses each completed scope into a
// literal of its after text. Edits that need the whole text (Edit and the
// range operations) start from the after text of the current tree and
// cancel the transitions in flight. Append and Prepend compose with them.
type Code struct {
	mu sync.Mutex

	tree    *memo.Var[*fragment.Scope]
	dialect *memo.Var[string]

	before      *memo.Computed[string]
	after       *memo.Computed[string]
	measured    *memo.Computed[*fragment.Scope]
	beforeCache *memo.Computed[highlight.Cache]
	afterCache  *memo.Computed[highlight.Cache]

	active []*Transition

	highlighter highlight.Highlighter
	differ      Differ
	measurer    fragment.Measurer
	logger      Logger
	timing      TimingFunc
	poll        time.Duration
}

// NewCode creates a controller holding text.
func NewCode(text string, opts ...Option) *Code {
	c := &Code{
		tree:     memo.NewVar(fragment.FromText(text)),
		dialect:  memo.NewVar(""),
		differ:   LineDiffer{},
		measurer: fragment.RuneWidthMeasurer(),
		logger:   nopLogger{},
		timing:   DefaultTiming,
		poll:     DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.before = memo.NewComputed(func() string {
		return fragment.Resolve(c.tree.Get(), false)
	}, c.tree)
	c.after = memo.NewComputed(func() string {
		return fragment.Resolve(c.tree.Get(), true)
	}, c.tree)
	c.measured = memo.NewComputed(c.measure, c.tree)
	c.beforeCache = memo.NewComputed(func() highlight.Cache {
		return c.prepare(c.before.Get())
	}, c.before, c.dialect)
	c.afterCache = memo.NewComputed(func() highlight.Cache {
		return c.prepare(c.after.Get())
	}, c.after, c.dialect)
	return c
}

func (c *Code) measure() *fragment.Scope {
	tree := c.tree.Get()
	measured, err := fragment.MeasureScope(tree, c.measurer)
	if err != nil {
		c.logger.Warn("measure tree", "error", err)
		return tree
	}
	return measured
}

func (c *Code) prepare(text string) highlight.Cache {
	dialect := c.dialect.Get()
	if c.highlighter == nil || dialect == "" {
		return nil
	}
	return c.highlighter.Prepare(text, dialect)
}

// Text returns the text the tree resolves to once every transition has
// completed.
func (c *Code) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.after.Get()
}

// Source returns the text the tree resolves to before any transition.
func (c *Code) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.before.Get()
}

// Tree returns the current tree as built by the edits.
func (c *Code) Tree() *fragment.Scope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Get()
}

// Scope returns the current tree with every leaf measured. The result is
// cached until the tree changes.
func (c *Code) Scope() *fragment.Scope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.measured.Get()
}

// Caches returns the highlight caches for the before and after text. Both
// are nil without a highlighter or dialect.
func (c *Code) Caches() (before, after highlight.Cache) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beforeCache.Get(), c.afterCache.Get()
}

// Highlighter returns the configured highlighter, which may be nil.
func (c *Code) Highlighter() highlight.Highlighter {
	return c.highlighter
}

// Dialect returns the dialect used for highlighting and tokenizing.
func (c *Code) Dialect() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialect.Get()
}

// SetDialect changes the dialect.
func (c *Code) SetDialect(dialect string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dialect.Get() != dialect {
		c.dialect.Set(dialect)
	}
}

// Busy reports whether any transition is running.
func (c *Code) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active) > 0
}

// Set replaces the text without animation, cancelling any transition.
func (c *Code) Set(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.tree.Set(fragment.FromText(text))
}

// Edit animates the change from the current text to text.
func (c *Code) Edit(ctx context.Context, text string, d time.Duration) (*Transition, error) {
	if err := c.awaitReady(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	base := c.after.Get()
	c.cancelLocked()

	nodes := c.differ.Diff(base, text, c.tokenizer())
	clock := &Clock{}
	scope := fragment.NewScope(clock, nodes...)
	c.tree.Set(fragment.NewScope(fragment.Fixed(0), scope))
	return c.startLocked("edit", scope, clock, text, d), nil
}

// Append adds text to the end without animation.
func (c *Code) Append(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	root := c.tree.Get()
	c.tree.Set(root.WithNodes(append(slices.Clone(root.Nodes), fragment.Literal(text))...))
}

// AppendTween animates text growing at the end.
func (c *Code) AppendTween(ctx context.Context, text string, d time.Duration) (*Transition, error) {
	if err := c.awaitReady(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	clock := &Clock{}
	scope := fragment.NewScope(clock, fragment.Insert(text))
	root := c.tree.Get()
	c.tree.Set(root.WithNodes(append(slices.Clone(root.Nodes), scope)...))
	return c.startLocked("append", scope, clock, text, d), nil
}

// Prepend adds text to the start without animation.
func (c *Code) Prepend(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	root := c.tree.Get()
	c.tree.Set(root.WithNodes(append([]fragment.Node{fragment.Literal(text)}, root.Nodes...)...))
}

// PrependTween animates text growing at the start.
func (c *Code) PrependTween(ctx context.Context, text string, d time.Duration) (*Transition, error) {
	if err := c.awaitReady(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	clock := &Clock{}
	scope := fragment.NewScope(clock, fragment.Insert(text))
	root := c.tree.Get()
	c.tree.Set(root.WithNodes(append([]fragment.Node{scope}, root.Nodes...)...))
	return c.startLocked("prepend", scope, clock, text, d), nil
}

// Insert places text at p without animation.
func (c *Code) Insert(p coderange.Point, text string) error {
	return c.Replace(coderange.NewRange(p, p), text)
}

// InsertTween animates text appearing at p.
func (c *Code) InsertTween(ctx context.Context, p coderange.Point, text string, d time.Duration) (*Transition, error) {
	return c.ReplaceTween(ctx, coderange.NewRange(p, p), text, d)
}

// Remove deletes the text inside r without animation.
func (c *Code) Remove(r coderange.Range) error {
	return c.Replace(r, "")
}

// RemoveTween animates the text inside r disappearing.
func (c *Code) RemoveTween(ctx context.Context, r coderange.Range, d time.Duration) (*Transition, error) {
	return c.ReplaceTween(ctx, r, "", d)
}

// Replace swaps the text inside r for text without animation.
func (c *Code) Replace(r coderange.Range, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	head, _, tail, err := coderange.Split(c.after.Get(), r)
	if err != nil {
		return fmt.Errorf("replace %s: %w", r, err)
	}
	c.cancelLocked()
	c.tree.Set(fragment.FromText(head + text + tail))
	return nil
}

// ReplaceTween animates the text inside r turning into text.
func (c *Code) ReplaceTween(ctx context.Context, r coderange.Range, text string, d time.Duration) (*Transition, error) {
	if err := c.awaitReady(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	head, inside, tail, err := coderange.Split(c.after.Get(), r)
	if err != nil {
		return nil, fmt.Errorf("replace %s: %w", r, err)
	}
	c.cancelLocked()

	clock := &Clock{}
	scope := fragment.NewScope(clock, fragment.Replace(inside, text))
	var nodes []fragment.Node
	if head != "" {
		nodes = append(nodes, fragment.Literal(head))
	}
	nodes = append(nodes, scope)
	if tail != "" {
		nodes = append(nodes, fragment.Literal(tail))
	}
	c.tree.Set(fragment.NewScope(fragment.Fixed(0), nodes...))
	return c.startLocked("replace", scope, clock, text, d), nil
}

// Advance moves every running transition forward by dt and collapses the
// ones that complete. It returns true when no transition is running.
func (c *Code) Advance(dt time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	running := c.active[:0]
	for _, t := range c.active {
		if t.Advance(dt) {
			c.collapseLocked(t)
			continue
		}
		running = append(running, t)
	}
	clear(c.active[len(running):])
	c.active = running
	return len(c.active) == 0
}

// Finish completes every running transition at once.
func (c *Code) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.active {
		c.collapseLocked(t)
	}
	c.active = nil
}

func (c *Code) startLocked(op string, scope *fragment.Scope, clock *Clock, target string, d time.Duration) *Transition {
	t := newTransition(scope.ID, clock, target, d, c.timing)
	c.active = append(c.active, t)
	c.logger.Debug("transition started", "op", op, "handle", scope.ID.String(), "duration", d)
	return t
}

// collapseLocked replaces the scope of a completed transition with its
// after text.
func (c *Code) collapseLocked(t *Transition) {
	if !t.finish(Completed) {
		return
	}
	root, ok := fragment.ReplaceNode(c.tree.Get(), t.id, fragment.Literal(t.target))
	if !ok {
		c.logger.Warn("transition scope not found", "handle", t.id.String())
		return
	}
	c.tree.Set(root)
	c.logger.Debug("transition completed", "handle", t.id.String())
}

// cancelLocked discards every running transition. The caller replaces the
// tree.
func (c *Code) cancelLocked() {
	for _, t := range c.active {
		if t.finish(Cancelled) {
			c.logger.Debug("transition cancelled", "handle", t.id.String())
		}
	}
	c.active = nil
}

func (c *Code) tokenizer() TokenizeFunc {
	dialect := c.dialect.Get()
	if tk, ok := c.highlighter.(highlight.Tokenizer); ok && dialect != "" {
		return func(text string) []string {
			return tk.Tokenize(text, dialect)
		}
	}
	return Words
}

// awaitReady blocks until the highlighter reports ready, polling until no
// initialization work remains.
func (c *Code) awaitReady(ctx context.Context) error {
	if c.highlighter == nil || c.Dialect() == "" {
		return nil
	}
	if c.highlighter.Initialize() {
		return nil
	}

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
		case <-ticker.C:
			if c.highlighter.Initialize() {
				return nil
			}
		}
	}
}
