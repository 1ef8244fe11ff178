// Package stretchy implements scroll-linked "stretchy" headers: a header that
// zooms when the content is pulled down past the top, fades and parallaxes as
// it scrolls away, and pages through a gallery of background elements with a
// horizontal drag.
//
// A Header is built from two animated channels. The scroll value follows the
// vertical offset of the surrounding scroll surface; the gallery index value
// is owned by the Gallery's pan gesture machine. ScrollView, FlatList and
// SectionList wrap the host containers and wire both channels up.
package stretchy

import (
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agiangrant/stretchy/internal/config"
	"github.com/agiangrant/stretchy/internal/logging"
	"github.com/agiangrant/stretchy/retained"
	"github.com/agiangrant/stretchy/tw"
)

// Element is one gallery item: an image source or an arbitrary node.
type Element struct {
	Source string
	Node   *retained.Node
}

// ImageElement creates an image gallery item.
func ImageElement(source string) Element {
	return Element{Source: source}
}

// NodeElement wraps arbitrary content as a gallery item.
func NodeElement(n *retained.Node) Element {
	return Element{Node: n}
}

// ImageElements creates one image item per source.
func ImageElements(sources ...string) []Element {
	out := make([]Element, len(sources))
	for i, src := range sources {
		out[i] = ImageElement(src)
	}
	return out
}

func (e Element) build() *retained.Node {
	if e.Node != nil {
		return e.Node
	}
	return retained.Image(e.Source)
}

// HeaderConfig configures a Header.
type HeaderConfig struct {
	Height          float64        // Required; drives every scroll range
	Background      []Element      // Gallery; fewer than two disables paging
	BackgroundColor tw.Color       // Defaults to transparent
	Content         *retained.Node // Optional overlay that fades with scroll
	ShowPager       *bool          // Defaults to true
	Pager           PagerProps

	// OnHeaderChange is called once a settle lands on a new index.
	OnHeaderChange func(index int)

	// Spring tunes the gallery settle. Zero fields use retained defaults.
	Spring retained.SpringConfig

	Logger *logging.Logger
}

func (c HeaderConfig) showPager() bool {
	return c.ShowPager == nil || *c.ShowPager
}

// HeaderConfigFromFile converts a decoded configuration file section.
func HeaderConfigFromFile(f config.HeaderFile) (HeaderConfig, error) {
	cfg := HeaderConfig{
		Height:     f.Height,
		Background: ImageElements(f.Background...),
		ShowPager:  f.ShowPager,
		Pager:      PagerProps{Separator: f.Pager.Separator},
		Spring: retained.SpringConfig{
			AngularFrequency: f.Spring.AngularFrequency,
			DampingRatio:     f.Spring.DampingRatio,
		},
	}

	if f.BackgroundColor != "" {
		c, err := tw.ParseColor(f.BackgroundColor)
		if err != nil {
			return HeaderConfig{}, fmt.Errorf("background_color: %w", err)
		}
		cfg.BackgroundColor = c
	}
	if f.Pager.Color != "" {
		c, err := tw.ParseColor(f.Pager.Color)
		if err != nil {
			return HeaderConfig{}, fmt.Errorf("pager.color: %w", err)
		}
		cfg.Pager.Color = c
	}
	if f.Content != "" {
		cfg.Content = retained.Text(f.Content)
	}
	return cfg, nil
}

// ============================================================================
// Header
// ============================================================================

// Header composes the background gallery, the pager and the overlay content
// into one node and keeps their animated properties in sync with the scroll
// and gallery index values while mounted.
type Header struct {
	mu sync.Mutex

	cfg      HeaderConfig
	scroll   *retained.Value
	gallery  *Gallery
	lock     *ScrollLock
	composer *Composer
	log      *logging.Logger

	root       *retained.Node // clip box, background color
	background *retained.Node // scale + translateY
	strip      *retained.Node // gallery elements side by side, translateX
	elements   []*retained.Node
	pager      *retained.Node // nil unless shown
	content    *retained.Node // overlay wrapper, nil without content

	responder *headerResponder // nil when the gallery cannot page

	mounted   bool
	scrollSub retained.ListenerID
	indexSub  retained.ListenerID
}

// NewHeader builds a header over scroll. A nil scroll gets a private value.
func NewHeader(loop *retained.Loop, scroll *retained.Value, cfg HeaderConfig) (*Header, error) {
	if scroll == nil {
		scroll = retained.NewValue(0)
	}

	log := cfg.Logger.With("component", "header")
	h := &Header{
		cfg:    cfg,
		scroll: scroll,
		lock:   NewScrollLock(true, cfg.Logger),
		log:    log,
	}

	h.gallery = NewGallery(loop, GalleryConfig{
		Length:   len(cfg.Background),
		Spring:   cfg.Spring,
		OnChange: h.indexChanged,
		Locker:   h.lock,
		Logger:   cfg.Logger,
	})

	composer, err := NewComposer(scroll, h.gallery.Value(), cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("new header: %w", err)
	}
	h.composer = composer

	h.build()
	if pan := h.gallery.Responder(); pan != nil {
		h.responder = &headerResponder{header: h, pan: pan}
	}
	return h, nil
}

func (h *Header) build() {
	h.elements = make([]*retained.Node, len(h.cfg.Background))
	for i, el := range h.cfg.Background {
		h.elements[i] = el.build()
	}
	h.strip = retained.HStack(h.elements...)
	h.background = retained.Container(h.strip)

	h.root = retained.Container(h.background).
		SetSize(0, h.cfg.Height).
		SetBackgroundColor(uint32(h.cfg.BackgroundColor))

	if h.cfg.showPager() && len(h.elements) > 1 {
		h.pager = newPagerNode(h.cfg.Pager, len(h.elements))
		h.root.AddChildren(h.pager)
	}
	if h.cfg.Content != nil {
		h.content = retained.Container(h.cfg.Content)
		h.root.AddChildren(h.content)
	}
}

// Node returns the header's root node.
func (h *Header) Node() *retained.Node { return h.root }

// Gallery returns the gallery gesture machine.
func (h *Header) Gallery() *Gallery { return h.gallery }

// ScrollLock returns the lock the gallery holds the scroll surface with.
func (h *Header) ScrollLock() *ScrollLock { return h.lock }

// Composer returns the channel derivations.
func (h *Header) Composer() *Composer { return h.composer }

// ScrollValue returns the scroll channel.
func (h *Header) ScrollValue() *retained.Value { return h.scroll }

// Height returns the configured height.
func (h *Header) Height() float64 { return h.cfg.Height }

// Pager returns the pager node, or nil when it is hidden.
func (h *Header) Pager() *retained.Node { return h.pager }

// Content returns the overlay wrapper, or nil without content.
func (h *Header) Content() *retained.Node { return h.content }

// Background returns the scaled background layer.
func (h *Header) Background() *retained.Node { return h.background }

// Strip returns the horizontally translated gallery strip.
func (h *Header) Strip() *retained.Node { return h.strip }

// Responder returns the header's touch responder, or nil when the gallery
// has fewer than two elements.
func (h *Header) Responder() retained.TouchResponder {
	if h.responder == nil {
		return nil
	}
	return h.responder
}

// Frame returns a snapshot of the derived channels.
func (h *Header) Frame() HeaderFrame {
	return h.composer.Frame()
}

// Mounted reports whether listeners are attached.
func (h *Header) Mounted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mounted
}

// Mount attaches the scroll and index listeners and points the scroll lock at
// surface. Mounting twice remounts. Pair every Mount with Unmount.
func (h *Header) Mount(surface ScrollSurface, scrollEnabled bool) {
	h.Unmount()

	h.lock.Attach(surface, scrollEnabled)

	scrollSub := h.scroll.AddListener(h.applyScroll)
	indexSub := h.gallery.Value().AddListener(h.applyIndex)

	h.mu.Lock()
	h.scrollSub = scrollSub
	h.indexSub = indexSub
	h.mounted = true
	h.mu.Unlock()

	h.applyScroll(h.scroll.Value())
	h.applyIndex(h.gallery.Value().Value())

	h.log.DebugFn("header mounted", func(e *zerolog.Event) {
		e.Float64("height", h.cfg.Height).Int("elements", len(h.elements))
	})
}

// Unmount removes every listener Mount attached, abandons any gallery
// gesture and detaches the scroll lock.
func (h *Header) Unmount() {
	h.mu.Lock()
	if !h.mounted {
		h.mu.Unlock()
		return
	}
	scrollSub, indexSub := h.scrollSub, h.indexSub
	h.mounted = false
	h.mu.Unlock()

	h.scroll.RemoveListener(scrollSub)
	h.gallery.Value().RemoveListener(indexSub)
	h.gallery.Cancel()
	if h.responder != nil {
		h.responder.reset()
	}
	h.lock.Detach()

	h.log.Debug("header unmounted")
}

// Layout records the measured width. Every gallery element takes the full
// header size and the strip lays them out side by side.
func (h *Header) Layout(width float64) {
	h.gallery.SetWidth(width)
	h.composer.SetWidth(width)

	height := h.cfg.Height
	h.root.SetSize(width, height)
	h.background.SetSize(width, height)
	h.strip.SetSize(width*float64(len(h.elements)), height)
	for _, el := range h.elements {
		el.SetSize(width, height)
	}

	h.applyIndex(h.gallery.Value().Value())
}

// GoTo pages the gallery programmatically.
func (h *Header) GoTo(index int, animated bool) bool {
	return h.gallery.GoTo(index, animated)
}

func (h *Header) applyScroll(y float64) {
	opacity, scale, translateY := h.composer.ScrollChannels(y)

	h.root.SetOverflow(OverflowFor(y))
	h.background.SetScale(scale).SetTranslateY(translateY)
	if h.pager != nil {
		h.pager.SetOpacity(opacity)
	}
	if h.content != nil {
		h.content.SetOpacity(opacity).SetTranslateY(translateY)
	}
}

func (h *Header) applyIndex(index float64) {
	h.strip.SetTranslateX(h.composer.TranslateXAt(index))
}

func (h *Header) indexChanged(index int) {
	if h.pager != nil {
		h.pager.SetText(h.cfg.Pager.Text(index, len(h.elements)))
	}
	h.log.DebugFn("header index changed", func(e *zerolog.Event) {
		e.Int("index", index)
	})
	if h.cfg.OnHeaderChange != nil {
		h.cfg.OnHeaderChange(index)
	}
}

// contains reports whether a touch at y (surface coordinates) lands on the
// header. The header scrolls with the content and grows while pulled down.
func (h *Header) contains(y float64) bool {
	bottom := h.cfg.Height - h.scroll.Value()
	return y >= 0 && y < math.Max(bottom, 0)
}

// headerResponder only lets touch sequences that start on the header reach
// the gallery's pan responder.
type headerResponder struct {
	header *Header
	pan    *retained.PanResponder

	mu       sync.Mutex
	tracking bool
}

func (r *headerResponder) HandleTouch(e *retained.TouchEvent) bool {
	r.mu.Lock()
	if e.Phase == retained.TouchDown {
		r.tracking = r.header.contains(e.Y)
	}
	tracking := r.tracking
	r.mu.Unlock()

	if !tracking {
		return false
	}
	return r.pan.HandleTouch(e)
}

func (r *headerResponder) reset() {
	r.mu.Lock()
	r.tracking = false
	r.mu.Unlock()
}

func (r *headerResponder) IsResponder() bool {
	return r.pan.IsResponder()
}
