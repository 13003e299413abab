package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/totestudio/layer"
	"github.com/milk9111/totestudio/presets"
	"github.com/milk9111/totestudio/studio"
)

type Tab int

const (
	TabElements Tab = iota
	TabText
	TabAI
)

func (t Tab) String() string {
	switch t {
	case TabElements:
		return "Elements"
	case TabText:
		return "Text"
	case TabAI:
		return "AI Gen"
	default:
		return "Unknown"
	}
}

// uiHandlers are the sidebar callbacks into the game.
type uiHandlers struct {
	onUpload        func()
	onEmoji         func(glyph string)
	onPreset        func(p presets.Preset)
	onAddText       func()
	onTextChanged   func(content string)
	onFontSize      func(size int)
	onPromptChanged func(prompt string)
	onMockup        func()
	onPurePrompt    func()
	onToggleView    func()
	onExport        func()
}

// Sidebar is the composed left panel and its stateful widgets.
type Sidebar struct {
	Container *widget.Container

	tabGroup   *widget.RadioGroup
	tabButtons []*widget.Button
	tabPanels  []*widget.Container

	presetList *widget.List

	textEditor *widget.Container
	textInput  *widget.TextInput
	fontSlider *widget.Slider
	fontLabel  *widget.Text
	editing    layer.ID

	promptInput *widget.TextInput
	mockupBtn   *widget.Button
	pureBtn     *widget.Button
	viewBtn     *widget.Button

	// suppress stops programmatic updates from echoing back as edits.
	suppress bool
}

func (s *Sidebar) SetTab(t Tab) {
	if s == nil || int(t) >= len(s.tabButtons) {
		return
	}
	s.tabGroup.SetActive(s.tabButtons[t])
}

func (s *Sidebar) showTab(t Tab) {
	for i, panel := range s.tabPanels {
		if Tab(i) == t {
			panel.GetWidget().Visibility = widget.Visibility_Show
		} else {
			panel.GetWidget().Visibility = widget.Visibility_Hide
		}
	}
	s.Container.RequestRelayout()
}

// SyncText mirrors the selected text layer into the edit controls. The input
// is only rewritten when the selection changes so typing is not disturbed.
func (s *Sidebar) SyncText(l layer.Layer, ok bool) {
	if s == nil || s.textEditor == nil {
		return
	}
	if !ok {
		if s.editing != "" {
			s.editing = ""
			s.textEditor.GetWidget().Visibility = widget.Visibility_Hide
			s.Container.RequestRelayout()
		}
		return
	}

	s.suppress = true
	defer func() { s.suppress = false }()
	if s.editing != l.ID {
		s.editing = l.ID
		s.textInput.SetText(l.Content)
		s.textEditor.GetWidget().Visibility = widget.Visibility_Show
		s.Container.RequestRelayout()
	}
	if s.fontSlider.Current != l.FontSize {
		s.fontSlider.Current = l.FontSize
	}
	s.fontLabel.Label = fmt.Sprintf("Size: %dpx", l.FontSize)
}

// SetBusy disables both AI actions while a generation runs.
func (s *Sidebar) SetBusy(busy bool) {
	if s == nil {
		return
	}
	s.mockupBtn.GetWidget().Disabled = busy
	s.pureBtn.GetWidget().Disabled = busy
	label := "Transform Mockup"
	if busy {
		label = "Designing..."
	}
	if text := s.mockupBtn.Text(); text != nil {
		text.Label = label
	}
}

func (s *Sidebar) SetView(v studio.View) {
	if s == nil || s.viewBtn == nil {
		return
	}
	label := "View Gallery"
	if v == studio.ViewGallery {
		label = "Back to Editor"
	}
	if text := s.viewBtn.Text(); text != nil {
		text.Label = label
	}
}

func (s *Sidebar) SetPresets(list []presets.Preset) {
	if s == nil || s.presetList == nil {
		return
	}
	entries := make([]any, 0, len(list))
	for _, p := range list {
		entries = append(entries, p)
	}
	s.presetList.SetEntries(entries)
}
