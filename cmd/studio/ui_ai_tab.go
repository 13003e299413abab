package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

func buildAITab(sb *Sidebar, theme *widget.Theme, faces *fontFaces, width int, h uiHandlers) *widget.Container {
	tab := verticalPanel(12)

	intro := verticalPanel(4)
	intro.AddChild(widget.NewText(widget.TextOpts.Text("AI Designer", &faces.ui, colorAccent)))
	intro.AddChild(widget.NewText(
		widget.TextOpts.Text("Turn your mockup into a professional design\nor generate a new concept from scratch.", &faces.small, colorAccent),
	))
	tab.AddChild(intro)

	tab.AddChild(sectionLabel(faces, "AI PROMPT"))
	sb.promptInput = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 32)),
		widget.TextInputOpts.Image(textInputImage()),
		widget.TextInputOpts.Color(textInputColor()),
		widget.TextInputOpts.Face(&faces.ui),
		widget.TextInputOpts.Placeholder("E.g., a minimalist wave with gold accents"),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			if h.onPromptChanged != nil {
				h.onPromptChanged(args.InputText)
			}
		}),
	)
	tab.AddChild(sb.promptInput)

	sb.mockupBtn = widget.NewButton(
		widget.ButtonOpts.Image(primaryButtonImage()),
		widget.ButtonOpts.Text("Transform Mockup", &faces.ui, &widget.ButtonTextColor{Idle: colorSidebar, Disabled: colorAccentLo}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 48)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if h.onMockup != nil {
				h.onMockup()
			}
		}),
	)
	tab.AddChild(sb.mockupBtn)

	sb.pureBtn = widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("New Pure AI Concept", &faces.ui, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 48)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if h.onPurePrompt != nil {
				h.onPurePrompt()
			}
		}),
	)
	tab.AddChild(sb.pureBtn)
	return tab
}
