package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/totestudio/presets"
)

const emojiColumns = 6

func buildElementsTab(sb *Sidebar, theme *widget.Theme, faces *fontFaces, width int, emojis []string, h uiHandlers) *widget.Container {
	tab := verticalPanel(8)

	tab.AddChild(sectionLabel(faces, "UPLOAD IMAGE"))
	tab.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Click to upload", &faces.ui, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 56)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if h.onUpload != nil {
				h.onUpload()
			}
		}),
	))
	tab.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("or drop an image on the window", &faces.small, labelColor(colorMuted)),
	))

	tab.AddChild(sectionLabel(faces, "EMOJIS"))
	cell := (width - (emojiColumns-1)*4) / emojiColumns
	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(emojiColumns),
				widget.GridLayoutOpts.Spacing(4, 4),
			),
		),
	)
	emojiImage := &widget.ButtonImage{
		Idle:    solidNineSlice(colorSidebar),
		Hover:   solidNineSlice(color.RGBA{241, 245, 249, 255}),
		Pressed: solidNineSlice(colorBorder),
	}
	for _, glyph := range emojis {
		grid.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(emojiImage),
			widget.ButtonOpts.Text(glyph, &faces.emoji, &widget.ButtonTextColor{Idle: colorInk}),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(cell, cell)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if h.onEmoji != nil {
					h.onEmoji(glyph)
				}
			}),
		))
	}
	tab.AddChild(grid)

	tab.AddChild(sectionLabel(faces, "PRESETS"))
	sb.presetList = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if p, ok := e.(presets.Preset); ok {
				return p.Name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if h.onPreset == nil {
				return
			}
			if p, ok := args.Entry.(presets.Preset); ok {
				h.onPreset(p)
			}
		}),
	)
	sb.presetList.GetWidget().MinHeight = 120
	sb.presetList.GetWidget().MinWidth = width
	tab.AddChild(sb.presetList)
	return tab
}
