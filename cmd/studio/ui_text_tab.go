package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/totestudio/layer"
)

func buildTextTab(sb *Sidebar, theme *widget.Theme, faces *fontFaces, width int, h uiHandlers) *widget.Container {
	tab := verticalPanel(12)

	tab.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(darkButtonImage()),
		widget.ButtonOpts.Text("+ Add Text Layer", &faces.ui, &widget.ButtonTextColor{Idle: color.White}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 48)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if h.onAddText != nil {
				h.onAddText()
			}
		}),
	))

	editor := verticalPanel(8)
	editor.AddChild(sectionLabel(faces, "EDIT TEXT"))
	sb.textInput = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 32)),
		widget.TextInputOpts.Image(textInputImage()),
		widget.TextInputOpts.Color(textInputColor()),
		widget.TextInputOpts.Face(&faces.ui),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			if sb.suppress || h.onTextChanged == nil {
				return
			}
			h.onTextChanged(args.InputText)
		}),
	)
	editor.AddChild(sb.textInput)

	sb.fontLabel = widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("Size: %dpx", layer.DefaultFontSize), &faces.small, colorMuted),
	)
	editor.AddChild(sb.fontLabel)
	sb.fontSlider = widget.NewSlider(
		widget.SliderOpts.Direction(widget.DirectionHorizontal),
		widget.SliderOpts.MinMax(layer.MinFontSize, layer.MaxFontSize),
		widget.SliderOpts.Images(theme.SliderTheme.TrackImage, theme.SliderTheme.HandleImage),
		widget.SliderOpts.FixedHandleSize(12),
		widget.SliderOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 16)),
		widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
			if sb.suppress || h.onFontSize == nil {
				return
			}
			h.onFontSize(args.Current)
		}),
	)
	sb.fontSlider.Current = layer.DefaultFontSize
	editor.AddChild(sb.fontSlider)

	editor.GetWidget().Visibility = widget.Visibility_Hide
	sb.textEditor = editor
	tab.AddChild(editor)
	return tab
}
