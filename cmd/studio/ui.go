package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

// BuildStudioUI lays out the sidebar on the left edge; the rest of the
// window is left to the workspace, which the game draws itself.
func BuildStudioUI(faces *fontFaces, width int, emojis []string, h uiHandlers) (*ebitenui.UI, *Sidebar) {
	ui := &ebitenui.UI{}
	ui.PrimaryTheme = newStudioTheme(&faces.ui)

	sidebar := buildSidebar(ui.PrimaryTheme, faces, width, emojis, h)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	sidebar.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchVertical:    true,
	}
	root.AddChild(sidebar.Container)
	ui.Container = root
	return ui, sidebar
}

func buildSidebar(theme *widget.Theme, faces *fontFaces, width int, emojis []string, h uiHandlers) *Sidebar {
	sb := &Sidebar{}

	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colorSidebar)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(10),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 20, Right: 20}),
			),
		),
	)
	sb.Container = panel

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Tote Studio", &faces.title, colorInk),
	))

	tabRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
	)
	tabTextColor := &widget.ButtonTextColor{
		Idle:     colorMuted,
		Hover:    colorInk,
		Pressed:  colorAccent,
		Disabled: color.Gray{Y: 160},
	}
	tabWidth := (width - 40 - 8) / 3
	for _, t := range []Tab{TabElements, TabText, TabAI} {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(t.String(), &faces.ui, tabTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(tabWidth, 36)),
		)
		sb.tabButtons = append(sb.tabButtons, btn)
		tabRow.AddChild(btn)
	}
	panel.AddChild(tabRow)

	content := width - 40
	sb.tabPanels = []*widget.Container{
		buildElementsTab(sb, theme, faces, content, emojis, h),
		buildTextTab(sb, theme, faces, content, h),
		buildAITab(sb, theme, faces, content, h),
	}
	for _, p := range sb.tabPanels {
		panel.AddChild(p)
	}

	elements := make([]widget.RadioGroupElement, 0, len(sb.tabButtons))
	for _, b := range sb.tabButtons {
		elements = append(elements, b)
	}
	sb.tabGroup = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for idx, b := range sb.tabButtons {
				if args.Active == b {
					sb.showTab(Tab(idx))
					return
				}
			}
		}),
	)
	sb.showTab(TabElements)

	panel.AddChild(divider(content))

	sb.viewBtn = widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("View Gallery", &faces.ui, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(content, 40)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if h.onToggleView != nil {
				h.onToggleView()
			}
		}),
	)
	panel.AddChild(sb.viewBtn)

	panel.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(darkButtonImage()),
		widget.ButtonOpts.Text("Export Design", &faces.ui, &widget.ButtonTextColor{Idle: color.White}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(content, 40)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if h.onExport != nil {
				h.onExport()
			}
		}),
	))
	return sb
}

func sectionLabel(faces *fontFaces, label string) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(label, &faces.small, labelColor(colorMuted)),
	)
}

func divider(width int) *widget.Graphic {
	return widget.NewGraphic(
		widget.GraphicOpts.Image(filledImage(width, 1, colorBorder)),
		widget.GraphicOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 1)),
	)
}

func filledImage(w, h int, c color.Color) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}

func verticalPanel(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(spacing),
			),
		),
	)
}
