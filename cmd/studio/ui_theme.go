package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	colorSidebar   = color.RGBA{255, 255, 255, 255}
	colorWorkspace = color.RGBA{248, 250, 252, 255}
	colorBorder    = color.RGBA{226, 232, 240, 255}
	colorInk       = color.RGBA{30, 41, 59, 255}
	colorMuted     = color.RGBA{100, 116, 139, 255}
	colorAccent    = color.RGBA{37, 99, 235, 255}
	colorAccentLo  = color.RGBA{219, 234, 254, 255}
	colorDanger    = color.RGBA{239, 68, 68, 255}
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newStudioTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          colorInk,
				Selected:            colorAccent,
				DisabledUnselected:  color.Gray{Y: 160},
				DisabledSelected:    color.Gray{Y: 120},
				SelectingBackground: colorAccentLo,
				SelectedBackground:  colorAccentLo,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(colorWorkspace),
				Mask: solidNineSlice(colorWorkspace),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(colorSidebar),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:     solidNineSlice(color.RGBA{241, 245, 249, 255}),
				Hover:    solidNineSlice(color.RGBA{226, 232, 240, 255}),
				Pressed:  solidNineSlice(color.RGBA{203, 213, 225, 255}),
				Disabled: solidNineSlice(color.RGBA{241, 245, 249, 128}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:     colorInk,
				Disabled: color.Gray{Y: 160},
			},
		},
		SliderTheme: &widget.SliderParams{
			TrackImage: &widget.SliderTrackImage{
				Idle:  solidNineSlice(colorBorder),
				Hover: solidNineSlice(color.RGBA{203, 213, 225, 255}),
			},
			HandleImage: &widget.ButtonImage{
				Idle:    solidNineSlice(colorAccent),
				Hover:   solidNineSlice(color.RGBA{29, 78, 216, 255}),
				Pressed: solidNineSlice(color.RGBA{30, 64, 175, 255}),
			},
		},
	}
}

// primaryButtonImage is the filled blue style used for the main AI action.
func primaryButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     solidNineSlice(colorAccent),
		Hover:    solidNineSlice(color.RGBA{29, 78, 216, 255}),
		Pressed:  solidNineSlice(color.RGBA{30, 64, 175, 255}),
		Disabled: solidNineSlice(color.RGBA{147, 197, 253, 255}),
	}
}

func darkButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     solidNineSlice(colorInk),
		Hover:    solidNineSlice(color.RGBA{51, 65, 85, 255}),
		Pressed:  solidNineSlice(color.RGBA{15, 23, 42, 255}),
		Disabled: solidNineSlice(color.RGBA{148, 163, 184, 255}),
	}
}

func textInputImage() *widget.TextInputImage {
	return &widget.TextInputImage{
		Idle:     solidNineSlice(colorWorkspace),
		Disabled: solidNineSlice(colorBorder),
	}
}

func textInputColor() *widget.TextInputColor {
	return &widget.TextInputColor{Idle: colorInk, Disabled: color.Gray{Y: 120}, Caret: colorInk}
}

func labelColor(c color.Color) *widget.LabelColor {
	return &widget.LabelColor{Idle: c, Disabled: color.Gray{Y: 140}}
}
