package gui

import (
	"fmt"
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// upload copies the render surface into the texture when it changed,
// reallocating the texture after a regrid.
func (a *App) upload() {
	canvas := a.sess.Canvas()
	if !canvas.TakeDirty() {
		return
	}
	img := canvas.Image()
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}

	if w != a.texW || h != a.texH {
		if a.tex.ID != 0 {
			rl.UnloadTexture(a.tex)
		}
		blank := rl.GenImageColor(w, h, rl.Blank)
		a.tex = rl.LoadTextureFromImage(blank)
		rl.UnloadImage(blank)
		rl.SetTextureFilter(a.tex, rl.FilterPoint)
		a.texW, a.texH = w, h
		a.pixels = make([]color.RGBA, w*h)
	}

	toColors(a.pixels, img)
	rl.UpdateTexture(a.tex, a.pixels)
}

// toColors copies an RGBA image row by row into dst.
func toColors(dst []color.RGBA, img *image.RGBA) {
	b := img.Bounds()
	k := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			o := x * 4
			dst[k] = rl.NewColor(row[o], row[o+1], row[o+2], row[o+3])
			k++
		}
	}
}

// centered places a logical-size surface in the middle of the screen. The
// surface is usually larger than the screen and overhangs every edge.
func centered(logical image.Point, screenW, screenH int) rl.Rectangle {
	x := float32(screenW-logical.X) / 2
	y := float32(screenH-logical.Y) / 2
	return rl.NewRectangle(x, y, float32(logical.X), float32(logical.Y))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.theme.Fill())

	if a.sess == nil {
		a.drawLoading()
	} else {
		a.drawMosaic()
		if a.showHUD {
			a.drawHUD()
		}
	}

	rl.EndDrawing()
}

func (a *App) drawLoading() {
	msg := "starting capture and loading icons..."
	w := rl.MeasureText(msg, 20)
	rl.DrawText(msg, (int32(rl.GetScreenWidth())-w)/2, int32(rl.GetScreenHeight())/2, 20, ColText)
}

func (a *App) drawMosaic() {
	if a.tex.ID == 0 {
		return
	}
	src := rl.NewRectangle(0, 0, float32(a.texW), float32(a.texH))
	dst := centered(a.sess.Canvas().Logical(), rl.GetScreenWidth(), rl.GetScreenHeight())
	rl.DrawTexturePro(a.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (a *App) drawHUD() {
	p := a.sess.Pipeline()
	g := p.Geometry()
	last := a.sess.Last()

	rl.DrawRectangle(0, 0, 520, 64, ColPanel)
	rl.DrawText("iconcam", 12, 10, 20, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("cell %d  pitch %d  grid %dx%d  levels %d  theme %s",
		g.CellSize, g.Pitch, g.Cols, g.Rows, p.Levels(), a.theme.Name), 12, 36, 10, ColText)
	rl.DrawText(fmt.Sprintf("blits %d  %d FPS", last.Blits, rl.GetFPS()), 120, 14, 10, ColText)

	x := int32(260)
	if !p.CaptureAvailable() {
		rl.DrawText("no capture", x, 14, 10, ColWarn)
		x += 80
	}
	if a.sess.Paused() {
		rl.DrawText("PAUSED", x, 14, 10, ColWarn)
		x += 60
	}
	if a.notice != "" {
		rl.DrawText(a.notice, x, 14, 10, ColWarn)
	}

	rl.DrawText("[+/-] ZOOM  [T] THEME  [SPACE] PAUSE  [H] HUD  [Q] QUIT", 12, int32(rl.GetScreenHeight())-20, 10, ColTextDim)
}
