package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"
)

const (
	cellW = 8
	cellH = 16
	// gifDelay is in hundredths of a second.
	gifDelay = 2
)

var gifPalette = color.Palette{color.Black, color.RGBA{0xd8, 0xb2, 0x6e, 0xff}}

// Recorder rasterises canvas frames into an animated GIF, one dot per
// cellW/2 x cellH/4 block.
type Recorder struct {
	frames []*image.Paletted
}

func NewRecorder() *Recorder {
	return &Recorder{frames: make([]*image.Paletted, 0, 64)}
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), gifPalette)
	dotW, dotH := cellW/2, cellH/4
	w, h := c.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Save writes the captured frames to path. An empty recording writes nothing.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, gifDelay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
