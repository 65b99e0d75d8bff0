// Package postcard renders the visual asset attached to a story after its
// first save. The renderer draws the story text onto a card, downsamples it
// for smoothing and writes it out as JPEG.
package postcard

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"storyfeed/internal/domain/models"
	svc "storyfeed/internal/domain/services"
)

const (
	cardWidth   = 640
	cardHeight  = 400
	jpegQuality = 80

	// glyphsPerLine is sized for the 7px basicfont face on a 2x canvas
	glyphsPerLine = 80
	maxLines      = 16
	marginX       = 40
	marginY       = 60
	lineHeight    = 20
)

// FileRenderer writes postcard JPEGs into a directory and returns the
// relative asset path recorded on the story.
type FileRenderer struct {
	dir    string
	logger *slog.Logger
}

// NewFileRenderer creates a renderer writing into dir
func NewFileRenderer(dir string, logger *slog.Logger) svc.PostcardRenderer {
	return &FileRenderer{dir: dir, logger: logger}
}

// Render produces the postcard for a story
func (r *FileRenderer) Render(ctx context.Context, story *models.Story) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Draw at 2x and scale down; CatmullRom smooths the bitmap font edges
	src := image.NewRGBA(image.Rect(0, 0, cardWidth*2, cardHeight*2))
	bg, fg := cardPalette(story.ID)
	draw.Copy(src, image.Point{}, image.NewUniform(bg), src.Bounds(), draw.Src, nil)

	drawer := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(fg),
		Face: basicfont.Face7x13,
	}
	for i, line := range wrapText(story.Content) {
		drawer.Dot = fixed.P(marginX, marginY+i*lineHeight)
		drawer.DrawString(line)
	}

	dst := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode postcard: %w", err)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create postcard directory: %w", err)
	}

	filename := story.ID + ".jpg"
	path := filepath.Join(r.dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write postcard: %w", err)
	}

	r.logger.Debug("postcard rendered", "story_id", story.ID, "bytes", buf.Len())

	return path, nil
}

// cardPalette derives a stable background color from the story ID so cards
// differ without storing any extra state.
func cardPalette(id string) (bg, fg color.Color) {
	h := fnv.New32a()
	h.Write([]byte(id))
	hue := h.Sum32()

	bg = color.RGBA{
		R: 160 + uint8(hue%64),
		G: 160 + uint8((hue>>8)%64),
		B: 160 + uint8((hue>>16)%64),
		A: 255,
	}
	fg = color.RGBA{R: 32, G: 32, B: 40, A: 255}
	return bg, fg
}

// wrapText breaks content into display lines, truncating past the card
func wrapText(content string) []string {
	var lines []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
	}

	for _, word := range strings.Fields(content) {
		for len(word) > glyphsPerLine {
			flush()
			lines = append(lines, word[:glyphsPerLine])
			word = word[glyphsPerLine:]
		}
		if current.Len() > 0 && current.Len()+1+len(word) > glyphsPerLine {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	flush()

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] += "..."
	}

	return lines
}
