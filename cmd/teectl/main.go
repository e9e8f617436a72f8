package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/youruser/teeapp/internal/config"
	imagepkg "github.com/youruser/teeapp/internal/image"
	"github.com/youruser/teeapp/internal/layout"
	"github.com/youruser/teeapp/internal/tee"
	"github.com/youruser/teeapp/internal/util"
)

const desc = `Renders tee skins: composes the in-game view, dumps parts, suggests colors.`

type Globals struct {
	Layout string `help:"YAML layout file replacing the built-in tee layouts" type:"existingfile"`
}

// layouts returns the uv and skin layouts for this run.
func (g *Globals) layouts() (*layout.UVLayout, *layout.SkinLayout, error) {
	conf := config.Default()
	conf.LayoutFile = g.Layout
	return conf.Layouts()
}

// load reads src, a file path or http(s) URL, into a Tee.
func (g *Globals) load(ctx context.Context, src string) (*tee.Tee, *layout.SkinLayout, error) {
	uv, skin, err := g.layouts()
	if err != nil {
		return nil, nil, err
	}
	if util.IsURL(src) {
		t, err := tee.NewFromURL(ctx, &imagepkg.Fetcher{}, src, uv)
		return t, skin, err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, nil, err
	}
	format, err := imagepkg.ParseFormat(filepath.Ext(src))
	if err != nil {
		if format, err = imagepkg.Detect(data); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", src, err)
		}
	}
	t, err := tee.New(data, uv, format)
	return t, skin, err
}

type renderCmd struct {
	Src   string `arg:"" help:"skin file or URL"`
	Out   string `short:"o" default:"tee.png" help:"output file, format from its extension"`
	Eyes  string `default:"happy" help:"eye expression"`
	Color string `help:"recolor to #rrggbb"`
}

func (r *renderCmd) Run(g *Globals) error {
	eyes, err := layout.ParseEyes(r.Eyes)
	if err != nil {
		return err
	}
	format, err := imagepkg.ParseFormat(filepath.Ext(r.Out))
	if err != nil {
		return err
	}
	t, skin, err := g.load(context.Background(), r.Src)
	if err != nil {
		return err
	}
	if r.Color != "" {
		shift, err := imagepkg.ShiftFromHex(r.Color)
		if err != nil {
			return err
		}
		t.ApplyHSL(shift)
	}
	out, err := t.Compose(skin, layout.Eyes(eyes), format)
	if err != nil {
		return err
	}
	return util.WriteFile(r.Out, out)
}

type partsCmd struct {
	Src string `arg:"" help:"skin file or URL"`
	Dir string `short:"d" default:"parts" help:"output directory"`
}

func (p *partsCmd) Run(g *Globals) error {
	t, _, err := g.load(context.Background(), p.Src)
	if err != nil {
		return err
	}
	for _, id := range t.UV().Parts() {
		img, ok := t.Part(id)
		if !ok {
			continue
		}
		b, err := imagepkg.Encode(img, imagepkg.FormatPNG)
		if err != nil {
			return err
		}
		path := filepath.Join(p.Dir, id.String()+".png")
		if err := util.WriteFile(path, b); err != nil {
			return err
		}
		log.Println("wrote", path)
	}
	return nil
}

type paletteCmd struct {
	Src string `arg:"" help:"skin file or URL"`
	N   int    `short:"n" default:"5" help:"number of colors"`
}

func (p *paletteCmd) Run(g *Globals) error {
	t, _, err := g.load(context.Background(), p.Src)
	if err != nil {
		return err
	}
	body, ok := t.Part(layout.Body)
	if !ok {
		return fmt.Errorf("%s has no body part", p.Src)
	}
	fmt.Println(strings.Join(imagepkg.Palette(body, p.N), " "))
	return nil
}

var cli struct {
	Globals

	Render  renderCmd  `cmd:"" help:"compose a skin as seen in game"`
	Parts   partsCmd   `cmd:"" help:"write every part of a skin as PNG"`
	Palette paletteCmd `cmd:"" help:"print the dominant colors of a skin body"`
}

func main() {
	log.SetFlags(log.Lshortfile)

	ctx := kong.Parse(
		&cli,
		kong.Name("teectl"),
		kong.Description(desc),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}
