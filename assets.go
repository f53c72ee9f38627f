package thicket

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DefaultSampleRate is the audio context rate used by Run.
const DefaultSampleRate = 44100

// Sound is a short effect such as a menu blip.
type Sound interface {
	Play()
}

// nopSound stands in for sounds that are unnamed or failed to load.
type nopSound struct{}

func (nopSound) Play() {}

type playerSound struct {
	player *audio.Player
}

func (s *playerSound) Play() {
	if err := s.player.Rewind(); err != nil {
		log.Printf("thicket: rewind sound: %v", err)
		return
	}
	s.player.Play()
}

// Assets loads images and sounds by name from a file system and caches
// them. Missing or broken assets are logged once and replaced: images by a
// magenta placeholder, sounds by silence.
type Assets struct {
	fsys   fs.FS
	audio  *audio.Context
	images map[string]*ebiten.Image
	sounds map[string]Sound
}

// NewAssets creates a loader over fsys. Either argument may be nil: a nil
// fsys makes every lookup a placeholder, a nil audio context makes every
// sound silent.
func NewAssets(fsys fs.FS, ctx *audio.Context) *Assets {
	return &Assets{
		fsys:   fsys,
		audio:  ctx,
		images: make(map[string]*ebiten.Image),
		sounds: make(map[string]Sound),
	}
}

var placeholderImage *ebiten.Image

// PlaceholderImage returns the magenta square used for missing images.
func PlaceholderImage() *ebiten.Image {
	if placeholderImage == nil {
		placeholderImage = ebiten.NewImage(8, 8)
		placeholderImage.Fill(color.RGBA{0xff, 0x00, 0xff, 0xff})
	}
	return placeholderImage
}

// Image returns the named image. An empty name or load failure yields the
// placeholder.
func (a *Assets) Image(name string) *ebiten.Image {
	if img, ok := a.images[name]; ok {
		return img
	}
	img, err := a.loadImage(name)
	if err != nil {
		log.Printf("thicket: %v; using placeholder", err)
		img = PlaceholderImage()
	}
	a.images[name] = img
	return img
}

// ImageOrNil is like Image but returns nil for an empty name.
func (a *Assets) ImageOrNil(name string) *ebiten.Image {
	if name == "" {
		return nil
	}
	return a.Image(name)
}

func (a *Assets) loadImage(name string) (*ebiten.Image, error) {
	if name == "" {
		return nil, fmt.Errorf("load image: empty name")
	}
	if a.fsys == nil {
		return nil, fmt.Errorf("load image %s: no file system", name)
	}
	img, _, err := ebitenutil.NewImageFromFileSystem(a.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", name, err)
	}
	return img, nil
}

// Sound returns the named sound. An empty name is silently inert; a load
// failure is logged and inert.
func (a *Assets) Sound(name string) Sound {
	if name == "" {
		return nopSound{}
	}
	if s, ok := a.sounds[name]; ok {
		return s
	}
	s, err := a.loadSound(name)
	if err != nil {
		log.Printf("thicket: %v; sound disabled", err)
		s = nopSound{}
	}
	a.sounds[name] = s
	return s
}

func (a *Assets) loadSound(name string) (Sound, error) {
	if a.audio == nil {
		return nil, fmt.Errorf("load sound %s: no audio context", name)
	}
	if a.fsys == nil {
		return nil, fmt.Errorf("load sound %s: no file system", name)
	}
	data, err := fs.ReadFile(a.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load sound %s: %w", name, err)
	}

	rate := a.audio.SampleRate()
	var stream io.Reader
	switch strings.ToLower(path.Ext(name)) {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(rate, bytes.NewReader(data))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(rate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("load sound %s: unsupported format", name)
	}
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", name, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", name, err)
	}
	return &playerSound{player: a.audio.NewPlayerFromBytes(pcm)}, nil
}
