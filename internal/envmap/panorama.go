package envmap

import (
	"Jewel3D/internal/logger"
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Source identifies a panoramic radiance image. Immutable once requested.
type Source string

// Panorama is a decoded equirectangular radiance image: linear RGB float32
// texels covering the full sphere. The x axis maps longitude, the y axis
// latitude, with the top row at +Y.
type Panorama struct {
	Width  int
	Height int
	Pix    []float32 // len = Width*Height*3

	released bool
}

// NewPanorama allocates a zeroed panorama.
func NewPanorama(width, height int) *Panorama {
	return &Panorama{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*3),
	}
}

// Release drops the pixel data. Idempotent.
func (p *Panorama) Release() {
	if p == nil || p.released {
		return
	}
	p.Pix = nil
	p.released = true
}

// Released reports whether Release has been called.
func (p *Panorama) Released() bool {
	return p != nil && p.released
}

// Set stores a linear RGB texel.
func (p *Panorama) Set(x, y int, r, g, b float32) {
	i := (y*p.Width + x) * 3
	p.Pix[i], p.Pix[i+1], p.Pix[i+2] = r, g, b
}

// At returns the linear RGB texel at (x, y), wrapping in x and clamping in y.
func (p *Panorama) At(x, y int) (float32, float32, float32) {
	x = ((x % p.Width) + p.Width) % p.Width
	if y < 0 {
		y = 0
	}
	if y >= p.Height {
		y = p.Height - 1
	}
	i := (y*p.Width + x) * 3
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2]
}

// Sample returns the bilinearly filtered radiance in the given direction,
// using the lat-long mapping: latitude asin(y), longitude atan2(x, z).
func (p *Panorama) Sample(dir mgl32.Vec3) mgl32.Vec3 {
	d := dir.Normalize()
	lat := math.Asin(clamp(float64(d.Y()), -1, 1))
	lon := math.Atan2(float64(d.X()), float64(d.Z()))

	fx := (lon + math.Pi) / (2 * math.Pi) * float64(p.Width)
	fy := (math.Pi/2 - lat) / math.Pi * float64(p.Height)

	x0 := int(math.Floor(fx - 0.5))
	y0 := int(math.Floor(fy - 0.5))
	tx := float32(fx - 0.5 - math.Floor(fx-0.5))
	ty := float32(fy - 0.5 - math.Floor(fy-0.5))

	r00, g00, b00 := p.At(x0, y0)
	r10, g10, b10 := p.At(x0+1, y0)
	r01, g01, b01 := p.At(x0, y0+1)
	r11, g11, b11 := p.At(x0+1, y0+1)

	lerp := func(a, b, t float32) float32 { return a + (b-a)*t }
	r := lerp(lerp(r00, r10, tx), lerp(r01, r11, tx), ty)
	g := lerp(lerp(g00, g10, tx), lerp(g01, g11, tx), ty)
	b := lerp(lerp(b00, b10, tx), lerp(b01, b11, tx), ty)
	return mgl32.Vec3{r, g, b}
}

// FromImage converts a low-dynamic-range image to a linear panorama,
// removing the sRGB gamma.
func FromImage(img image.Image) *Panorama {
	bounds := img.Bounds()
	pan := NewPanorama(bounds.Dx(), bounds.Dy())
	for y := 0; y < pan.Height; y++ {
		for x := 0; x < pan.Width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pan.Set(x, y,
				srgbToLinear(float32(r)/65535),
				srgbToLinear(float32(g)/65535),
				srgbToLinear(float32(b)/65535))
		}
	}
	return pan
}

// Load decodes a panorama from disk. Radiance .hdr files are decoded
// natively; anything else goes through the stdlib image decoders.
func Load(source Source) (*Panorama, error) {
	if source == StudioSource {
		return ProceduralStudio(512, 256, 1), nil
	}

	file, err := os.Open(string(source))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(string(source)), ".hdr") {
		return DecodeRGBE(file)
	}

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding panorama %s: %w", source, err)
	}
	logger.Log.Debug("Panorama decoded via stdlib image",
		zap.String("source", string(source)), zap.String("format", format))
	return FromImage(img), nil
}

// DecodeRGBE decodes a Radiance RGBE (.hdr) image, including the RLE
// scanline format emitted by every modern tool.
func DecodeRGBE(r io.Reader) (*Panorama, error) {
	br := bufio.NewReader(r)

	line, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading RGBE signature: %w", err)
	}
	if !strings.HasPrefix(line, "#?") {
		return nil, fmt.Errorf("not a Radiance RGBE file")
	}

	// Header: key=value lines until a blank line
	for {
		line, err = br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("reading RGBE header: %w", err)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}
		if strings.HasPrefix(trimmed, "FORMAT=") && trimmed != "FORMAT=32-bit_rle_rgbe" {
			return nil, fmt.Errorf("unsupported RGBE format %q", trimmed)
		}
	}

	line, err = br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading RGBE resolution: %w", err)
	}
	var height, width int
	if _, err := fmt.Sscanf(strings.TrimSpace(line), "-Y %d +X %d", &height, &width); err != nil {
		return nil, fmt.Errorf("unsupported RGBE resolution line %q", strings.TrimSpace(line))
	}

	pan := NewPanorama(width, height)
	scanline := make([]byte, width*4)

	for y := 0; y < height; y++ {
		if err := readRGBEScanline(br, scanline, width); err != nil {
			return nil, fmt.Errorf("RGBE scanline %d: %w", y, err)
		}
		for x := 0; x < width; x++ {
			r, g, b := rgbeToFloat(scanline[x*4], scanline[x*4+1], scanline[x*4+2], scanline[x*4+3])
			pan.Set(x, y, r, g, b)
		}
	}
	return pan, nil
}

// readRGBEScanline reads one scanline, handling both the new RLE format and
// flat RGBE pixels.
func readRGBEScanline(br *bufio.Reader, out []byte, width int) error {
	header := make([]byte, 4)
	if _, err := io.ReadFull(br, header); err != nil {
		return err
	}

	// New RLE format: 0x02 0x02 then the scanline width, channels stored
	// separately
	if header[0] == 2 && header[1] == 2 && (int(header[2])<<8|int(header[3])) == width {
		for ch := 0; ch < 4; ch++ {
			x := 0
			for x < width {
				count, err := br.ReadByte()
				if err != nil {
					return err
				}
				if count > 128 {
					// Run of a repeated value
					value, err := br.ReadByte()
					if err != nil {
						return err
					}
					for i := 0; i < int(count)-128; i++ {
						out[(x+i)*4+ch] = value
					}
					x += int(count) - 128
				} else {
					// Literal run
					for i := 0; i < int(count); i++ {
						value, err := br.ReadByte()
						if err != nil {
							return err
						}
						out[(x+i)*4+ch] = value
					}
					x += int(count)
				}
			}
		}
		return nil
	}

	// Flat format: header was the first pixel
	copy(out[:4], header)
	_, err := io.ReadFull(br, out[4:width*4])
	return err
}

func rgbeToFloat(r, g, b, e byte) (float32, float32, float32) {
	if e == 0 {
		return 0, 0, 0
	}
	scale := float32(math.Ldexp(1, int(e)-136)) // 2^(e-128) / 256
	return float32(r) * scale, float32(g) * scale, float32(b) * scale
}

func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow(float64(c+0.055)/1.055, 2.4))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
