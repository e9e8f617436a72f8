package imagepkg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"mime"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/samuel/go-pcx/pcx"
	_ "golang.org/x/image/webp"
)

// Format is a raster file format known to the codec.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatTIFF
	FormatWebP
	FormatPCX
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

var formatNames = map[Format]string{
	FormatPNG:  "png",
	FormatJPEG: "jpeg",
	FormatGIF:  "gif",
	FormatBMP:  "bmp",
	FormatTIFF: "tiff",
	FormatWebP: "webp",
	FormatPCX:  "pcx",
}

var formatMIME = map[Format]string{
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatGIF:  "image/gif",
	FormatBMP:  "image/bmp",
	FormatTIFF: "image/tiff",
	FormatWebP: "image/webp",
	FormatPCX:  "image/x-pcx",
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return "unknown"
}

// MIME returns the media type used for f in HTTP responses.
func (f Format) MIME() string {
	if m, ok := formatMIME[f]; ok {
		return m
	}
	return "application/octet-stream"
}

// CanDecode reports whether sources in f can be read.
func (f Format) CanDecode() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF, FormatWebP, FormatPCX:
		return true
	}
	return false
}

// CanEncode reports whether output in f can be written.
func (f Format) CanEncode() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF, FormatPCX:
		return true
	}
	return false
}

func (f Format) imaging() (imaging.Format, bool) {
	switch f {
	case FormatPNG:
		return imaging.PNG, true
	case FormatJPEG:
		return imaging.JPEG, true
	case FormatGIF:
		return imaging.GIF, true
	case FormatBMP:
		return imaging.BMP, true
	case FormatTIFF:
		return imaging.TIFF, true
	}
	return 0, false
}

// ParseFormat resolves a format name or file extension ("png", ".jpg", "TIFF").
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "webp":
		return FormatWebP, nil
	case "pcx":
		return FormatPCX, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromMIME resolves a Content-Type header value.
func FormatFromMIME(contentType string) (Format, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatUnknown, fmt.Errorf("%w: content type %q", ErrUnsupportedFormat, contentType)
	}
	switch mt {
	case "image/jpg", "image/pjpeg":
		return FormatJPEG, nil
	case "image/x-ms-bmp", "image/x-bmp":
		return FormatBMP, nil
	case "image/vnd.zbrush.pcx":
		return FormatPCX, nil
	}
	for f, m := range formatMIME {
		if m == mt {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: content type %q", ErrUnsupportedFormat, contentType)
}

// Detect sniffs the format of encoded bytes.
func Detect(data []byte) (Format, error) {
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return FormatUnknown, &DecodeError{Format: FormatUnknown, Err: err}
	}
	f, err := ParseFormat(name)
	if err != nil {
		return FormatUnknown, &DecodeError{Format: FormatUnknown, Err: err}
	}
	return f, nil
}

// Decode reads data, which must be encoded as f, into a fresh NRGBA buffer with
// its origin at (0,0).
func Decode(data []byte, f Format) (*image.NRGBA, error) {
	if !f.CanDecode() {
		return nil, &DecodeError{Format: f, Err: ErrUnsupportedFormat}
	}
	got, err := Detect(data)
	if err != nil {
		return nil, &DecodeError{Format: f, Err: errors.Unwrap(err)}
	}
	if got != f {
		return nil, &DecodeError{Format: f, Err: fmt.Errorf("data is %v", got)}
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Format: f, Err: err}
	}
	return imaging.Clone(img), nil
}

// Encode writes img in format f.
func Encode(img image.Image, f Format) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, &EncodeError{Format: f, Err: errors.New("empty image")}
	}
	buf := new(bytes.Buffer)
	if f == FormatPCX {
		if err := pcx.Encode(buf, img); err != nil {
			return nil, &EncodeError{Format: f, Err: err}
		}
		return buf.Bytes(), nil
	}
	imf, ok := f.imaging()
	if !ok {
		return nil, &EncodeError{Format: f, Err: ErrUnsupportedFormat}
	}
	if err := imaging.Encode(buf, img, imf); err != nil {
		return nil, &EncodeError{Format: f, Err: err}
	}
	return buf.Bytes(), nil
}
