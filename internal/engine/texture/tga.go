package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

var errTGATruncated = errors.New("TGA data truncated")

// DecodeTGA decodes uncompressed and RLE true-color TGA data, 24 or 32 bpp.
// TGA has no magic number, so callers pick it by file extension.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA header: %w", errTGATruncated)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	switch {
	case colorMapType != 0:
		return nil, fmt.Errorf("color-mapped TGA not supported")
	case imageType != TGATypeUncompressed && imageType != TGATypeRLE:
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	case bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	src := data[offset:]
	bytesPerPixel := bpp / 8

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	pixelCount := width * height
	pixelIdx := 0

	put := func(px []byte) {
		x, y := pixelIdx%width, pixelIdx/width
		if !topToBottom {
			y = height - 1 - y
		}
		i := img.PixOffset(x, y)
		a := uint8(255)
		if bytesPerPixel == 4 {
			a = px[3]
		}
		// BGR(A) on disk; image.RGBA is alpha-premultiplied.
		img.Pix[i+0] = uint8(uint16(px[2]) * uint16(a) / 255)
		img.Pix[i+1] = uint8(uint16(px[1]) * uint16(a) / 255)
		img.Pix[i+2] = uint8(uint16(px[0]) * uint16(a) / 255)
		img.Pix[i+3] = a
		pixelIdx++
	}

	if imageType == TGATypeUncompressed {
		if len(src) < pixelCount*bytesPerPixel {
			return nil, fmt.Errorf("TGA pixels: %w", errTGATruncated)
		}
		for pixelIdx < pixelCount {
			i := pixelIdx * bytesPerPixel
			put(src[i : i+bytesPerPixel])
		}
		return img, nil
	}

	pos := 0
	for pixelIdx < pixelCount {
		if pos >= len(src) {
			return nil, fmt.Errorf("TGA RLE stream: %w", errTGATruncated)
		}
		packet := src[pos]
		pos++
		count := int(packet&0x7F) + 1
		repeat := packet&0x80 != 0

		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if pos+bytesPerPixel > len(src) {
				return nil, fmt.Errorf("TGA RLE packet: %w", errTGATruncated)
			}
			put(src[pos : pos+bytesPerPixel])
			if !repeat {
				pos += bytesPerPixel
			}
		}
		if repeat {
			pos += bytesPerPixel
		}
	}
	return img, nil
}
