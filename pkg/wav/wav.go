// Package wav frames 16-bit mono PCM into RIFF/WAVE containers and back.
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	bitsPerSample = 16
	channels      = 1
)

var (
	ErrInvalidContainer  = errors.New("invalid wave container")
	ErrUnsupportedFormat = errors.New("unsupported wave format")
)

// Encode wraps little-endian 16-bit mono PCM in a WAVE container.
func Encode(pcm []byte, sampleRate int) []byte {
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	var buf bytes.Buffer

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

// Decode extracts the PCM payload and sample rate from a WAVE container.
// Accepts uncompressed 16-bit integer PCM as-is and converts 32-bit float
// PCM, which some model runtimes emit, down to 16 bits.
func Decode(data []byte) ([]byte, int, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, ErrInvalidContainer
	}

	var format, bits uint16
	var sampleRate int
	var payload []byte

	offset := 12

	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))

		offset += 8

		if offset+size > len(data) {
			return nil, 0, ErrInvalidContainer
		}

		chunk := data[offset : offset+size]

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, ErrInvalidContainer
			}

			format = binary.LittleEndian.Uint16(chunk[0:2])
			bits = binary.LittleEndian.Uint16(chunk[14:16])

			sampleRate = int(binary.LittleEndian.Uint32(chunk[4:8]))

		case "data":
			payload = chunk
		}

		// Chunks are word-aligned.
		offset += size + size%2
	}

	if sampleRate == 0 || payload == nil {
		return nil, 0, ErrInvalidContainer
	}

	switch {
	case format == 1 && bits == bitsPerSample:
		return payload, sampleRate, nil

	case format == 3 && bits == 32:
		if len(payload)%4 != 0 {
			return nil, 0, ErrInvalidContainer
		}

		samples := make([]float32, len(payload)/4)

		for i := range samples {
			samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
		}

		return ConvertFloat32(samples), sampleRate, nil

	default:
		return nil, 0, fmt.Errorf("%w: format %d, %d bits", ErrUnsupportedFormat, format, bits)
	}
}

// Duration returns the playback length in seconds of a PCM payload.
func Duration(pcmLen, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}

	samples := pcmLen / (channels * bitsPerSample / 8)

	return float64(samples) / float64(sampleRate)
}

// ConvertFloat32 scales float samples to 16-bit PCM, normalizing first when
// the signal peaks above 1.0.
func ConvertFloat32(samples []float32) []byte {
	var peak float32 = 1.0

	for _, s := range samples {
		if abs := float32(math.Abs(float64(s))); abs > peak {
			peak = abs
		}
	}

	pcm := make([]byte, 2*len(samples))

	for i, s := range samples {
		v := int16(s / peak * math.MaxInt16)
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(v))
	}

	return pcm
}
