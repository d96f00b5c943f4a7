package tts

import (
	"encoding/binary"
	"fmt"
	"time"
)

// WAVDuration computes the playback duration of a RIFF/WAVE byte stream
// from its fmt and data chunks. The remote service returns raw bytes only;
// the duration the verifier needs comes from here.
func WAVDuration(data []byte) (time.Duration, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return 0, fmt.Errorf("%w: not a RIFF/WAVE stream", ErrBadAudio)
	}

	var byteRate uint32
	var dataLen uint32
	haveFmt, haveData := false, false

	// Walk the chunk list. Chunks are word-aligned.
	for off := 12; off+8 <= len(data); {
		id := string(data[off : off+4])
		size := binary.LittleEndian.Uint32(data[off+4 : off+8])
		body := off + 8

		switch id {
		case "fmt ":
			if body+16 > len(data) {
				return 0, fmt.Errorf("%w: truncated fmt chunk", ErrBadAudio)
			}
			byteRate = binary.LittleEndian.Uint32(data[body+8 : body+12])
			haveFmt = true
		case "data":
			dataLen = size
			haveData = true
		}

		off = body + int(size)
		if size%2 == 1 {
			off++
		}
	}

	if !haveFmt || !haveData {
		return 0, fmt.Errorf("%w: missing fmt or data chunk", ErrBadAudio)
	}
	if byteRate == 0 {
		return 0, fmt.Errorf("%w: zero byte rate", ErrBadAudio)
	}

	seconds := float64(dataLen) / float64(byteRate)
	return time.Duration(seconds * float64(time.Second)), nil
}

// EncodeWAV wraps raw PCM16 samples in a minimal RIFF/WAVE container. The
// mock engine and tests use it to produce audio that WAVDuration accepts.
func EncodeWAV(samples []byte, sampleRate, channels int) []byte {
	byteRate := sampleRate * channels * 2
	blockAlign := channels * 2

	out := make([]byte, 0, 44+len(samples))
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(36+len(samples)))
	out = append(out, "WAVE"...)

	out = append(out, "fmt "...)
	out = binary.LittleEndian.AppendUint32(out, 16)
	out = binary.LittleEndian.AppendUint16(out, 1) // PCM
	out = binary.LittleEndian.AppendUint16(out, uint16(channels))
	out = binary.LittleEndian.AppendUint32(out, uint32(sampleRate))
	out = binary.LittleEndian.AppendUint32(out, uint32(byteRate))
	out = binary.LittleEndian.AppendUint16(out, uint16(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, 16) // bits per sample

	out = append(out, "data"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(samples)))
	out = append(out, samples...)
	return out
}
