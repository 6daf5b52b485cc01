// Package mp4probe reads video metadata from MP4 containers without
// decoding any samples.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/termplay/pkg/ports"
)

// Codec names reported in ports.MediaInfo.
const (
	CodecH264    = "h264"
	CodecHEVC    = "hevc"
	CodecAV1     = "av1"
	CodecVP9     = "vp9"
	CodecUnknown = "unknown"
)

// ErrNoVideoTrack is returned when the container has no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Prober implements ports.MediaProber for MP4 files.
type Prober struct{}

// New creates a Prober.
func New() *Prober {
	return &Prober{}
}

// Probe reads the moov box of the file at path.
func (p *Prober) Probe(path string) (ports.MediaInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return p.ProbeReader(f)
}

// ProbeReader probes an MP4 stream. Sample data is not loaded.
func (p *Prober) ProbeReader(r io.ReadSeeker) (ports.MediaInfo, error) {
	mp4File, err := mp4.DecodeFile(r, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if mp4File.IsFragmented() && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		info := ports.MediaInfo{Codec: CodecUnknown}
		describeSampleEntry(trak, &info)
		info.FPS = trackFrameRate(trak, findTrex(moov, trak))
		return info, nil
	}

	return ports.MediaInfo{}, ErrNoVideoTrack
}

func describeSampleEntry(trak *mp4.TrakBox, info *ports.MediaInfo) {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		codec := codecForSampleEntry(child.Type())
		if codec == CodecUnknown {
			continue
		}
		info.Codec = codec
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
		return
	}
}

func codecForSampleEntry(boxType string) string {
	switch boxType {
	case "avc1", "avc3":
		return CodecH264
	case "hvc1", "hev1":
		return CodecHEVC
	case "av01":
		return CodecAV1
	case "vp09":
		return CodecVP9
	default:
		return CodecUnknown
	}
}

func findTrex(moov *mp4.MoovBox, trak *mp4.TrakBox) *mp4.TrexBox {
	if moov.Mvex == nil || trak.Tkhd == nil {
		return nil
	}
	for _, t := range moov.Mvex.Trexs {
		if t.TrackID == trak.Tkhd.TrackID {
			return t
		}
	}
	return nil
}

// trackFrameRate derives the nominal frame rate from the sample table, or
// from the fragment defaults for fragmented files.
func trackFrameRate(trak *mp4.TrakBox, trex *mp4.TrexBox) float64 {
	if trak.Mdia.Mdhd == nil {
		return 0
	}
	timescale := trak.Mdia.Mdhd.Timescale

	if stbl := trak.Mdia.Minf; stbl != nil && stbl.Stbl != nil && stbl.Stbl.Stts != nil {
		stts := stbl.Stbl.Stts
		if fps := frameRate(timescale, stts.SampleCount, stts.SampleTimeDelta); fps > 0 {
			return fps
		}
	}
	if trex != nil && trex.DefaultSampleDuration > 0 {
		return float64(timescale) / float64(trex.DefaultSampleDuration)
	}
	return 0
}

// frameRate is samples per second over an stts run-length table.
func frameRate(timescale uint32, counts, deltas []uint32) float64 {
	if timescale == 0 || len(counts) != len(deltas) {
		return 0
	}
	var samples, duration uint64
	for i := range counts {
		samples += uint64(counts[i])
		duration += uint64(counts[i]) * uint64(deltas[i])
	}
	if samples == 0 || duration == 0 {
		return 0
	}
	return float64(samples) * float64(timescale) / float64(duration)
}

var _ ports.MediaProber = (*Prober)(nil)
