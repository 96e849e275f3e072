package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// ErrNoSpeaker indicates the audio device could not be initialised.
var ErrNoSpeaker = errors.New("audio output unavailable")

// Output is the mixer the alert is played through.
type Output interface {
	Play(streamers ...beep.Streamer)
	Lock()
	Unlock()
}

// Config contains playback options.
type Config struct {
	// Volume is a base-2 gain exponent: 0 is unchanged, -1 halves the amplitude.
	Volume float64
	Muted  bool
}

// Beeper plays a single buffered clip and can be paused and rewound.
type Beeper struct {
	output   Output
	seeker   beep.StreamSeeker
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	attached bool
}

// Decode reads a WAV clip fully into memory.
func Decode(reader io.Reader) (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read wav samples: %w", err)
	}
	return buffer, nil
}

// DecodeFile reads a WAV clip from disk.
func DecodeFile(path string) (*beep.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound file: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// New creates a Beeper that plays buffer through output.
func New(buffer *beep.Buffer, output Output, config Config) *Beeper {
	seeker := buffer.Streamer(0, buffer.Len())
	// Start at the end so the first Play rewinds like every later one.
	_ = seeker.Seek(seeker.Len())
	ctrl := &beep.Ctrl{Streamer: seeker}
	return &Beeper{
		output: output,
		seeker: seeker,
		ctrl:   ctrl,
		volume: &effects.Volume{
			Streamer: ctrl,
			Base:     2,
			Volume:   config.Volume,
			Silent:   config.Muted,
		},
	}
}

// NewSpeaker initialises the system speaker for buffer's sample rate.
func NewSpeaker(buffer *beep.Buffer, config Config) (*Beeper, error) {
	if err := initSpeaker(buffer.Format().SampleRate); err != nil {
		return nil, err
	}
	return New(buffer, speakerOutput{}, config), nil
}

// Play starts the clip, resuming a paused one or restarting a finished one.
func (beeper *Beeper) Play() error {
	beeper.output.Lock()
	if beeper.seeker.Position() >= beeper.seeker.Len() {
		if err := beeper.seeker.Seek(0); err != nil {
			beeper.output.Unlock()
			return fmt.Errorf("rewind finished alert: %w", err)
		}
	}
	beeper.ctrl.Paused = false
	attach := !beeper.attached
	beeper.attached = true
	beeper.output.Unlock()

	if attach {
		beeper.output.Play(beep.Seq(beeper.volume, beep.Callback(beeper.detach)))
	}
	return nil
}

// Rewind pauses playback and moves back to the first sample.
func (beeper *Beeper) Rewind() error {
	beeper.output.Lock()
	defer beeper.output.Unlock()
	beeper.ctrl.Paused = true
	if err := beeper.seeker.Seek(0); err != nil {
		return fmt.Errorf("rewind alert: %w", err)
	}
	return nil
}

// SetConfig updates volume and mute for subsequent samples.
func (beeper *Beeper) SetConfig(config Config) {
	beeper.output.Lock()
	defer beeper.output.Unlock()
	beeper.volume.Volume = config.Volume
	beeper.volume.Silent = config.Muted
}

// detach runs on the mixer with the output lock held.
func (beeper *Beeper) detach() {
	beeper.attached = false
}

var (
	speakerOnce sync.Once
	speakerErr  error
	speakerRate beep.SampleRate
)

func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		speakerRate = rate
		if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
			speakerErr = fmt.Errorf("%w: %v", ErrNoSpeaker, err)
		}
	})
	if speakerErr != nil {
		return speakerErr
	}
	if rate != speakerRate {
		return fmt.Errorf("%w: speaker opened at %d Hz, clip is %d Hz", ErrNoSpeaker, speakerRate, rate)
	}
	return nil
}

type speakerOutput struct{}

func (speakerOutput) Play(streamers ...beep.Streamer) { speaker.Play(streamers...) }
func (speakerOutput) Lock()                          { speaker.Lock() }
func (speakerOutput) Unlock()                        { speaker.Unlock() }
