package voice

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrRecognitionUnsupported = errors.New("voice recognition is not supported")
	ErrNoTranscript           = errors.New("no transcript received")
)

// Recognizer is the speech-to-text capability. Each call yields exactly one
// final transcript or an error.
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
}

// RecognizerFunc adapts a function to Recognizer.
type RecognizerFunc func(ctx context.Context) (string, error)

func (f RecognizerFunc) Recognize(ctx context.Context) (string, error) {
	return f(ctx)
}

// ReaderRecognizer takes the first non-empty line of r as the transcript,
// for engines that write their final result to a pipe.
type ReaderRecognizer struct {
	r io.Reader
}

func NewReaderRecognizer(r io.Reader) *ReaderRecognizer {
	return &ReaderRecognizer{r: r}
}

// Recognize returns when a line is read, the reader ends or ctx is done.
// A read blocked past cancellation is abandoned.
func (rr *ReaderRecognizer) Recognize(ctx context.Context) (string, error) {
	if rr == nil || rr.r == nil {
		return "", ErrRecognitionUnsupported
	}

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		sc := bufio.NewScanner(rr.r)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				ch <- result{text: line}
				return
			}
		}
		if err := sc.Err(); err != nil {
			ch <- result{err: fmt.Errorf("read transcript: %w", err)}
			return
		}
		ch <- result{err: ErrNoTranscript}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.text, res.err
	}
}

// Capture obtains one transcript and parses it. The transcript is returned
// even when parsing fails so callers can show what was heard.
func Capture(ctx context.Context, rec Recognizer) (Draft, string, error) {
	if rec == nil {
		return Draft{}, "", ErrRecognitionUnsupported
	}
	text, err := rec.Recognize(ctx)
	if err != nil {
		return Draft{}, "", fmt.Errorf("recognize speech: %w", err)
	}
	d, err := Parse(text)
	if err != nil {
		return Draft{}, text, err
	}
	return d, text, nil
}
