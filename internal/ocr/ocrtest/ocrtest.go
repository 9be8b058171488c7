// Package ocrtest provides a scripted OCR engine for pipeline tests.
package ocrtest

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/resume-formatter/internal/ocr"
)

// Response scripts the outcome for one input ID.
type Response struct {
	Text string
	// Confidence applies to every word when WordConfidences is empty.
	Confidence float64
	// WordConfidences overrides per-word confidence, positionally matching
	// the whitespace-split words of Text.
	WordConfidences []float64
	// FailuresBeforeSuccess makes the first N calls for this ID return an
	// error, exercising retry behavior.
	FailuresBeforeSuccess int
	// Delay stalls the call, exercising deadline behavior.
	Delay time.Duration
	// Err, when set, always fails the call.
	Err error
}

// ScriptedEngine returns canned results keyed by input ID and records every
// call it receives.
type ScriptedEngine struct {
	mu        sync.Mutex
	responses map[string]*Response
	calls     []string
	failures  map[string]int
}

// NewScriptedEngine builds an engine from a script of responses by input ID.
func NewScriptedEngine(responses map[string]*Response) *ScriptedEngine {
	return &ScriptedEngine{
		responses: responses,
		failures:  make(map[string]int),
	}
}

func (e *ScriptedEngine) Name() string { return "scripted" }

// Recognize replays the scripted response for the input's ID. Unscripted IDs
// fail, which keeps tests honest about what they submit.
func (e *ScriptedEngine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	e.mu.Lock()
	e.calls = append(e.calls, in.ID)
	resp := e.responses[in.ID]
	if resp != nil && e.failures[in.ID] < resp.FailuresBeforeSuccess {
		e.failures[in.ID]++
		e.mu.Unlock()
		return ocr.Result{}, fmt.Errorf("scripted failure %d for %s", e.failures[in.ID], in.ID)
	}
	e.mu.Unlock()

	if resp == nil {
		return ocr.Result{}, fmt.Errorf("ocrtest: no scripted response for %q", in.ID)
	}
	if resp.Err != nil {
		return ocr.Result{}, resp.Err
	}
	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-ctx.Done():
			return ocr.Result{}, ctx.Err()
		}
	}
	return buildResult(in.ID, resp), nil
}

// Calls returns the input IDs received so far, in order.
func (e *ScriptedEngine) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// CallCount returns how many times the given input ID was submitted.
func (e *ScriptedEngine) CallCount(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, c := range e.calls {
		if c == id {
			n++
		}
	}
	return n
}

func buildResult(id string, resp *Response) ocr.Result {
	fields := strings.Fields(resp.Text)
	words := make([]ocr.Word, 0, len(fields))
	var sum float64
	for i, f := range fields {
		conf := resp.Confidence
		if i < len(resp.WordConfidences) {
			conf = resp.WordConfidences[i]
		}
		sum += conf
		words = append(words, ocr.Word{
			Text:       f,
			Bounds:     image.Rect(i*10, 0, i*10+8, 10),
			Confidence: conf,
		})
	}
	avg := 0.0
	if len(words) > 0 {
		avg = sum / float64(len(words))
	}
	return ocr.Result{InputID: id, Text: resp.Text, Words: words, Confidence: avg}
}
