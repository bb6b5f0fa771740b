package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/bandcamp-track-extractor/internal/config"
	"github.com/handiism/bandcamp-track-extractor/internal/lookup"
	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func sampleResults() []lookup.Result {
	return []lookup.Result{
		{
			URL: "https://a.bandcamp.com/track/one",
			Metadata: &model.TrackMetadata{
				Name:         "One",
				UploaderName: "Artist",
				Category:     "ambient",
				License:      "CC BY 3.0",
				Duration:     90,
				AudioStreams: []model.AudioStream{{URL: "https://t4.bcbits.com/stream/one"}},
			},
		},
		{URL: "https://a.bandcamp.com/track/two", Err: errors.New("boom")},
	}
}

func TestModel_Toggles(t *testing.T) {
	m := NewModel(Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})

	assert.True(t, m.savePlaylist)
	assert.True(t, m.saveMetadata)
	assert.True(t, m.verbose)
	assert.Contains(t, m.View(), "[×] Create playlist")
}

func TestModel_EnterWithoutURL(t *testing.T) {
	m := NewModel(Options{})
	m.textInput.SetValue("not a url")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StateInput, m.state)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "no http(s) URL")
}

func TestModel_LookupDone(t *testing.T) {
	m := NewModel(Options{})
	m.state = StateLookingUp

	m = update(t, m, LookupDoneMsg{Results: sampleResults()})

	assert.Equal(t, StateComplete, m.state)
	view := m.View()
	assert.Contains(t, view, "Artist - One")
	assert.Contains(t, view, "ambient · CC BY 3.0 · 1m30s")
	assert.Contains(t, view, "boom")
}

func TestModel_LookupDoneIgnoredAfterReset(t *testing.T) {
	m := NewModel(Options{})

	m = update(t, m, LookupDoneMsg{Results: sampleResults()})

	assert.Equal(t, StateInput, m.state)
	assert.Nil(t, m.results)
}

func TestModel_VerboseFilter(t *testing.T) {
	m := NewModel(Options{})
	m.state = StateLookingUp

	m = update(t, m, ProgressMsg{Event: lookup.ProgressEvent{Message: "hidden", Level: lookup.LevelVerbose}})
	m = update(t, m, ProgressMsg{Event: lookup.ProgressEvent{Message: "shown", Level: lookup.LevelSuccess}})

	require.Len(t, m.logs, 1)
	assert.Equal(t, "shown", m.logs[0].Message)
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	opts := Options{Settings: config.DefaultSettings(), OutputDir: dir}

	written, err := writeOutputs(context.Background(), opts, sampleResults(), true, true)
	require.NoError(t, err)
	require.Len(t, written, 2)

	assert.Equal(t, filepath.Join(dir, "Artist - One.yaml"), written[0])
	assert.Equal(t, filepath.Join(dir, "bandcamp-tracks.m3u"), written[1])

	playlist, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Contains(t, string(playlist), "https://t4.bcbits.com/stream/one")
}
