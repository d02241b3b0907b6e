package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitterSplit(t *testing.T) {
	t.Run("Should return nil for empty or blank text", func(t *testing.T) {
		s := NewSplitter(DefaultChunkSize, DefaultOverlap)
		assert.Nil(t, s.Split(""))
		assert.Nil(t, s.Split("   \n\t  "))
	})

	t.Run("Should keep short text as a single chunk", func(t *testing.T) {
		s := NewSplitter(DefaultChunkSize, DefaultOverlap)
		chunks := s.Split("Riba is prohibited in Islamic finance.")
		require.Len(t, chunks, 1)
		assert.Equal(t, "Riba is prohibited in Islamic finance.", chunks[0])
	})

	t.Run("Should split oversize text on word boundaries", func(t *testing.T) {
		s := NewSplitter(10, 0)
		chunks := s.Split("aaa bbb ccc ddd")
		assert.Equal(t, []string{"aaa bbb", "ccc ddd"}, chunks)
	})

	t.Run("Should carry trailing units into the next chunk as overlap", func(t *testing.T) {
		s := NewSplitter(10, 4)
		chunks := s.Split("aaa bbb ccc ddd")
		assert.Equal(t, []string{"aaa bbb", "bbb ccc", "ccc ddd"}, chunks)
	})

	t.Run("Should prefer paragraph boundaries", func(t *testing.T) {
		s := NewSplitter(10, 0)
		chunks := s.Split("aaaaaa\n\nbbbbbb")
		assert.Equal(t, []string{"aaaaaa", "bbbbbb"}, chunks)
	})

	t.Run("Should keep sentence-final punctuation with the sentence", func(t *testing.T) {
		s := NewSplitter(12, 0)
		chunks := s.Split("First one. Second two.")
		assert.Equal(t, []string{"First one.", "Second two."}, chunks)
	})

	t.Run("Should keep an indivisible oversize unit whole", func(t *testing.T) {
		long := strings.Repeat("x", 25)
		s := NewSplitter(10, 0)
		chunks := s.Split(long)
		require.Len(t, chunks, 1)
		assert.Equal(t, long, chunks[0])
	})

	t.Run("Should respect the window size for divisible text", func(t *testing.T) {
		var sentences []string
		for i := 0; i < 40; i++ {
			sentences = append(sentences, "The contract must state the markup clearly.")
		}
		text := strings.Join(sentences, " ")

		s := NewSplitter(200, 50)
		chunks := s.Split(text)
		require.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 200)
		}
	})

	t.Run("Should keep the window bound when the carry meets a large unit", func(t *testing.T) {
		text := strings.Repeat("a", 900) + "\n\n" + strings.Repeat("b", 100) + "\n\n" + strings.Repeat("c", 950)
		s := NewSplitter(1000, 150)
		chunks := s.Split(text)
		require.NotEmpty(t, chunks)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 1000)
		}
	})

	t.Run("Should drop the carry entirely when needed", func(t *testing.T) {
		s := NewSplitter(10, 4)
		chunks := s.Split("aaa bbbbbbbbb ccccccccc")
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 10)
		}
	})

	t.Run("Should fall back to defaults for invalid geometry", func(t *testing.T) {
		s := NewSplitter(0, -1)
		chunks := s.Split("short text")
		require.Len(t, chunks, 1)
		assert.Equal(t, "short text", chunks[0])
	})
}
