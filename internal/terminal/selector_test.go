package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/ibooks-highlights/internal/entities"
)

func TestPromptSelector_Select(t *testing.T) {
	options := []string{"First", "Second", "Exit"}

	tests := []struct {
		name      string
		input     string
		wantIndex int
		wantErr   error
	}{
		{name: "valid choice", input: "2\n", wantIndex: 1},
		{name: "surrounding whitespace", input: "  1  \n", wantIndex: 0},
		{name: "last line without newline", input: "3", wantIndex: 2},
		{name: "re-prompts after invalid input", input: "abc\n0\n9\n2\n", wantIndex: 1},
		{name: "blank lines are ignored", input: "\n\n1\n", wantIndex: 0},
		{name: "end of input cancels", input: "", wantErr: ErrCancelled},
		{name: "invalid then end of input", input: "x\n", wantErr: ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			selector := NewPromptSelector(strings.NewReader(tt.input), &out)

			index, err := selector.Select("Pick one", options)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIndex, index)
		})
	}
}

func TestPromptSelector_RendersMenu(t *testing.T) {
	var out bytes.Buffer
	selector := NewPromptSelector(strings.NewReader("7\n1\n"), &out)

	_, err := selector.Select("Pick one", []string{"Alpha", "Beta"})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "  1) Alpha\n")
	assert.Contains(t, output, "  2) Beta\n")
	assert.Contains(t, output, "Pick one [1-2]: ")
	assert.Contains(t, output, "Please enter a number between 1 and 2")
}

func TestBookLabel(t *testing.T) {
	tests := []struct {
		name string
		book entities.Book
		want string
	}{
		{
			name: "short title",
			book: entities.Book{Title: "Walden", Author: "Henry David Thoreau", ContentType: entities.ContentTypeEPUB},
			want: "Walden by Henry David Thoreau • EPUB",
		},
		{
			name: "missing content type",
			book: entities.Book{Title: "Walden", Author: "Henry David Thoreau"},
			want: "Walden by Henry David Thoreau • Unknown Type",
		},
		{
			name: "title of exactly fifty characters is kept",
			book: entities.Book{Title: strings.Repeat("a", 50), Author: "A", ContentType: entities.ContentTypeUnknown},
			want: strings.Repeat("a", 50) + " by A • Unknown",
		},
		{
			name: "long title is truncated",
			book: entities.Book{Title: strings.Repeat("b", 60), Author: "B", ContentType: entities.ContentTypeEPUB},
			want: strings.Repeat("b", 47) + "... by B • EPUB",
		},
		{
			name: "multibyte title is cut on rune boundaries",
			book: entities.Book{Title: strings.Repeat("é", 51), Author: "C", ContentType: entities.ContentTypeEPUB},
			want: strings.Repeat("é", 47) + "... by C • EPUB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BookLabel(tt.book))
		})
	}
}

func TestBookOptions(t *testing.T) {
	books := []entities.Book{
		{Title: "One", Author: "A", ContentType: entities.ContentTypeEPUB},
		{Title: "Two", Author: "B"},
	}

	options := BookOptions(books)

	assert.Equal(t, []string{"One by A • EPUB", "Two by B • Unknown Type", "Exit"}, options)
	assert.Equal(t, []string{"Exit"}, BookOptions(nil))
}

type stubSelector struct {
	index   int
	err     error
	options []string
}

func (s *stubSelector) Select(_ string, options []string) (int, error) {
	s.options = options
	return s.index, s.err
}

func TestSelectBook(t *testing.T) {
	books := []entities.Book{
		{ID: "a", Title: "One", Author: "A"},
		{ID: "b", Title: "Two", Author: "B"},
	}

	t.Run("returns the chosen book", func(t *testing.T) {
		selector := &stubSelector{index: 1}

		book, err := SelectBook(selector, books)
		require.NoError(t, err)
		assert.Equal(t, "b", book.ID)
		assert.Len(t, selector.options, 3)
	})

	t.Run("exit entry cancels", func(t *testing.T) {
		_, err := SelectBook(&stubSelector{index: 2}, books)
		assert.ErrorIs(t, err, ErrCancelled)
	})

	t.Run("selector errors are returned", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := SelectBook(&stubSelector{err: boom}, books)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("no books cancels without prompting", func(t *testing.T) {
		selector := &stubSelector{}
		_, err := SelectBook(selector, nil)
		assert.ErrorIs(t, err, ErrCancelled)
		assert.Nil(t, selector.options)
	})
}
