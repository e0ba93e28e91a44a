package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrlokans/ibooks-highlights/internal/entities"
	"github.com/mrlokans/ibooks-highlights/internal/utils"
)

const (
	maxTitleLen     = 50
	exitOption      = "Exit"
	unknownTypeName = "Unknown Type"
)

// ErrCancelled is returned when the user leaves the menu without picking a book.
var ErrCancelled = errors.New("selection cancelled")

// Selector asks the user to pick one of the options and returns its index.
type Selector interface {
	Select(prompt string, options []string) (int, error)
}

// PromptSelector renders a numbered menu and reads the answer line by line.
type PromptSelector struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPromptSelector(in io.Reader, out io.Writer) *PromptSelector {
	return &PromptSelector{in: bufio.NewReader(in), out: out}
}

// Select keeps asking until it gets a number in range. End of input
// cancels the selection.
func (s *PromptSelector) Select(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, ErrCancelled
	}

	for i, option := range options {
		fmt.Fprintf(s.out, "%3d) %s\n", i+1, option)
	}

	for {
		fmt.Fprintf(s.out, "\n%s [1-%d]: ", prompt, len(options))

		line, err := s.in.ReadString('\n')
		answer := strings.TrimSpace(line)

		if answer != "" {
			if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(options) {
				return n - 1, nil
			}
			fmt.Fprintf(s.out, "⚠️  Please enter a number between 1 and %d\n", len(options))
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, ErrCancelled
			}
			return 0, fmt.Errorf("failed to read selection: %w", err)
		}
	}
}

// BookLabel is the menu entry of a book: "<title> by <author> • <format>".
func BookLabel(book entities.Book) string {
	contentType := string(book.ContentType)
	if contentType == "" {
		contentType = unknownTypeName
	}
	return fmt.Sprintf("%s by %s • %s", utils.Truncate(book.Title, maxTitleLen), book.Author, contentType)
}

// BookOptions returns one label per book followed by the exit entry.
func BookOptions(books []entities.Book) []string {
	options := make([]string, 0, len(books)+1)
	for _, book := range books {
		options = append(options, BookLabel(book))
	}
	return append(options, exitOption)
}

// SelectBook shows the book menu and returns the chosen book. Picking the
// exit entry returns ErrCancelled.
func SelectBook(selector Selector, books []entities.Book) (entities.Book, error) {
	if len(books) == 0 {
		return entities.Book{}, ErrCancelled
	}

	index, err := selector.Select("Select a book to view highlights", BookOptions(books))
	if err != nil {
		return entities.Book{}, err
	}
	if index < 0 || index >= len(books) {
		return entities.Book{}, ErrCancelled
	}
	return books[index], nil
}
