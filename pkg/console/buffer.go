package console

// LineBuffer is the line of input being composed, together with a cursor
// measured in runes. Indexing in runes rather than bytes keeps the cursor
// math correct for multi-byte input.
//
// The zero value is an empty buffer with the cursor at 0. The invariant
// 0 <= cursor <= len(content) holds after every operation.
type LineBuffer struct {
	content []rune
	cursor  int
}

// Insert inserts a rune immediately before the cursor and advances the
// cursor past it.
func (b *LineBuffer) Insert(r rune) {
	b.content = append(b.content, 0)
	copy(b.content[b.cursor+1:], b.content[b.cursor:])
	b.content[b.cursor] = r
	b.cursor++
}

// Backspace removes the rune immediately before the cursor and decrements
// the cursor. It returns the removed rune, or false if the cursor is at the
// start of the buffer.
func (b *LineBuffer) Backspace() (rune, bool) {
	if b.cursor == 0 {
		return 0, false
	}
	b.cursor--
	r := b.content[b.cursor]
	b.content = append(b.content[:b.cursor], b.content[b.cursor+1:]...)
	return r, true
}

// Left moves the cursor one rune to the left. It returns the rune the
// cursor moved over, or false if the cursor is at the start of the buffer.
func (b *LineBuffer) Left() (rune, bool) {
	if b.cursor == 0 {
		return 0, false
	}
	b.cursor--
	return b.content[b.cursor], true
}

// Right moves the cursor one rune to the right. It returns the rune the
// cursor moved over, or false if the cursor is at the end of the buffer.
func (b *LineBuffer) Right() (rune, bool) {
	if b.cursor == len(b.content) {
		return 0, false
	}
	r := b.content[b.cursor]
	b.cursor++
	return r, true
}

// Reset clears the content and resets the cursor.
func (b *LineBuffer) Reset() {
	b.content = b.content[:0]
	b.cursor = 0
}

// Content returns the buffer content as a string.
func (b *LineBuffer) Content() string {
	return string(b.content)
}

// Tail returns the content from the given rune offset to the end.
func (b *LineBuffer) Tail(from int) string {
	return string(b.content[from:])
}

// Cursor returns the cursor as a rune offset into the content.
func (b *LineBuffer) Cursor() int {
	return b.cursor
}

// Len returns the length of the content in runes.
func (b *LineBuffer) Len() int {
	return len(b.content)
}
