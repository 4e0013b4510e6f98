package core

// findInside locates the interior of the delimiter pair around col and
// returns it as the half-open span [start, end).
func findInside(line []rune, col int, delim rune) (start, end int, err error) {
	switch delim {
	case '(':
		return findInsideBrackets(line, col, '(', ')')
	case '"':
		return findInsideQuotes(line, col, '"')
	}
	return 0, 0, ErrInvalidDelimiter
}

// findInsideBrackets walks left from col to the nearest unmatched open
// bracket, then right from it to the bracket that returns depth to zero.
// A close bracket under the cursor belongs to the pair being searched.
func findInsideBrackets(line []rune, col int, open, close rune) (int, int, error) {
	if len(line) == 0 {
		return 0, 0, ErrNoEnclosingPair
	}
	col = min(col, len(line)-1)

	openIdx := -1
	depth := 0
	for i := col; i >= 0; i-- {
		switch {
		case line[i] == close && i != col:
			depth++
		case line[i] == open && depth == 0:
			openIdx = i
		case line[i] == open:
			depth--
		}
		if openIdx >= 0 {
			break
		}
	}
	if openIdx < 0 {
		return 0, 0, ErrNoEnclosingPair
	}

	depth = 0
	for i := openIdx; i < len(line); i++ {
		switch line[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return openIdx + 1, i, nil
			}
		}
	}
	return 0, 0, ErrNoEnclosingPair
}

// findInsideQuotes pairs quote characters two at a time from the start of
// the line and picks the first pair whose span contains col. An odd quote
// before the cursor shifts every later pairing.
func findInsideQuotes(line []rune, col int, quote rune) (int, int, error) {
	first := -1
	for i, r := range line {
		if r != quote {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		if col >= first && col <= i {
			return first + 1, i, nil
		}
		first = -1
	}
	return 0, 0, ErrNoEnclosingPair
}
