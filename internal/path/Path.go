package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Move is one primitive instruction. Letters outside F/L/R survive parsing and
// are rejected when the sequence is replayed.
type Move rune

const (
	Forward   Move = 'F'
	TurnLeft  Move = 'L'
	TurnRight Move = 'R'
)

const (
	// maxRepeat bounds a single numeric prefix.
	maxRepeat = 1_000_000
	// maxMoves bounds the expanded sequence.
	maxMoves = 1_000_000
)

var (
	ErrMalformedCount = errors.New("malformed repeat count")
	ErrTooLong        = errors.New("path expands to too many moves")
)

func (m Move) IsValid() bool {
	return m == Forward || m == TurnLeft || m == TurnRight
}

func (m Move) String() string {
	return string(rune(m))
}

// Parse expands move text such as "3F 2L R" into primitive moves. A run of
// digits repeats the letter that follows it. Digits left over at the end of a
// token repeat the token's last character. The expansion is capped at
// maxMoves.
func Parse(text string) ([]Move, error) {
	moves := []Move{}
	var err error

	for _, token := range strings.Fields(text) {
		runes := []rune(token)
		var digits strings.Builder

		for _, r := range runes {
			if isDigit(r) {
				digits.WriteRune(r)
				continue
			}

			count := 1
			if digits.Len() > 0 {
				n, err := repeatCount(digits.String())
				if err != nil {
					return nil, err
				}
				count = n
				digits.Reset()
			}
			if moves, err = appendRepeated(moves, Move(r), count); err != nil {
				return nil, err
			}
		}

		// TODO: reject dangling digits once callers no longer depend on "3F2"-style input.
		if digits.Len() > 0 {
			n, err := repeatCount(digits.String())
			if err != nil {
				return nil, err
			}
			if moves, err = appendRepeated(moves, Move(runes[len(runes)-1]), n); err != nil {
				return nil, err
			}
		}
	}

	return moves, nil
}

// Canonical joins runs of identical moves into one substring, e.g. "FF L FFF R".
func Canonical(moves []Move) string {
	return render(moves, func(m Move, count int) string {
		return strings.Repeat(m.String(), count)
	})
}

// Factorized renders runs as <count><letter>, omitting a count of one, e.g. "2F L 3F R".
func Factorized(moves []Move) string {
	return render(moves, func(m Move, count int) string {
		if count > 1 {
			return strconv.Itoa(count) + m.String()
		}
		return m.String()
	})
}

// String renders moves without any grouping.
func String(moves []Move) string {
	var sb strings.Builder
	for _, m := range moves {
		sb.WriteRune(rune(m))
	}
	return sb.String()
}

func render(moves []Move, group func(m Move, count int) string) string {
	if len(moves) == 0 {
		return ""
	}

	groups := []string{}
	last := moves[0]
	count := 1
	for _, m := range moves[1:] {
		if m == last {
			count++
			continue
		}
		groups = append(groups, group(last, count))
		last = m
		count = 1
	}
	groups = append(groups, group(last, count))

	return strings.Join(groups, " ")
}

func repeatCount(digits string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrMalformedCount, digits, err)
	}
	if n > maxRepeat {
		return 0, fmt.Errorf("%w %q: exceeds %d", ErrMalformedCount, digits, maxRepeat)
	}
	return n, nil
}

func appendRepeated(moves []Move, m Move, count int) ([]Move, error) {
	if len(moves)+count > maxMoves {
		return nil, fmt.Errorf("%w: more than %d", ErrTooLong, maxMoves)
	}
	for range count {
		moves = append(moves, m)
	}
	return moves, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
