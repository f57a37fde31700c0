package itemset

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

const maxLine = 16 * 1024 * 1024

// Input opens the data to load. The closer releases whatever was opened.
type Input func() (reader io.Reader, closer func())

type Loader interface {
	Load(input Input) (*Dataset, error)
}

// IntLoader reads one transaction per line, the items are space separated
// integers.
//
//	10 1 5 7
//	213 2 5 1
type IntLoader struct{}

func NewIntLoader() *IntLoader {
	return &IntLoader{}
}

func (l *IntLoader) Load(input Input) (*Dataset, error) {
	in, closer := input()
	defer closer()
	rows := make([][]Item, 0, 1000)
	err := lines(in, func(lineno int, line string) error {
		row := make([]Item, 0, 10)
		for _, col := range strings.Fields(line) {
			item, err := strconv.ParseInt(col, 10, 32)
			if err != nil {
				errors.Logf("WARN", "input line %d contained non int '%s'", lineno, col)
				continue
			}
			row = append(row, Item(item))
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Dataset{Transactions: NewTransactions(rows)}, nil
}

// NameLoader reads one transaction per line, the items are whitespace
// separated names.
//
//	bread milk
//	bread diapers beer eggs
type NameLoader struct{}

func NewNameLoader() *NameLoader {
	return &NameLoader{}
}

func (l *NameLoader) Load(input Input) (*Dataset, error) {
	in, closer := input()
	defer closer()
	rows := make([][]string, 0, 1000)
	err := lines(in, func(_ int, line string) error {
		rows = append(rows, strings.Fields(line))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromNames(rows), nil
}

// JSONLoader reads a JSON array of transactions, each an array of item
// names. This is the format written by the gen package.
type JSONLoader struct{}

func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

func (l *JSONLoader) Load(input Input) (*Dataset, error) {
	in, closer := input()
	defer closer()
	var rows [][]string
	if err := json.NewDecoder(in).Decode(&rows); err != nil {
		return nil, errors.Errorf("could not decode json transactions: %v", err)
	}
	return FromNames(rows), nil
}

// lines calls do for every non-blank line. Blank lines are not
// transactions.
func lines(in io.Reader, do func(lineno int, line string) error) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := do(lineno, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
