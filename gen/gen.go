package gen

import (
	"encoding/json"
	"io"
	"math/rand"
	"os"
	"sort"
)

import (
	"github.com/go-playground/validator/v10"
	"github.com/timtadh/data-structures/errors"
	"gopkg.in/yaml.v3"
)

import (
	"github.com/timtadh/sapriori/stats"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Category is a group of items. A transaction includes the category with
// Probability and then takes 1 or 2 of its items.
type Category struct {
	Name        string   `yaml:"name" validate:"required"`
	Items       []string `yaml:"items" validate:"min=1,dive,required"`
	Probability float64  `yaml:"probability" validate:"gte=0,lte=1"`
}

// Association adds Then with Probability to a transaction holding every
// item of If.
type Association struct {
	If          []string `yaml:"if" validate:"min=1,dive,required"`
	Then        string   `yaml:"then" validate:"required"`
	Probability float64  `yaml:"probability" validate:"gte=0,lte=1"`
}

type Definition struct {
	Categories   []Category    `yaml:"categories" validate:"min=1,dive"`
	Associations []Association `yaml:"associations" validate:"dive"`
}

// Groceries is the built in market basket definition.
func Groceries() *Definition {
	return &Definition{
		Categories: []Category{
			{"dairy", []string{"milk", "cheese", "yogurt", "butter", "cream", "cream cheese"}, .6},
			{"bread", []string{"white bread", "wheat bread", "bagels", "rolls", "croissants"}, .5},
			{"produce", []string{"apples", "bananas", "carrots", "lettuce", "tomatoes"}, .7},
			{"meat", []string{"chicken", "beef", "pork", "fish", "ham"}, .4},
			{"snacks", []string{"chips", "cookies", "crackers", "candy", "popcorn"}, .3},
			{"beverages", []string{"soda", "juice", "coffee", "tea", "water"}, .5},
			{"household", []string{"paper towels", "toilet paper", "detergent", "soap", "trash bags"}, .2},
		},
		Associations: []Association{
			{[]string{"white bread"}, "butter", .7},
			{[]string{"coffee"}, "cream", .6},
			{[]string{"chips"}, "soda", .5},
			{[]string{"bagels"}, "cream cheese", .8},
			{[]string{"chicken"}, "lettuce", .4},
		},
	}
}

// LoadDefinition reads a yaml definition.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := new(Definition)
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, errors.Errorf("could not parse %v: %v", path, err)
	}
	return d, nil
}

type Generator struct {
	def      *Definition
	rng      *rand.Rand
	category map[string]string
}

func NewGenerator(def *Definition, rng *rand.Rand) (*Generator, error) {
	if err := validate.Struct(def); err != nil {
		return nil, errors.Errorf("invalid dataset definition: %v", err)
	}
	g := &Generator{
		def:      def,
		rng:      rng,
		category: make(map[string]string),
	}
	for _, c := range def.Categories {
		for _, item := range c.Items {
			if _, has := g.category[item]; !has {
				g.category[item] = c.Name
			}
		}
	}
	return g, nil
}

// Transaction draws one transaction. Its items are sorted.
func (g *Generator) Transaction() []string {
	tx := make(map[string]bool)
	for _, c := range g.def.Categories {
		if g.rng.Float64() >= c.Probability {
			continue
		}
		for _, i := range stats.Sample(g.rng, 1+g.rng.Intn(2), len(c.Items)) {
			tx[c.Items[i]] = true
		}
	}
	for _, a := range g.def.Associations {
		holds := true
		for _, item := range a.If {
			if !tx[item] {
				holds = false
				break
			}
		}
		if holds && g.rng.Float64() < a.Probability {
			tx[a.Then] = true
		}
	}
	items := make([]string, 0, len(tx))
	for item := range tx {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

func (g *Generator) Generate(n int) [][]string {
	txs := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		txs = append(txs, g.Transaction())
	}
	return txs
}

// WriteJSON writes the transactions as a json array of arrays of item names,
// the format read by the json loader.
func WriteJSON(w io.Writer, txs [][]string) error {
	return json.NewEncoder(w).Encode(txs)
}
