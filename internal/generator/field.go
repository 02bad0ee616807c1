package generator

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hydralabs/forge/internal/schema"
)

// Config holds the generation tunables. Out-of-range values are replaced
// by DefaultConfig's.
type Config struct {
	// NullRate is the probability a nullable column emits null. Zero is a
	// valid setting: nullable columns never emit null.
	NullRate float64
	// MaxAttempts bounds the generate-then-filter retry loop.
	MaxAttempts int
	// Oversample is the multiplier applied to the outstanding row count on
	// each filtered attempt, to compensate for rejected rows. 1.0 disables
	// oversampling.
	Oversample float64
	// DateMin/DateMax bound date generation when no tighter window applies.
	DateMin time.Time
	DateMax time.Time
}

func DefaultConfig() Config {
	return Config{
		NullRate:    0.1,
		MaxAttempts: 5,
		Oversample:  2.0,
		DateMin:     time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		DateMax:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

type Generator struct {
	cfg Config
}

func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NullRate < 0 || cfg.NullRate > 1 {
		cfg.NullRate = def.NullRate
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.Oversample < 1 {
		cfg.Oversample = def.Oversample
	}
	if cfg.DateMin.IsZero() || cfg.DateMax.IsZero() || !cfg.DateMax.After(cfg.DateMin) {
		cfg.DateMin, cfg.DateMax = def.DateMin, def.DateMax
	}
	return &Generator{cfg: cfg}
}

// Field generates count values for one column. Output is fully determined
// by the column spec, count, and the state of rng.
func (g *Generator) Field(col schema.Column, count int, rng *rand.Rand) ([]any, error) {
	gen, err := g.valueFunc(col)
	if err != nil {
		return nil, err
	}
	values := make([]any, count)
	for i := range values {
		if col.Nullable && rng.Float64() < g.cfg.NullRate {
			values[i] = nil
			continue
		}
		values[i] = gen(rng)
	}
	return values, nil
}

func (g *Generator) valueFunc(col schema.Column) (func(*rand.Rand) any, error) {
	switch col.Type {
	case schema.FieldInteger:
		lo, hi := int64(0), int64(10000)
		if col.Stats != nil {
			lo, hi = int64(col.Stats.Min), int64(col.Stats.Max)
		}
		if hi <= lo {
			hi = lo + 1
		}
		return func(rng *rand.Rand) any {
			return lo + rng.Int63n(hi-lo+1)
		}, nil
	case schema.FieldFloat:
		lo, hi := 0.0, 10000.0
		if col.Stats != nil {
			lo, hi = col.Stats.Min, col.Stats.Max
		}
		if hi <= lo {
			hi = lo + 1
		}
		return func(rng *rand.Rand) any {
			v := lo + rng.Float64()*(hi-lo)
			return math.Round(v*100) / 100
		}, nil
	case schema.FieldString:
		gen := stringCategory(col.Name)
		return func(rng *rand.Rand) any {
			return gen(rng)
		}, nil
	case schema.FieldDate:
		lo, hi := g.cfg.DateMin, g.cfg.DateMax
		return func(rng *rand.Rand) any {
			return randomDate(rng, lo, hi)
		}, nil
	default:
		return nil, &schema.SchemaError{Table: "", Column: col.Name, Type: string(col.Type)}
	}
}

func randomDate(rng *rand.Rand, lo, hi time.Time) time.Time {
	days := int(hi.Sub(lo).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return lo.AddDate(0, 0, rng.Intn(days))
}

// stringCategory picks a semantic value generator from the column name,
// most specific patterns first, falling back to a generic word.
func stringCategory(colName string) func(*rand.Rand) string {
	name := strings.ToLower(colName)
	for _, cat := range stringCategories {
		if cat.match(name) {
			return cat.gen
		}
	}
	return randomWord
}

type category struct {
	match func(string) bool
	gen   func(*rand.Rand) string
}

func contains(substrs ...string) func(string) bool {
	return func(name string) bool {
		for _, s := range substrs {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

var stringCategories = []category{
	{contains("uuid", "guid"), randomUUID},
	{contains("email", "e-mail", "e_mail"), randomEmail},
	{contains("phone", "mobile", "cell", "tel"), randomPhone},
	{contains("first_name", "firstname"), randomFirstName},
	{contains("last_name", "lastname", "surname"), randomLastName},
	{contains("username", "user_name"), randomUsername},
	{contains("address", "street"), randomAddress},
	{contains("city"), randomCity},
	{contains("state", "province"), randomState},
	{contains("country"), randomCountry},
	{contains("zip", "postal"), randomZip},
	{contains("url", "website", "link"), randomURL},
	{contains("company", "org"), randomCompany},
	{contains("title", "position", "job"), randomTitle},
	{contains("description", "content", "comment", "note", "bio"), randomSentence},
	// Plain "name" last among name variants so the specific ones win.
	{contains("name"), randomFullName},
}

var (
	firstNames = []string{"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	cities     = []string{"Springfield", "Riverside", "Franklin", "Greenville", "Bristol", "Clinton", "Fairview", "Salem", "Madison", "Georgetown"}
	states     = []string{"California", "Texas", "New York", "Florida", "Ohio", "Washington", "Oregon", "Colorado", "Nevada", "Arizona"}
	countries  = []string{"United States", "Canada", "United Kingdom", "Germany", "France", "Japan", "Australia", "Brazil", "India", "Spain"}
	companies  = []string{"Acme Corp", "Globex", "Initech", "Umbrella Labs", "Stark Industries", "Wayne Enterprises", "Hooli", "Vandelay Industries"}
	titles     = []string{"Software Engineer", "Data Analyst", "Product Manager", "Designer", "Account Executive", "Operations Lead", "Support Specialist"}
	domains    = []string{"example.com", "test.com", "demo.com", "mail.com"}
	sentences  = []string{
		"This is a sample text generated for testing purposes.",
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
		"The quick brown fox jumps over the lazy dog.",
		"Software development requires careful planning and execution.",
		"Database design is crucial for application performance.",
	}
	words = []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"}
)

func randomFirstName(rng *rand.Rand) string { return firstNames[rng.Intn(len(firstNames))] }
func randomLastName(rng *rand.Rand) string  { return lastNames[rng.Intn(len(lastNames))] }
func randomCity(rng *rand.Rand) string      { return cities[rng.Intn(len(cities))] }
func randomState(rng *rand.Rand) string     { return states[rng.Intn(len(states))] }
func randomCountry(rng *rand.Rand) string   { return countries[rng.Intn(len(countries))] }
func randomCompany(rng *rand.Rand) string   { return companies[rng.Intn(len(companies))] }
func randomTitle(rng *rand.Rand) string     { return titles[rng.Intn(len(titles))] }
func randomSentence(rng *rand.Rand) string  { return sentences[rng.Intn(len(sentences))] }
func randomWord(rng *rand.Rand) string      { return words[rng.Intn(len(words))] }

func randomFullName(rng *rand.Rand) string {
	return randomFirstName(rng) + " " + randomLastName(rng)
}

func randomEmail(rng *rand.Rand) string {
	return fmt.Sprintf("user%d@%s", rng.Intn(100000), domains[rng.Intn(len(domains))])
}

func randomUsername(rng *rand.Rand) string {
	return fmt.Sprintf("%s%d", strings.ToLower(randomFirstName(rng)), rng.Intn(1000))
}

func randomPhone(rng *rand.Rand) string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", rng.Intn(1000), rng.Intn(1000), rng.Intn(10000))
}

func randomAddress(rng *rand.Rand) string {
	return fmt.Sprintf("%d Main Street", rng.Intn(9999)+1)
}

func randomZip(rng *rand.Rand) string {
	return fmt.Sprintf("%05d", rng.Intn(100000))
}

func randomURL(rng *rand.Rand) string {
	return fmt.Sprintf("https://example.com/page/%d", rng.Intn(1000))
}

func randomUUID(rng *rand.Rand) string {
	// rand.Rand implements io.Reader, so the uuid stays seed-deterministic.
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.Nil.String()
	}
	return id.String()
}
