package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type address struct {
	City string `json:"city"`
}

type person struct {
	FullName string            `json:"name"`
	Email    string            // no tag: matched by field name
	Home     *address          `json:"home"`
	Tags     []string          `json:"tags"`
	Extra    map[string]string `json:"extra"`
	Secret   string            `json:"-"`
}

func TestConvertToCSV_QuotesDelimiters(t *testing.T) {
	recs := []map[string]any{{"a": "x,y"}}
	got := ConvertToCSV(recs, []string{"a"}, map[string]Field[map[string]any]{"a": Literal[map[string]any]("a")})
	assert.Equal(t, "a\n\"x,y\"\n", got)
}

func TestConvertToCSV_EmptyInputIsHeaderOnly(t *testing.T) {
	got := ConvertToCSV([]person(nil), []string{"Name", "Email"}, map[string]Field[person]{
		"Name": Literal[person]("name"),
	})
	assert.Equal(t, "Name,Email\n", got)
}

func TestEscape(t *testing.T) {
	cases := map[string]string{
		"plain":        "plain",
		"x,y":          `"x,y"`,
		`say "hi"`:     `"say ""hi"""`,
		"two\nlines":   "\"two\nlines\"",
		"carriage\rok": "\"carriage\rok\"",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Escape(in), in)
	}
}

func TestNavigate(t *testing.T) {
	p := person{
		FullName: "Asha",
		Email:    "asha@example.com",
		Home:     &address{City: "Chennai"},
		Tags:     []string{"vip", "repeat"},
		Extra:    map[string]string{"note": "ring twice"},
		Secret:   "s",
	}

	v, ok := Navigate(p, "name")
	assert.True(t, ok)
	assert.Equal(t, "Asha", v)

	v, ok = Navigate(&p, "email")
	assert.True(t, ok)
	assert.Equal(t, "asha@example.com", v)

	v, ok = Navigate(p, "home.city")
	assert.True(t, ok)
	assert.Equal(t, "Chennai", v)

	v, ok = Navigate(p, "tags.1")
	assert.True(t, ok)
	assert.Equal(t, "repeat", v)

	v, ok = Navigate(p, "extra.note")
	assert.True(t, ok)
	assert.Equal(t, "ring twice", v)

	for _, path := range []string{"missing", "home.zip", "tags.9", "extra.nope", "name.first", "-"} {
		_, ok := Navigate(p, path)
		assert.False(t, ok, path)
	}

	p.Home = nil
	_, ok = Navigate(p, "home.city")
	assert.False(t, ok)

	_, ok = Navigate(nil, "name")
	assert.False(t, ok)
}

func TestResolve_LiteralAndDerived(t *testing.T) {
	p := person{FullName: "Asha", Tags: []string{"a"}}

	assert.Equal(t, "Asha", Resolve(p, Literal[person]("name")))
	assert.Nil(t, Resolve(p, Literal[person]("home.city")))
	assert.Equal(t, 1, Resolve(p, Derived(func(p person) any { return len(p.Tags) })))

	got := ConvertToCSV([]person{p}, []string{"Name", "City", "Tags"}, map[string]Field[person]{
		"Name": Literal[person]("name"),
		"City": Literal[person]("home.city"),
		"Tags": Derived(func(p person) any { return len(p.Tags) }),
	})
	assert.Equal(t, "Name,City,Tags\nAsha,,1\n", got)
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "2025-03-15T10:00:00Z", FormatValue(ts))
	assert.Equal(t, "", FormatValue(time.Time{}))
	assert.Equal(t, "2025-03-15T10:00:00Z", FormatValue(&ts))
	assert.Equal(t, "380", FormatValue(decimal.NewFromInt(380)))
	assert.Equal(t, "12.5", FormatValue(decimal.RequireFromString("12.50")))
	assert.Equal(t, "Coconut, Groundnut", FormatValue([]string{"Coconut", "Groundnut"}))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "4.8", FormatValue(4.8))
	assert.Equal(t, "0", FormatValue(0))
}

func TestPopularityScore(t *testing.T) {
	got := PopularityScore(10, decimal.NewFromInt(5000), 4, 20)
	assert.True(t, decimal.RequireFromString("8.3").Equal(got), got.String())

	// zero sales still score from rating and reviews
	got = PopularityScore(0, decimal.Zero, 3, 10)
	assert.True(t, decimal.RequireFromString("1.6").Equal(got), got.String())
}
